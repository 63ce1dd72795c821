package server

import (
	"fmt"
	"io"
	"net/http"
)

// fetchBytes 下载远程资源并限制响应体大小，防止异常大的图片或字体拖垮服务。
func fetchBytes(client *http.Client, url string, maxBytes int64) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("请求 %s 失败: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("请求 %s 失败: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("读取 %s 响应失败: %w", url, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("资源 %s 超过大小限制 %d 字节", url, maxBytes)
	}
	return data, nil
}
