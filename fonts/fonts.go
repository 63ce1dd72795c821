package fonts

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Load 返回内置字体的 TTF 字节数据。
// 可用名称：go-regular、go-bold、go-italic。
func Load(name string) ([]byte, error) {
	switch name {
	case "go-regular":
		return goregular.TTF, nil
	case "go-bold":
		return gobold.TTF, nil
	case "go-italic":
		return goitalic.TTF, nil
	default:
		return nil, fmt.Errorf("未知的内置字体 %s", name)
	}
}

// Default 返回默认内置字体（Go Regular）的字节数据。
func Default() []byte { return goregular.TTF }
