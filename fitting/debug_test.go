package fitting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDebugJSON(t *testing.T) {
	res := &Result{
		Lines: []TextLine{{
			Words:       []string{"ab", "cd"},
			WordSpacing: 12.5,
			Start:       Point{X: 0, Y: 40},
		}},
		Boundaries: []Boundary{{Start: Point{X: 0, Y: 40}, End: Point{X: 100, Y: 40}}},
		FontSize:   20,
		Face:       stubFace{size: 20},
		Width:      200,
		Height:     100,
		Fitted:     true,
	}

	path := filepath.Join(t.TempDir(), "fit.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("输出调试 JSON 失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取调试 JSON 失败: %v", err)
	}
	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("调试 JSON 不可解析: %v", err)
	}
	if decoded.FontSize != 20 || !decoded.Fitted || len(decoded.Lines) != 1 {
		t.Fatalf("往返内容不一致: %+v", decoded)
	}
	// 字体面不可序列化，必须被排除在输出之外
	if decoded.Face != nil {
		t.Fatalf("Face 不应出现在 JSON 输出中")
	}

	if err := WriteDebugJSON(nil, path); err != nil {
		t.Fatalf("nil 结果应被忽略: %v", err)
	}
}
