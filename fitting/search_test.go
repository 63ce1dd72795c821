package fitting

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

// 全不透明 200×100 源图放大成 2000×1000 的工作图后，
// 三个短词应收敛到精确拟合：两个区间、末行单词。
// 该场景同时覆盖上限几何扩张（首轮 4 个区间装不满）与二分收缩。
func TestFitOpaqueImageConverges(t *testing.T) {
	src := makeImage(200, 100, func(x, y int) bool { return true })

	res, err := Fit(src, "ab cd ef", []byte{0x01}, FitOptions{Engine: stubEngine{}})
	if err != nil {
		t.Fatalf("Fit 失败: %v", err)
	}
	if !res.Fitted {
		t.Fatalf("应达成精确拟合: placed=%d/%d lines=%d boundaries=%d",
			res.PlacedWords, res.TotalWords, len(res.Lines), len(res.Boundaries))
	}
	if res.Width != 2000 || res.Height != 1000 {
		t.Fatalf("工作图尺寸错误: %dx%d", res.Width, res.Height)
	}
	if len(res.Lines) != 2 || len(res.Boundaries) != 2 {
		t.Fatalf("应得到 2 行 2 区间: lines=%d boundaries=%d", len(res.Lines), len(res.Boundaries))
	}
	if diff := math.Abs(res.FontSize - 448.75); diff > 1e-9 {
		t.Fatalf("收敛字号错误: got=%g want=448.75", res.FontSize)
	}
	if got := res.Lines[0].Words; len(got) != 2 || got[0] != "ab" || got[1] != "cd" {
		t.Fatalf("第一行词错误: %v", got)
	}
	if got := res.Lines[1].Words; len(got) != 1 || got[0] != "ef" {
		t.Fatalf("第二行应只有末词: %v", got)
	}
	if res.Lines[1].WordSpacing != 0 {
		t.Fatalf("单词行间距应为 0: %g", res.Lines[1].WordSpacing)
	}

	// 多词行的对齐不变式：按收敛字号重新度量
	face := stubFace{size: float64(int(res.FontSize))}
	wordsWidth := face.WordWidth("ab") + face.WordWidth("cd")
	total := wordsWidth + res.Lines[0].WordSpacing
	if diff := math.Abs(total - res.Boundaries[0].Length()); diff > 1e-3 {
		t.Fatalf("行宽不变式不成立: total=%g length=%g", total, res.Boundaries[0].Length())
	}
}

// 相同输入两次运行应得到完全一致的布局（缓存每次重建，搜索确定性）。
func TestFitDeterministic(t *testing.T) {
	src := makeImage(200, 100, func(x, y int) bool { return true })
	opts := FitOptions{Engine: stubEngine{}}

	first, err := Fit(src, "ab cd ef", []byte{0x01}, opts)
	if err != nil {
		t.Fatalf("第一次运行失败: %v", err)
	}
	second, err := Fit(src, "ab cd ef", []byte{0x01}, opts)
	if err != nil {
		t.Fatalf("第二次运行失败: %v", err)
	}
	if first.FontSize != second.FontSize {
		t.Fatalf("字号不一致: %g vs %g", first.FontSize, second.FontSize)
	}
	if !reflect.DeepEqual(first.Lines, second.Lines) {
		t.Fatalf("两次布局不一致:\n%v\n%v", first.Lines, second.Lines)
	}
}

func TestFitInvalidInputs(t *testing.T) {
	src := makeImage(200, 100, func(x, y int) bool { return true })

	if _, err := Fit(nil, "ab", []byte{0x01}, FitOptions{Engine: stubEngine{}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("nil 图片应报输入无效: %v", err)
	}
	if _, err := Fit(src, "ab", nil, FitOptions{Engine: stubEngine{}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("空字体数据应报输入无效: %v", err)
	}
	if _, err := Fit(src, "ab", []byte{0x01}, FitOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("缺少引擎应报输入无效: %v", err)
	}
	if _, err := Fit(src, "   ", []byte{0x01}, FitOptions{Engine: stubEngine{}}); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("空文本应报 ErrEmptyText: %v", err)
	}
}

// 全透明图没有可写区间，必须在进入搜索循环前短路。
func TestFitTransparentImageShortCircuits(t *testing.T) {
	src := makeImage(50, 30, nil)
	_, err := Fit(src, "ab cd", []byte{0x01}, FitOptions{Engine: stubEngine{}})
	if !errors.Is(err, ErrNoBoundaries) {
		t.Fatalf("全透明图应报 ErrNoBoundaries: %v", err)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ErrNoBoundaries 应归类为输入无效: %v", err)
	}
}

// 远超区间容量的文本必须在预算内终止，并返回可识别的未拟合结果。
func TestFitOverflowTextTerminates(t *testing.T) {
	src := makeImage(200, 100, func(x, y int) bool { return true })
	text := strings.TrimSpace(strings.Repeat("word ", 5000))

	res, err := Fit(src, text, []byte{0x01}, FitOptions{Engine: stubEngine{}, MinWidth: 100})
	if err != nil {
		t.Fatalf("窗口收敛不应作为错误返回: %v", err)
	}
	if res.Fitted {
		t.Fatalf("超量文本不可能精确拟合")
	}
	if len(res.Lines) == len(res.Boundaries) && res.PlacedWords == res.TotalWords {
		t.Fatalf("未拟合结果不应同时满足两个成功条件")
	}
}

func TestFitFontSizeBudget(t *testing.T) {
	src := makeImage(200, 100, func(x, y int) bool { return true })

	res, err := Fit(src, "ab cd", []byte{0x01}, FitOptions{
		Engine:      stubEngine{},
		MinWidth:    100,
		MaxFontSize: 10, // 初始探测字号 20 即超限
	})
	if !errors.Is(err, ErrSearchBudget) {
		t.Fatalf("超出字号上限应报 ErrSearchBudget: %v", err)
	}
	if res == nil || res.Fitted {
		t.Fatalf("预算耗尽应返回未拟合的部分结果: %+v", res)
	}
}

func TestFitIterationBudget(t *testing.T) {
	src := makeImage(200, 100, func(x, y int) bool { return true })
	text := strings.TrimSpace(strings.Repeat("word ", 5000))

	res, err := Fit(src, text, []byte{0x01}, FitOptions{
		Engine:        stubEngine{},
		MinWidth:      100,
		MaxIterations: 3,
	})
	if !errors.Is(err, ErrSearchBudget) {
		t.Fatalf("超出轮数上限应报 ErrSearchBudget: %v", err)
	}
	if res == nil {
		t.Fatalf("预算耗尽仍应返回部分结果")
	}
}
