package fitting

import "math"

// 该文件定义拟合过程的数据类型，供扫描、打包、搜索与渲染共用。

// Point 表示工作图上的一个像素坐标。
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Boundary 表示同一条扫描线上的一段不透明区间，即一行文字的可写区域。
// 扫描器产出后不再修改；按扫描顺序排列（先自上而下，同一行内自左向右）。
type Boundary struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Length 返回区间长度。扫描器不会产出零长度的区间。
func (b Boundary) Length() float64 {
	return math.Abs(float64(b.Start.X - b.End.X))
}

// TextLine 表示已分配到某个区间上的一行词。
// 打包过程中 Words 逐个追加；行收尾时重新解出 WordSpacing，
// 使行宽恰好等于区间长度（见 packer 的 justify）。
type TextLine struct {
	Words       []string `json:"words"`
	WordSpacing float64  `json:"wordSpacing"`
	Start       Point    `json:"start"`
}

// WordCount 返回该行的词数。
func (l TextLine) WordCount() int { return len(l.Words) }

// Result 保存一次拟合运行的完整输出，整体交给渲染器。
type Result struct {
	Lines      []TextLine `json:"lines"`
	Boundaries []Boundary `json:"boundaries"`

	// FontSize 为搜索得到的字号（像素）；Face 是对应字号下的字体面。
	FontSize float64 `json:"fontSize"`
	Face     Face    `json:"-"`

	// Width/Height 为放大后工作图的尺寸，渲染画布与之一致。
	Width  int `json:"width"`
	Height int `json:"height"`

	// Fitted 表示是否达成精确条件：行数等于区间数且全部词被放置。
	// 搜索窗口收敛仍未达成时返回最后一次计算的布局，Fitted 为 false。
	Fitted      bool `json:"fitted"`
	PlacedWords int  `json:"placedWords"`
	TotalWords  int  `json:"totalWords"`
	Iterations  int  `json:"iterations"`
}
