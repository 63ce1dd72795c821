// Package canvasrenderer 基于 github.com/tdewolff/canvas 实现字体度量与文本光栅化。
package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/textfill/fitting"
	"github.com/ByLCY/textfill/renderer"
)

// pt 与 mm 的换算常量。画布按 DPMM=1 光栅化，因此 mm 与像素等价；
// 字体面按 pt 创建，度量值换算回 mm 后即为像素值。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Renderer 同时实现 fitting.FontEngine（字体解析与词宽度量）
// 与 renderer.Renderer（把拟合结果画到透明画布上）。
type Renderer struct {
	overlay bool
}

var (
	_ renderer.Renderer  = (*Renderer)(nil)
	_ fitting.FontEngine = (*Renderer)(nil)
)

// Options 配置 canvas 渲染器。
type Options struct {
	Overlay bool // 叠加区间端点与词锚点标记，仅用于调试
}

// NewRenderer 创建默认配置的渲染器。
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions 按给定配置创建渲染器。
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{overlay: opts.Overlay}
}

// Face 是绑定到具体像素字号的字体面。
// 宽度度量与颜色无关，统一用黑色字体面取值。
type Face struct {
	family  *canvas.FontFamily
	sizePx  float64
	measure *canvas.FontFace
}

var _ fitting.Face = (*Face)(nil)

// NewFace 实现 fitting.FontEngine：解析字体字节并绑定像素字号。
func (r *Renderer) NewFace(fontData []byte, size float64) (fitting.Face, error) {
	if len(fontData) == 0 {
		return nil, fmt.Errorf("字体数据为空")
	}
	if size <= 0 {
		return nil, fmt.Errorf("字号必须为正数: %g", size)
	}
	family := canvas.NewFontFamily("textfill")
	if err := family.LoadFont(fontData, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	face := &Face{family: family, sizePx: size}
	face.measure = face.colored(canvas.Black)
	return face, nil
}

// WordWidth 返回词在该字号下的渲染像素宽度。
func (f *Face) WordWidth(word string) float64 {
	if word == "" {
		return 0
	}
	return f.measure.TextWidth(word)
}

// Size 返回字体面绑定的像素字号。
func (f *Face) Size() float64 { return f.sizePx }

func (f *Face) colored(col color.Color) *canvas.FontFace {
	return f.family.Face(f.sizePx*MmToPt, col, canvas.FontRegular, canvas.FontNormal)
}

// Render 把拟合结果画到与工作图等尺寸的透明画布上。
// 每行锚点向上偏移字体上升、下降跨度的 80% 作为启发式基线偏移；
// 词依次绘制后光标前进词宽加该行解出的间距。
func (r *Renderer) Render(result *fitting.Result, textColor color.Color) (image.Image, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", result.Width, result.Height)
	}
	face, ok := result.Face.(*Face)
	if !ok || face == nil {
		return nil, fmt.Errorf("拟合结果不是由 canvas 字体引擎产生")
	}
	if textColor == nil {
		textColor = canvas.Black
	}

	c := canvas.New(float64(result.Width), float64(result.Height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 坐标与工作图保持左上角为原点

	drawFace := face.colored(textColor)
	metrics := drawFace.Metrics()
	span := metrics.Ascent + metrics.Descent

	for i, line := range result.Lines {
		words := line.Words
		spacing := line.WordSpacing
		if len(words) == 1 {
			// 单词行无法靠间距两端对齐：包上首尾空词再解一次间距，
			// 让解出的间距把词推到区间中部
			length := face.WordWidth(words[0])
			if i < len(result.Boundaries) {
				length = result.Boundaries[i].Length()
			}
			words = []string{"", words[0], ""}
			spacing = (length - face.WordWidth(words[1])) / 2
		}

		baseline := float64(line.Start.Y) - 0.8*span + metrics.Ascent
		x := float64(line.Start.X)
		for _, word := range words {
			if word != "" {
				ctx.DrawText(x, baseline, canvas.NewTextLine(drawFace, word, canvas.Left))
			}
			if r.overlay {
				drawMarker(ctx, x, baseline, color.RGBA{B: 255, A: 255}, 4)
			}
			x += face.WordWidth(word) + spacing
		}
	}

	if r.overlay {
		for _, b := range result.Boundaries {
			drawMarker(ctx, float64(b.Start.X), float64(b.Start.Y), color.RGBA{G: 255, A: 255}, 5)
			drawMarker(ctx, float64(b.End.X), float64(b.End.Y), color.RGBA{G: 255, A: 255}, 5)
		}
	}

	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace), nil
}

func drawMarker(ctx *canvas.Context, x, y float64, col color.Color, radius float64) {
	ctx.SetFillColor(col)
	ctx.DrawPath(x-radius, y-radius, canvas.Circle(radius))
}
