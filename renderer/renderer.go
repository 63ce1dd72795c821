package renderer

import (
	"image"
	"image/color"

	"github.com/ByLCY/textfill/fitting"
)

// Renderer 将拟合结果绘制到一张全新的透明画布上。
// 返回的图像与拟合时的工作图等尺寸，除此之外没有任何副作用。
type Renderer interface {
	Render(result *fitting.Result, textColor color.Color) (image.Image, error)
}
