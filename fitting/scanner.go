package fitting

import "image"

// ScanBoundaries 在给定的行距上扫描图片，抽取每条扫描线上的不透明区间。
// spacing 同时充当水平方向的粗扫描步长：先按步长跳跃找到目标像素，
// 再逐像素回退定位区间真正的起点，回退范围不超过一个步长，
// 因此不会越过真实边界。单条扫描线可以产出多个互不相交的区间。
func ScanBoundaries(img *image.NRGBA, spacing int) []Boundary {
	if img == nil || spacing < 1 {
		return nil
	}
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	var boundaries []Boundary
	for y := spacing; y < height; y += spacing {
		x := 0
		for {
			x = findPixel(img, x, y, spacing, false)
			if x >= width {
				// 右边界之前再无不透明像素，这一行结束
				break
			}
			end := findPixel(img, x+1, y, spacing, true)
			if end-1 > x {
				boundaries = append(boundaries, Boundary{
					Start: Point{X: x, Y: y},
					End:   Point{X: end - 1, Y: y},
				})
			}
			x = end
		}
	}
	return boundaries
}

// findPixel 从 startX 开始向右寻找第一个目标像素（不透明或透明），
// 按 step 跳跃命中后逐像素回退到目标区段的起点。未找到时返回图宽。
func findPixel(img *image.NRGBA, startX, y, step int, transparent bool) int {
	width := img.Bounds().Dx()
	x := startX
	for x < width {
		if isTargetPixel(img, x, y, transparent) {
			lo := x - step
			if lo < 0 {
				lo = 0
			}
			for x > lo && isTargetPixel(img, x-1, y, transparent) {
				x--
			}
			return x
		}
		x += step
	}
	return width
}

func isTargetPixel(img *image.NRGBA, x, y int, transparent bool) bool {
	b := img.Bounds()
	alpha := img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)+3]
	if transparent {
		return alpha == 0
	}
	return alpha > 0
}
