package fitting

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// 错误分类：输入错误在进入搜索循环前快速失败；
// 预算耗尽连同最后一次计算的部分布局一起返回。
var (
	ErrInvalidInput = errors.New("fitting: 输入无效")
	ErrEmptyText    = fmt.Errorf("%w: 文本为空", ErrInvalidInput)
	ErrNoBoundaries = fmt.Errorf("%w: 图片中没有不透明区域", ErrInvalidInput)
	ErrSearchBudget = errors.New("fitting: 布局搜索超出预算")
)

// spacingRatios 是每个候选字号下依次尝试的最小词间距系数（乘以字号）。
var spacingRatios = []float64{0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}

// Fit 在图片的不透明区域内拟合文本：扫描可写区间，
// 二分搜索字号（配合上限几何扩张），直至打包结果恰好消耗全部区间
// 与全部词。返回的布局交给渲染器绘制。
//
// 搜索分两个阶段：当前上限处仍填不满全部区间时，向上翻倍扩张窗口
// （真实最大字号可能远高于初始猜测）；否则在窗口内二分收缩。
// 窗口收敛（上限−下限 ≤ 0.5）仍未达成精确条件时，返回最后一次
// 计算的布局并置 Result.Fitted 为 false，不作为错误。
func Fit(src image.Image, text string, fontData []byte, opts FitOptions) (*Result, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: 图片为空", ErrInvalidInput)
	}
	if src.Bounds().Dx() <= 0 || src.Bounds().Dy() <= 0 {
		return nil, fmt.Errorf("%w: 图片尺寸为零", ErrInvalidInput)
	}
	if len(fontData) == 0 {
		return nil, fmt.Errorf("%w: 字体数据为空", ErrInvalidInput)
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("%w: 缺少字体引擎 Engine", ErrInvalidInput)
	}
	totalWords := len(strings.Fields(text))
	if totalWords == 0 {
		return nil, ErrEmptyText
	}

	minWidth := opts.MinWidth
	if minWidth <= 0 {
		minWidth = defaultMinWidth
	}
	working := upscale(src, minWidth)
	width := working.Bounds().Dx()
	height := working.Bounds().Dy()
	opts = opts.withDefaults(width)

	// 全透明的图片没有任何可写区间，在进入搜索循环前短路
	if !hasOpaque(working) {
		return nil, ErrNoBoundaries
	}

	lower, upper := 1.0, float64(width)/10
	size := upper

	var (
		lines      []TextLine
		boundaries []Boundary
		face       Face
		cache      *widthCache
	)
	fitted := false
	iterations := 0

	for upper-lower > 0.5 {
		iterations++
		if iterations > opts.MaxIterations || size > opts.MaxFontSize {
			res := assemble(lines, boundaries, size, face, width, height, false, totalWords, iterations)
			return res, fmt.Errorf("%w: 第 %d 轮时字号 %.1f，窗口 [%.1f, %.1f]",
				ErrSearchBudget, iterations, size, lower, upper)
		}

		f, err := opts.Engine.NewFace(fontData, float64(int(size)))
		if err != nil {
			return nil, fmt.Errorf("fitting: 加载字体失败: %w", err)
		}
		face = f
		// 字号一旦变化，宽度缓存必须整体重建
		cache = newWidthCache(face)

		for _, ratio := range spacingRatios {
			minSpacing := ratio * size
			boundaries = ScanBoundaries(working, int(size))
			queue := newWordQueue(text)
			lines = packLines(queue, boundaries, cache, minSpacing)
			if opts.Debug.LogSearch {
				log.Printf("fitting: size=%.2f window=[%.2f %.2f] spacing=%.2f lines=%d boundaries=%d placed=%d/%d",
					size, lower, upper, minSpacing, len(lines), len(boundaries), placedWords(lines), totalWords)
			}
			if len(lines) == len(boundaries) && placedWords(lines) == totalWords {
				break
			}
		}

		if len(lines) < len(boundaries) {
			// 字号偏小：词流在填满全部区间前耗尽
			if size >= upper {
				upper += (upper - lower) * 2
				size = upper
				continue
			}
			lower = size
		} else if placedWords(lines) < totalWords {
			// 字号偏大：区间饱和时仍有词未放下
			upper = size
		} else {
			fitted = true
			break
		}

		size = (upper + lower) / 2
	}

	if opts.Debug.LogSearch && cache != nil {
		hits, misses, entries := cache.stats()
		log.Printf("fitting: 词宽缓存 hits=%d misses=%d entries=%d", hits, misses, entries)
	}

	return assemble(lines, boundaries, size, face, width, height, fitted, totalWords, iterations), nil
}

func assemble(lines []TextLine, boundaries []Boundary, size float64, face Face,
	width, height int, fitted bool, totalWords, iterations int) *Result {
	return &Result{
		Lines:       lines,
		Boundaries:  boundaries,
		FontSize:    size,
		Face:        face,
		Width:       width,
		Height:      height,
		Fitted:      fitted,
		PlacedWords: placedWords(lines),
		TotalWords:  totalWords,
		Iterations:  iterations,
	}
}

// upscale 把源图转成 NRGBA 工作图，宽度不足 minWidth 时按比例放大。
func upscale(src image.Image, minWidth int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	scaledW := w
	if scaledW < minWidth {
		scaledW = minWidth
	}
	scaledH := int(float64(scaledW) * float64(h) / float64(w))
	if scaledH < 1 {
		scaledH = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, scaledW, scaledH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// hasOpaque 报告图中是否存在任何不透明像素。
func hasOpaque(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			return true
		}
	}
	return false
}
