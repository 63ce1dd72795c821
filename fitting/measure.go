package fitting

// FontEngine 由渲染后端实现，负责解析字体并在指定字号下产出字体面。
// 字体字节可以在多次运行间只读共享；字体面绑定具体字号，不得跨字号复用。
type FontEngine interface {
	NewFace(fontData []byte, size float64) (Face, error)
}

// Face 是绑定到具体字号的字体面，提供词的渲染像素宽度。
// 同一字体面上同一词的宽度必须稳定。
type Face interface {
	WordWidth(word string) float64
	Size() float64
}

// widthCache 记忆单次运行内的词宽。缓存随字体面一起创建，
// 字号变化时重建整个缓存，上一字号的宽度绝不会泄漏到下一轮。
type widthCache struct {
	face   Face
	widths map[string]float64

	hits   int
	misses int
}

func newWidthCache(face Face) *widthCache {
	return &widthCache{
		face:   face,
		widths: map[string]float64{},
	}
}

// width 返回词宽，首次访问时向字体面取值并记忆。
func (c *widthCache) width(word string) float64 {
	if w, ok := c.widths[word]; ok {
		c.hits++
		return w
	}
	w := c.face.WordWidth(word)
	c.widths[word] = w
	c.misses++
	return w
}

// stats 返回命中/未命中/条目数，仅用于调试输出。
func (c *widthCache) stats() (hits, misses, entries int) {
	return c.hits, c.misses, len(c.widths)
}
