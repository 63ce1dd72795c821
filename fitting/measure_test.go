package fitting

import "testing"

// countingFace 统计词宽被真正计算的次数，用于验证缓存记忆行为。
type countingFace struct {
	size  float64
	calls int
}

func (f *countingFace) WordWidth(word string) float64 {
	f.calls++
	return float64(len(word)) * f.size
}

func (f *countingFace) Size() float64 { return f.size }

func TestWidthCacheMemoizes(t *testing.T) {
	face := &countingFace{size: 10}
	cache := newWidthCache(face)

	w1 := cache.width("hello")
	w2 := cache.width("hello")
	w3 := cache.width("hello")
	if w1 != w2 || w2 != w3 {
		t.Fatalf("同一词宽度必须稳定: %g %g %g", w1, w2, w3)
	}
	if face.calls != 1 {
		t.Fatalf("词宽应只计算一次: calls=%d", face.calls)
	}

	hits, misses, entries := cache.stats()
	if hits != 2 || misses != 1 || entries != 1 {
		t.Fatalf("缓存统计错误: hits=%d misses=%d entries=%d", hits, misses, entries)
	}
}

// 新字体面对应的新缓存不应携带旧字号的宽度。
func TestWidthCacheFreshPerFace(t *testing.T) {
	small := newWidthCache(&countingFace{size: 10})
	large := newWidthCache(&countingFace{size: 20})

	if w := small.width("word"); w != 40 {
		t.Fatalf("小字号宽度错误: %g", w)
	}
	if w := large.width("word"); w != 80 {
		t.Fatalf("新缓存不应复用旧字号的宽度: %g", w)
	}
}
