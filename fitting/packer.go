package fitting

import "strings"

// wordQueue 是对不可变词序列的显式游标。词从队首弹出；
// 放不下的词通过 pushBack 显式归还，供下一个区间重试。
type wordQueue struct {
	words []string
	next  int
}

func newWordQueue(text string) *wordQueue {
	return &wordQueue{words: strings.Fields(text)}
}

func (q *wordQueue) pop() (string, bool) {
	if q.next >= len(q.words) {
		return "", false
	}
	w := q.words[q.next]
	q.next++
	return w, true
}

// pushBack 归还最近弹出的词。
func (q *wordQueue) pushBack() {
	if q.next > 0 {
		q.next--
	}
}

func (q *wordQueue) total() int { return len(q.words) }

// packLines 按区间顺序贪心地把词流打包成行。
// 接纳判据：加入该词（含一个追加的 minSpacing 间隙）后行宽严格小于区间长度，
// 或超出量小于 minSpacing 的 25%（容差带，允许轻微溢出而不过早换行）。
// 词被拒绝时收尾当前行并把词归还队列；词流耗尽时收尾已收集的词并返回，
// 剩余区间不再产生行。
func packLines(queue *wordQueue, boundaries []Boundary, cache *widthCache, minSpacing float64) []TextLine {
	lines := make([]TextLine, 0, len(boundaries))

	for _, boundary := range boundaries {
		line := TextLine{WordSpacing: minSpacing, Start: boundary.Start}
		wordsWidth := 0.0
		length := boundary.Length()

		for {
			word, ok := queue.pop()
			if !ok {
				// 词流耗尽：收尾非空行后整体结束
				if len(line.Words) > 0 {
					justify(&line, length, wordsWidth)
					lines = append(lines, line)
				}
				return lines
			}

			w := cache.width(word)
			candidate := wordsWidth + w + minSpacing*float64(len(line.Words)+1)
			if candidate < length || candidate-length < minSpacing*0.25 {
				line.Words = append(line.Words, word)
				wordsWidth += w
				continue
			}

			justify(&line, length, wordsWidth)
			lines = append(lines, line)
			queue.pushBack()
			break
		}
	}
	return lines
}

// justify 解出行内间距，使 wordsWidth + spacing×(n−1) 恰好等于区间长度。
// 单词行没有可分配的间隙，间距置 0，由渲染器负责居中处理。
func justify(line *TextLine, length, wordsWidth float64) {
	if len(line.Words) > 1 {
		line.WordSpacing = (length - wordsWidth) / float64(len(line.Words)-1)
	} else {
		line.WordSpacing = 0
	}
}

// placedWords 统计已放置的词总数。
func placedWords(lines []TextLine) int {
	total := 0
	for _, line := range lines {
		total += len(line.Words)
	}
	return total
}
