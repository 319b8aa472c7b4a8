package exam

import "fmt"

// fakeBank is an in-memory Bank for tests. Question ids are encoded as
// chapterNum*1000 + ordinal so tests can recover the chapter of a drawn
// id without extra bookkeeping.
type fakeBank struct {
	stocks    []ChapterStock
	byChapter map[int][]int64
}

func newFakeBank(stockByChapter map[int]int) *fakeBank {
	b := &fakeBank{byChapter: make(map[int][]int64)}
	for ch := 1; ch <= 19; ch++ {
		n, ok := stockByChapter[ch]
		if !ok {
			continue
		}
		for i := 0; i < n; i++ {
			b.byChapter[ch] = append(b.byChapter[ch], int64(ch*1000+i))
		}
		b.stocks = append(b.stocks, ChapterStock{
			Num:   ch,
			Title: fmt.Sprintf("Chapter %d", ch),
			Stock: n,
		})
	}
	return b
}

func (b *fakeBank) ChapterStocks() ([]ChapterStock, error) {
	return b.stocks, nil
}

func (b *fakeBank) EligibleQuestionIDs(chapterNum int) ([]int64, error) {
	return b.byChapter[chapterNum], nil
}

func chapterOf(id int64) int {
	return int(id / 1000)
}
