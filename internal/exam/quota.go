package exam

import "sort"

// QuotaTable maps chapter numbers to the number of questions the
// official exam draws from each chapter. It is immutable once built;
// construct alternates for tests instead of mutating.
type QuotaTable struct {
	quotas   map[int]int
	chapters []int
	total    int
}

// NewQuotaTable copies the given mapping. Entries with quota 0 are kept:
// they mark chapters that exist but are not examined.
func NewQuotaTable(quotas map[int]int) QuotaTable {
	copied := make(map[int]int, len(quotas))
	chapters := make([]int, 0, len(quotas))
	total := 0
	for ch, n := range quotas {
		copied[ch] = n
		chapters = append(chapters, ch)
		total += n
	}
	sort.Ints(chapters)
	return QuotaTable{quotas: copied, chapters: chapters, total: total}
}

// Default returns the official 19-chapter distribution (40 questions).
func Default() QuotaTable {
	return NewQuotaTable(map[int]int{
		1:  1,
		2:  2,
		3:  7,
		4:  3,
		5:  2,
		6:  4,
		7:  0,
		8:  2,
		9:  5,
		10: 2,
		11: 2,
		12: 0,
		13: 2,
		14: 2,
		15: 0,
		16: 3,
		17: 2,
		18: 1,
		19: 0,
	})
}

// Quota returns the required count for a chapter, 0 if absent.
func (t QuotaTable) Quota(chapter int) int {
	return t.quotas[chapter]
}

// Lookup reports whether the table has an entry for the chapter.
func (t QuotaTable) Lookup(chapter int) (int, bool) {
	n, ok := t.quotas[chapter]
	return n, ok
}

// Total returns the intended exam length: the sum of all quotas.
func (t QuotaTable) Total() int {
	return t.total
}

// Chapters returns the chapter numbers in ascending order.
func (t QuotaTable) Chapters() []int {
	out := make([]int, len(t.chapters))
	copy(out, t.chapters)
	return out
}
