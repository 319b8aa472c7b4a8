package exam

// ChapterStock is a chapter's inventory snapshot: how many non-excluded
// questions it currently holds.
type ChapterStock struct {
	Num           int
	Title         string
	OfficialQuota int
	Stock         int
}

// Bank is the read surface of the question inventory that assembly needs.
type Bank interface {
	// ChapterStocks returns every chapter with its non-excluded question
	// count, ordered by chapter number ascending.
	ChapterStocks() ([]ChapterStock, error)
	// EligibleQuestionIDs returns the ids of all non-excluded questions
	// in the given chapter.
	EligibleQuestionIDs(chapterNum int) ([]int64, error)
}

// Deficit reports a chapter whose stock cannot cover its quota.
type Deficit struct {
	Chapter int    `json:"ch"`
	Title   string `json:"title"`
	Quota   int    `json:"quota"`
	Stock   int    `json:"stock"`
	Lack    int    `json:"lack"`
}

// QuotaDeficits lists chapters short on stock, ordered by chapter number.
// The effective quota is the table entry when present, otherwise the
// chapter's persisted official quota. Read-only: calling it twice with
// no intervening writes yields identical results.
func QuotaDeficits(bank Bank, table QuotaTable) ([]Deficit, error) {
	stocks, err := bank.ChapterStocks()
	if err != nil {
		return nil, err
	}

	var deficits []Deficit
	for _, cs := range stocks {
		quota, ok := table.Lookup(cs.Num)
		if !ok {
			quota = cs.OfficialQuota
		}
		if quota > 0 && cs.Stock < quota {
			deficits = append(deficits, Deficit{
				Chapter: cs.Num,
				Title:   cs.Title,
				Quota:   quota,
				Stock:   cs.Stock,
				Lack:    quota - cs.Stock,
			})
		}
	}
	return deficits, nil
}
