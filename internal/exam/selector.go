package exam

import "math/rand"

// BuildMockSet assembles one mock exam: for each chapter with quota n it
// draws a uniform without-replacement sample of min(n, stock) eligible
// question ids, concatenates the draws in table order, then shuffles the
// whole set so presentation is not grouped by chapter.
//
// A chapter short on stock contributes everything it has — no error. The
// result is shorter than table.Total() exactly by the summed shortfall,
// and empty when no eligible questions exist anywhere. Every call draws
// fresh: the operation is intentionally non-deterministic.
func BuildMockSet(bank Bank, table QuotaTable) ([]int64, error) {
	picked := make([]int64, 0, table.Total())

	for _, ch := range table.Chapters() {
		n := table.Quota(ch)
		if n == 0 {
			continue
		}
		ids, err := bank.EligibleQuestionIDs(ch)
		if err != nil {
			return nil, err
		}
		picked = append(picked, sample(ids, n)...)
	}

	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked, nil
}

// sample draws up to n ids uniformly without replacement by shuffling a
// copy and slicing. Sampling happens in memory so behavior does not
// depend on any storage engine's random-ordering semantics.
func sample(ids []int64, n int) []int64 {
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
