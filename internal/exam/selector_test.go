package exam

import "testing"

func TestBuildMockSetQuotaConservation(t *testing.T) {
	table := Default()
	// Stock every chapter beyond its quota so nothing limits the draw.
	stock := make(map[int]int)
	for _, ch := range table.Chapters() {
		stock[ch] = table.Quota(ch) + 3
	}
	bank := newFakeBank(stock)

	ids, err := BuildMockSet(bank, table)
	if err != nil {
		t.Fatalf("BuildMockSet: %v", err)
	}
	if len(ids) != table.Total() {
		t.Fatalf("len = %d, want %d", len(ids), table.Total())
	}

	seen := make(map[int64]bool)
	perChapter := make(map[int]int)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d in mock set", id)
		}
		seen[id] = true
		perChapter[chapterOf(id)]++
	}
	for _, ch := range table.Chapters() {
		if perChapter[ch] != table.Quota(ch) {
			t.Errorf("chapter %d contributed %d questions, want %d", ch, perChapter[ch], table.Quota(ch))
		}
	}
}

func TestBuildMockSetGracefulShortfall(t *testing.T) {
	table := Default()
	stock := fullStock(table)
	stock[3] = 5 // quota 7 → lack 2
	bank := newFakeBank(stock)

	ids, err := BuildMockSet(bank, table)
	if err != nil {
		t.Fatalf("BuildMockSet: %v", err)
	}
	if len(ids) != table.Total()-2 {
		t.Errorf("len = %d, want %d", len(ids), table.Total()-2)
	}

	fromCh3 := 0
	for _, id := range ids {
		if chapterOf(id) == 3 {
			fromCh3++
		}
	}
	if fromCh3 != 5 {
		t.Errorf("chapter 3 contributed %d questions, want all 5 available", fromCh3)
	}
}

func TestBuildMockSetDrawsOnlyEligible(t *testing.T) {
	table := Default()
	bank := newFakeBank(fullStock(table))

	eligible := make(map[int64]bool)
	for _, ids := range bank.byChapter {
		for _, id := range ids {
			eligible[id] = true
		}
	}

	ids, err := BuildMockSet(bank, table)
	if err != nil {
		t.Fatalf("BuildMockSet: %v", err)
	}
	for _, id := range ids {
		if !eligible[id] {
			t.Errorf("id %d is not in the eligible pool", id)
		}
	}
}

func TestBuildMockSetEmptyBank(t *testing.T) {
	bank := newFakeBank(map[int]int{})
	ids, err := BuildMockSet(bank, Default())
	if err != nil {
		t.Fatalf("BuildMockSet: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("empty bank produced %d ids", len(ids))
	}
}

func TestBuildMockSetSkipsZeroQuotaChapters(t *testing.T) {
	table := Default()
	stock := fullStock(table)
	stock[7] = 10 // quota 0 — must never be drawn from
	bank := newFakeBank(stock)

	ids, err := BuildMockSet(bank, table)
	if err != nil {
		t.Fatalf("BuildMockSet: %v", err)
	}
	for _, id := range ids {
		if chapterOf(id) == 7 {
			t.Errorf("drew id %d from a chapter with quota 0", id)
		}
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5}

	got := sample(ids, 3)
	if len(got) != 3 {
		t.Fatalf("sample returned %d ids, want 3", len(got))
	}
	seen := make(map[int64]bool)
	for _, id := range got {
		if seen[id] {
			t.Fatalf("sample repeated id %d", id)
		}
		seen[id] = true
	}

	// Requesting more than available returns everything, once each.
	got = sample(ids, 10)
	if len(got) != len(ids) {
		t.Errorf("sample returned %d ids, want %d", len(got), len(ids))
	}

	// The source slice must not be reordered by sampling.
	for i, id := range ids {
		if id != int64(i+1) {
			t.Fatalf("sample mutated its input: %v", ids)
		}
	}
}
