package exam

import (
	"reflect"
	"testing"
)

func fullStock(table QuotaTable) map[int]int {
	stock := make(map[int]int)
	for _, ch := range table.Chapters() {
		stock[ch] = table.Quota(ch)
	}
	return stock
}

func TestQuotaDeficitsFullyStocked(t *testing.T) {
	table := Default()
	bank := newFakeBank(fullStock(table))

	deficits, err := QuotaDeficits(bank, table)
	if err != nil {
		t.Fatalf("QuotaDeficits: %v", err)
	}
	if len(deficits) != 0 {
		t.Errorf("fully stocked bank reported deficits: %+v", deficits)
	}
}

func TestQuotaDeficitsShortChapter(t *testing.T) {
	table := Default()
	stock := fullStock(table)
	stock[3] = 5 // quota is 7
	bank := newFakeBank(stock)

	deficits, err := QuotaDeficits(bank, table)
	if err != nil {
		t.Fatalf("QuotaDeficits: %v", err)
	}
	want := []Deficit{{Chapter: 3, Title: "Chapter 3", Quota: 7, Stock: 5, Lack: 2}}
	if !reflect.DeepEqual(deficits, want) {
		t.Errorf("QuotaDeficits = %+v, want %+v", deficits, want)
	}
}

func TestQuotaDeficitsOrderedByChapter(t *testing.T) {
	table := Default()
	stock := fullStock(table)
	stock[16] = 0
	stock[3] = 1
	stock[9] = 2
	bank := newFakeBank(stock)

	deficits, err := QuotaDeficits(bank, table)
	if err != nil {
		t.Fatalf("QuotaDeficits: %v", err)
	}
	if len(deficits) != 3 {
		t.Fatalf("got %d deficits, want 3: %+v", len(deficits), deficits)
	}
	for i := 1; i < len(deficits); i++ {
		if deficits[i-1].Chapter >= deficits[i].Chapter {
			t.Errorf("deficits not in ascending chapter order: %+v", deficits)
		}
	}
}

func TestQuotaDeficitsZeroQuotaChaptersSilent(t *testing.T) {
	table := Default()
	stock := fullStock(table)
	// Chapter 7 has quota 0; emptying it must not produce a deficit.
	stock[7] = 0
	bank := newFakeBank(stock)

	deficits, err := QuotaDeficits(bank, table)
	if err != nil {
		t.Fatalf("QuotaDeficits: %v", err)
	}
	for _, d := range deficits {
		if d.Chapter == 7 {
			t.Errorf("chapter with quota 0 reported a deficit: %+v", d)
		}
	}
}

func TestQuotaDeficitsFallsBackToOfficialQuota(t *testing.T) {
	// Table has no entry for chapter 2; the chapter's own official quota
	// must be used instead.
	table := NewQuotaTable(map[int]int{1: 1})
	bank := newFakeBank(map[int]int{1: 1, 2: 1})
	bank.stocks[1].OfficialQuota = 4

	deficits, err := QuotaDeficits(bank, table)
	if err != nil {
		t.Fatalf("QuotaDeficits: %v", err)
	}
	want := []Deficit{{Chapter: 2, Title: "Chapter 2", Quota: 4, Stock: 1, Lack: 3}}
	if !reflect.DeepEqual(deficits, want) {
		t.Errorf("QuotaDeficits = %+v, want %+v", deficits, want)
	}
}

func TestQuotaDeficitsIdempotent(t *testing.T) {
	table := Default()
	stock := fullStock(table)
	stock[3] = 2
	stock[9] = 1
	bank := newFakeBank(stock)

	first, err := QuotaDeficits(bank, table)
	if err != nil {
		t.Fatalf("QuotaDeficits: %v", err)
	}
	second, err := QuotaDeficits(bank, table)
	if err != nil {
		t.Fatalf("QuotaDeficits: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls disagree: %+v vs %+v", first, second)
	}
}
