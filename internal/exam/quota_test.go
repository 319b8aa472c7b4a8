package exam

import "testing"

func TestDefaultTableSumsToForty(t *testing.T) {
	table := Default()
	if table.Total() != 40 {
		t.Errorf("Default().Total() = %d, want 40", table.Total())
	}
	if len(table.Chapters()) != 19 {
		t.Errorf("Default() has %d chapters, want 19", len(table.Chapters()))
	}
}

func TestQuotaLookup(t *testing.T) {
	table := NewQuotaTable(map[int]int{1: 3, 2: 0, 5: 7})

	if got := table.Quota(1); got != 3 {
		t.Errorf("Quota(1) = %d, want 3", got)
	}
	if got := table.Quota(99); got != 0 {
		t.Errorf("Quota(99) = %d, want 0 for absent chapter", got)
	}

	// Lookup distinguishes "explicitly 0" from "absent"
	if n, ok := table.Lookup(2); !ok || n != 0 {
		t.Errorf("Lookup(2) = (%d, %v), want (0, true)", n, ok)
	}
	if _, ok := table.Lookup(99); ok {
		t.Error("Lookup(99) reported an entry for an absent chapter")
	}

	if got := table.Total(); got != 10 {
		t.Errorf("Total() = %d, want 10", got)
	}
}

func TestChaptersAscending(t *testing.T) {
	table := NewQuotaTable(map[int]int{9: 1, 1: 1, 5: 1})
	chapters := table.Chapters()
	want := []int{1, 5, 9}
	if len(chapters) != len(want) {
		t.Fatalf("Chapters() = %v, want %v", chapters, want)
	}
	for i, ch := range want {
		if chapters[i] != ch {
			t.Errorf("Chapters()[%d] = %d, want %d", i, chapters[i], ch)
		}
	}
}

func TestTableIsolatedFromSource(t *testing.T) {
	src := map[int]int{1: 2}
	table := NewQuotaTable(src)
	src[1] = 99
	if got := table.Quota(1); got != 2 {
		t.Errorf("Quota(1) = %d after mutating source map, want 2", got)
	}
}
