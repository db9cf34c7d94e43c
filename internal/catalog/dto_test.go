// AngelaMos | 2026
// dto_test.go

package catalog

import (
	"testing"
)

func TestBuildGroupsCoalescesByName(t *testing.T) {
	// Rows deliberately interleaved: grouping must key on category name,
	// not adjacency.
	rows := []groupedRow{
		{CategoryName: "Breads", CategorySlug: "breads", ID: "BRD-001", Name: "Sourdough", Price: 6.5},
		{CategoryName: "Cakes", CategorySlug: "cakes", ID: "CAK-001", Name: "Carrot Cake", Price: 18},
		{CategoryName: "Breads", CategorySlug: "breads", ID: "BRD-002", Name: "Rye Loaf", Price: 5},
		{CategoryName: "Cakes", CategorySlug: "cakes", ID: "CAK-002", Name: "Cheesecake", Price: 22},
		{CategoryName: "Breads", CategorySlug: "breads", ID: "BRD-003", Name: "Baguette", Price: 3.5},
	}

	groups := buildGroups(rows)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	if groups[0].Category != "Breads" || groups[1].Category != "Cakes" {
		t.Fatalf(
			"first-seen order not preserved: got %q, %q",
			groups[0].Category,
			groups[1].Category,
		)
	}

	if len(groups[0].Items) != 3 {
		t.Errorf("expected 3 bread items, got %d", len(groups[0].Items))
	}
	if len(groups[1].Items) != 2 {
		t.Errorf("expected 2 cake items, got %d", len(groups[1].Items))
	}

	if groups[0].Items[2].ID != "BRD-003" {
		t.Errorf(
			"row order within group not preserved: got %q",
			groups[0].Items[2].ID,
		)
	}

	if groups[0].Slug != "breads" {
		t.Errorf("expected slug %q, got %q", "breads", groups[0].Slug)
	}
}

func TestBuildGroupsEmpty(t *testing.T) {
	groups := buildGroups(nil)

	if groups == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(groups) != 0 {
		t.Fatalf("expected 0 groups, got %d", len(groups))
	}
}

func TestBuildGroupsSingleCategory(t *testing.T) {
	rows := []groupedRow{
		{CategoryName: "Pastries", CategorySlug: "pastries", ID: "PST-001", Name: "Croissant", Price: 4},
		{CategoryName: "Pastries", CategorySlug: "pastries", ID: "PST-002", Name: "Danish", Price: 4.5},
	}

	groups := buildGroups(rows)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(groups[0].Items))
	}
}
