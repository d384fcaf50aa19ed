package pages

import (
	"testing"
	"time"

	"banktrack/models"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func withNow(t *testing.T, now time.Time) {
	t.Helper()
	original := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = original })
}

func TestOverdue(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		bank models.Bank
		want bool
	}{
		{"no next action", models.Bank{}, false},
		{"yesterday", models.Bank{NextAction: datePtr(2024, time.May, 31)}, true},
		{"long past", models.Bank{NextAction: datePtr(2024, time.January, 1)}, true},
		{"today", models.Bank{NextAction: datePtr(2024, time.June, 1)}, false},
		{"tomorrow", models.Bank{NextAction: datePtr(2024, time.June, 2)}, false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Overdue(tt.bank, now); got != tt.want {
				t.Fatalf("Overdue() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestStageFilterReturnsExactMatches(t *testing.T) {
	view := NewPipelineView([]models.Bank{
		{Name: "Alpha", Stage: models.StageConverted},
		{Name: "Beta", Stage: models.StageUnknown},
		{Name: "Gamma"}, // absent stage counts as unknown
	}, 10)
	view.Filter = models.StageConverted

	visible := view.Visible()
	if len(visible) != 1 || visible[0].Name != "Alpha" {
		t.Fatalf("expected only Alpha under converted filter, got %v", visible)
	}

	view.Filter = models.StageUnknown
	visible = view.Visible()
	if len(visible) != 2 {
		t.Fatalf("expected absent stage to be treated as unknown, got %v", visible)
	}
}

func TestOverdueFilter(t *testing.T) {
	withNow(t, time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))

	view := NewPipelineView([]models.Bank{
		{Name: "Past", NextAction: datePtr(2024, time.May, 1)},
		{Name: "Future", NextAction: datePtr(2024, time.July, 1)},
		{Name: "Undated"},
	}, 10)
	view.Filter = FilterOverdue

	visible := view.Visible()
	if len(visible) != 1 || visible[0].Name != "Past" {
		t.Fatalf("expected only the past-due bank, got %v", visible)
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	view := NewPipelineView([]models.Bank{
		{Name: "Cascade Milk Bank", Location: "Portland", Contact: "Dana"},
		{Name: "Lakeshore", Location: "Chicago", Contact: "Priya"},
	}, 10)

	view.Query = "CASC"
	if visible := view.Visible(); len(visible) != 1 || visible[0].Name != "Cascade Milk Bank" {
		t.Fatalf("expected substring match on name, got %v", visible)
	}

	view.Query = "chic"
	if visible := view.Visible(); len(visible) != 1 || visible[0].Name != "Lakeshore" {
		t.Fatalf("expected substring match on location, got %v", visible)
	}

	view.Query = "riy"
	if visible := view.Visible(); len(visible) != 1 || visible[0].Name != "Lakeshore" {
		t.Fatalf("expected substring match on contact, got %v", visible)
	}

	view.Query = "nobody"
	if visible := view.Visible(); len(visible) != 0 {
		t.Fatalf("expected no matches, got %v", visible)
	}
}

func TestSearchAppliesAfterFilter(t *testing.T) {
	view := NewPipelineView([]models.Bank{
		{Name: "Cascade", Stage: models.StageConverted},
		{Name: "Cascade Annex", Stage: models.StageUnknown},
	}, 10)
	view.Filter = models.StageConverted
	view.Query = "cascade"

	visible := view.Visible()
	if len(visible) != 1 || visible[0].Name != "Cascade" {
		t.Fatalf("expected filter to apply before search, got %v", visible)
	}
}

func TestNextActionSortOrdersOverdueDatedUndated(t *testing.T) {
	withNow(t, time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC))

	view := NewPipelineView([]models.Bank{
		{Name: "Undated"},
		{Name: "Later", NextAction: datePtr(2024, time.August, 1)},
		{Name: "Overdue", NextAction: datePtr(2024, time.March, 1)},
		{Name: "Soon", NextAction: datePtr(2024, time.June, 10)},
	}, 10)
	view.Sort = SortNextAction

	visible := view.Visible()
	want := []string{"Overdue", "Soon", "Later", "Undated"}
	for i, name := range want {
		if visible[i].Name != name {
			t.Fatalf("position %d = %q, want %q (full order %v)", i, visible[i].Name, name, visible)
		}
	}
}

func TestNameSortIsCaseAware(t *testing.T) {
	view := NewPipelineView([]models.Bank{
		{Name: "beta"},
		{Name: "Alpha"},
		{Name: "gamma"},
	}, 10)
	view.Sort = SortName

	visible := view.Visible()
	want := []string{"Alpha", "beta", "gamma"}
	for i, name := range want {
		if visible[i].Name != name {
			t.Fatalf("position %d = %q, want %q", i, visible[i].Name, name)
		}
	}
}

func TestVolumeSortDescendingWithMissingAsZero(t *testing.T) {
	view := NewPipelineView([]models.Bank{
		{Name: "None"},
		{Name: "Big", VolumePotential: 5000},
		{Name: "Small", VolumePotential: 100},
	}, 10)
	view.Sort = SortVolume

	visible := view.Visible()
	want := []string{"Big", "Small", "None"}
	for i, name := range want {
		if visible[i].Name != name {
			t.Fatalf("position %d = %q, want %q", i, visible[i].Name, name)
		}
	}
}

func TestStageCountsScenario(t *testing.T) {
	view := NewPipelineView([]models.Bank{
		{Name: "Alpha", Stage: models.StageConverted},
		{Name: "Beta", Stage: models.StageUnknown},
	}, 10)

	counts := view.StageCounts()
	if counts[models.StageConverted] != 1 || counts[models.StageUnknown] != 1 {
		t.Fatalf("unexpected stage counts %v", counts)
	}
	if counts[models.StageCompatible] != 0 || counts[models.StageSampled] != 0 {
		t.Fatalf("expected zero counts for untouched stages, got %v", counts)
	}

	view.Filter = models.StageConverted
	visible := view.Visible()
	if len(visible) != 1 || visible[0].Name != "Alpha" {
		t.Fatalf("converted filter should return only Alpha, got %v", visible)
	}
}

func TestOverdueBankAppearsFirstScenario(t *testing.T) {
	withNow(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	view := NewPipelineView([]models.Bank{
		{Name: "Other", NextAction: datePtr(2024, time.December, 1)},
		{Name: "Bank A", NextAction: datePtr(2024, time.January, 1)},
	}, 10)

	view.Filter = FilterOverdue
	if visible := view.Visible(); len(visible) != 1 || visible[0].Name != "Bank A" {
		t.Fatalf("expected Bank A under overdue filter, got %v", visible)
	}

	view.Filter = FilterAll
	view.Sort = SortNextAction
	if visible := view.Visible(); visible[0].Name != "Bank A" {
		t.Fatalf("expected Bank A to sort first, got %v", visible)
	}
}

func TestProgressPercentUsesFixedUniverse(t *testing.T) {
	banks := []models.Bank{
		{Name: "A", Stage: models.StageConverted},
		{Name: "B", Stage: models.StageConverted},
		{Name: "C", Stage: models.StageSampled},
	}

	view := NewPipelineView(banks, 10)
	if got := view.ProgressPercent(); got != 20 {
		t.Fatalf("ProgressPercent() = %d, want 20", got)
	}

	// The denominator stays the configured universe even when more records
	// exist than the universe claims.
	view = NewPipelineView(banks, 1)
	if got := view.ProgressPercent(); got != 100 {
		t.Fatalf("ProgressPercent() = %d, want clamped 100", got)
	}

	view = NewPipelineView(banks, 0)
	if got := view.ProgressPercent(); got != 0 {
		t.Fatalf("ProgressPercent() = %d, want 0 for empty universe", got)
	}
}

func TestNormalizeFilter(t *testing.T) {
	cases := map[string]string{
		"":                    FilterAll,
		"all":                 FilterAll,
		" Overdue ":           FilterOverdue,
		"converted":           models.StageConverted,
		"COMPATIBLE":          models.StageCompatible,
		"something-unrelated": FilterAll,
	}
	for input, want := range cases {
		if got := NormalizeFilter(input); got != want {
			t.Fatalf("NormalizeFilter(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeSort(t *testing.T) {
	cases := map[string]string{
		"":            SortNextAction,
		"next-action": SortNextAction,
		"Name":        SortName,
		"volume":      SortVolume,
		"bogus":       SortNextAction,
	}
	for input, want := range cases {
		if got := NormalizeSort(input); got != want {
			t.Fatalf("NormalizeSort(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestVisibleDoesNotMutateSnapshot(t *testing.T) {
	banks := []models.Bank{
		{Name: "Zulu"},
		{Name: "Alpha"},
	}
	view := NewPipelineView(banks, 10)
	view.Sort = SortName
	view.Visible()

	if banks[0].Name != "Zulu" {
		t.Fatalf("Visible must sort a copy, snapshot order changed: %v", banks)
	}
}
