package pages

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"banktrack/models"
)

// Record-list filters. A stage name is also a valid filter.
const (
	FilterAll     = "all"
	FilterOverdue = "overdue"
)

// Sort keys for the record list.
const (
	SortNextAction = "next-action"
	SortName       = "name"
	SortVolume     = "volume"
)

var nowFunc = time.Now

// PipelineView holds the current record set plus the transient UI state the
// list derivations depend on. Derivations are pure; the view never mutates
// the store.
type PipelineView struct {
	Banks       []models.Bank
	Filter      string
	Query       string
	Sort        string
	EditingID   string
	ShowAddForm bool

	// Universe is the fixed number of known eligible organizations the
	// progress bar measures against, deliberately not the live record count.
	Universe int
}

// NewPipelineView builds a view over the provided snapshot with default UI
// state.
func NewPipelineView(banks []models.Bank, universe int) PipelineView {
	return PipelineView{
		Banks:    banks,
		Filter:   FilterAll,
		Sort:     SortNextAction,
		Universe: universe,
	}
}

// NormalizeFilter coerces arbitrary input to a known filter, defaulting to
// all. Stage names pass through unchanged.
func NormalizeFilter(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch {
	case normalized == FilterAll, normalized == FilterOverdue:
		return normalized
	case models.ValidStage(normalized):
		return normalized
	}
	return FilterAll
}

// NormalizeSort coerces arbitrary input to a known sort key, defaulting to
// next-action.
func NormalizeSort(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case SortName:
		return SortName
	case SortVolume:
		return SortVolume
	}
	return SortNextAction
}

// Overdue reports whether the bank's next-action date has passed: the date is
// set and falls strictly before the current calendar day. A bank with no
// next action is never overdue.
func Overdue(bank models.Bank, now time.Time) bool {
	if bank.NextAction == nil {
		return false
	}
	due := *bank.NextAction
	return dateOnly(due).Before(dateOnly(now))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StageCounts tallies the full record set by stage in a single pass. Records
// with an absent or unknown stage count as unknown.
func (v PipelineView) StageCounts() map[string]int {
	counts := make(map[string]int, 4)
	for _, bank := range v.Banks {
		counts[models.NormalizeStage(bank.Stage)]++
	}
	return counts
}

// OverdueCount tallies overdue banks across the full record set.
func (v PipelineView) OverdueCount() int {
	now := nowFunc()
	count := 0
	for _, bank := range v.Banks {
		if Overdue(bank, now) {
			count++
		}
	}
	return count
}

// ConvertedCount tallies banks that reached the converted stage.
func (v PipelineView) ConvertedCount() int {
	return v.StageCounts()[models.StageConverted]
}

// ProgressPercent reports conversion progress against the fixed universe of
// known eligible organizations, clamped to [0, 100].
func (v PipelineView) ProgressPercent() int {
	if v.Universe <= 0 {
		return 0
	}
	percent := v.ConvertedCount() * 100 / v.Universe
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}

// Visible derives the record list the presentation renders: the stage or
// overdue filter first, then the case-insensitive substring search over
// name, location, and contact, then the active sort.
func (v PipelineView) Visible() []models.Bank {
	now := nowFunc()

	visible := make([]models.Bank, 0, len(v.Banks))
	for _, bank := range v.Banks {
		if !v.passesFilter(bank, now) {
			continue
		}
		if !v.matchesQuery(bank) {
			continue
		}
		visible = append(visible, bank)
	}

	v.sortBanks(visible, now)
	return visible
}

func (v PipelineView) passesFilter(bank models.Bank, now time.Time) bool {
	switch v.Filter {
	case "", FilterAll:
		return true
	case FilterOverdue:
		return Overdue(bank, now)
	}
	return models.NormalizeStage(bank.Stage) == v.Filter
}

func (v PipelineView) matchesQuery(bank models.Bank) bool {
	query := strings.ToLower(strings.TrimSpace(v.Query))
	if query == "" {
		return true
	}
	return containsFold(bank.Name, query) ||
		containsFold(bank.Location, query) ||
		containsFold(bank.Contact, query)
}

func (v PipelineView) sortBanks(banks []models.Bank, now time.Time) {
	switch v.Sort {
	case SortName:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(banks, func(i, j int) bool {
			return collator.CompareString(banks[i].Name, banks[j].Name) < 0
		})
	case SortVolume:
		sort.SliceStable(banks, func(i, j int) bool {
			return banks[i].VolumePotential > banks[j].VolumePotential
		})
	default:
		// Next-action order: overdue first, then dated ascending, then
		// undated. Ties keep snapshot order.
		sort.SliceStable(banks, func(i, j int) bool {
			ri, rj := actionRank(banks[i], now), actionRank(banks[j], now)
			if ri != rj {
				return ri < rj
			}
			if ri == 1 {
				return banks[i].NextAction.Before(*banks[j].NextAction)
			}
			return false
		})
	}
}

func actionRank(bank models.Bank, now time.Time) int {
	switch {
	case Overdue(bank, now):
		return 0
	case bank.NextAction != nil:
		return 1
	}
	return 2
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
