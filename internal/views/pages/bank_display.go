package pages

import (
	"strconv"
	"strings"
	"time"

	"banktrack/models"
)

// FilterOption represents a selectable record-list filter.
type FilterOption struct {
	Value string
	Label string
}

// SortOption represents a selectable record-list sort.
type SortOption struct {
	Value string
	Label string
}

// FilterOptions lists the selectable filters in display order.
func FilterOptions() []FilterOption {
	options := []FilterOption{
		{Value: FilterAll, Label: "All"},
		{Value: FilterOverdue, Label: "Overdue"},
	}
	for _, stage := range models.Stages() {
		options = append(options, FilterOption{Value: stage, Label: StageLabel(stage)})
	}
	return options
}

// SortOptions lists the selectable sorts in display order.
func SortOptions() []SortOption {
	return []SortOption{
		{Value: SortNextAction, Label: "Next action"},
		{Value: SortName, Label: "Name"},
		{Value: SortVolume, Label: "Volume"},
	}
}

// StageLabel converts a stage value into its display label.
func StageLabel(stage string) string {
	switch models.NormalizeStage(stage) {
	case models.StageCompatible:
		return "Compatible"
	case models.StageSampled:
		return "Sampled"
	case models.StageConverted:
		return "Converted"
	default:
		return "Unknown"
	}
}

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// FormatDate renders an optional calendar date in a friendly day month year
// format, falling back to a dash.
func FormatDate(value *time.Time) string {
	if value == nil {
		return "—"
	}
	return value.Format("02 Jan 2006")
}

// DateInputValue renders an optional calendar date for an HTML date input.
func DateInputValue(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02")
}

// ParseDate extracts an optional calendar date from form input. Blank or
// malformed input yields nil.
func ParseDate(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil
	}
	return &parsed
}

// VolumeLabel renders a bottles-per-month figure for display.
func VolumeLabel(volume int) string {
	if volume <= 0 {
		return "—"
	}
	return strconv.Itoa(volume) + " bottles/mo"
}

// SizeSummary renders a bank's bottle formats as a comma-separated list.
func SizeSummary(bank models.Bank) string {
	sizes := bank.SizeSet()
	if len(sizes) == 0 {
		return "—"
	}
	return strings.Join(sizes, ", ")
}
