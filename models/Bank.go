package models

import (
	"strings"
	"time"
)

// Qualification stages a bank moves through. Any transition is allowed,
// including backward.
const (
	StageUnknown    = "unknown"
	StageCompatible = "compatible"
	StageSampled    = "sampled"
	StageConverted  = "converted"

	DefaultStage = StageUnknown
)

// Pasteurization equipment reported by a bank.
const (
	PasteurizerUnknown     = "Unknown"
	PasteurizerCirculating = "Circulating Water Bath"
	PasteurizerHolder      = "Holder Pasteurizer"
	PasteurizerFlash       = "Flash Heating"
	PasteurizerOther       = "Other"

	DefaultPasteurizer = PasteurizerUnknown
)

// Bottle formats a bank can fill.
const (
	Bottle120ml = "120ml"
	Bottle240ml = "240ml"
	Bottle1oz   = "1oz"
	Bottle2oz   = "2oz"
	Bottle4oz   = "4oz"
)

// Bank represents a tracked milk-bank organization progressing through the
// sales pipeline. The ID is assigned by the store and never changes.
type Bank struct {
	ID              string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name            string           `gorm:"not null;index" json:"name"`
	Location        string           `json:"location"`
	Contact         string           `json:"contact"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Stage           string           `gorm:"type:varchar(16);default:unknown" json:"stage"`
	Notes           string           `gorm:"type:text" json:"notes"`
	PasteurizerType string           `gorm:"type:varchar(32);default:Unknown" json:"pasteurizer_type"`
	VolumePotential int              `gorm:"not null;default:0" json:"volume_potential"`
	BottleSizes     []BankBottleSize `gorm:"foreignKey:BankID" json:"bottle_sizes"`
	NextAction      *time.Time       `json:"next_action,omitempty"`
	LastContact     *time.Time       `json:"last_contact,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// BankBottleSize holds one bottle format offered by a bank. The set per bank
// contains no duplicates; the write path enforces that.
type BankBottleSize struct {
	ID     uint   `gorm:"primarykey" json:"-"`
	BankID string `gorm:"not null;index" json:"-"`
	Size   string `gorm:"not null;type:varchar(8)" json:"size"`
}

// Stages lists the qualification stages in pipeline order.
func Stages() []string {
	return []string{StageUnknown, StageCompatible, StageSampled, StageConverted}
}

// ValidStage reports whether the provided value names a known stage.
func ValidStage(value string) bool {
	switch value {
	case StageUnknown, StageCompatible, StageSampled, StageConverted:
		return true
	}
	return false
}

// NormalizeStage coerces arbitrary input to a known stage, defaulting to
// unknown. Records persisted without a stage resolve to unknown as well.
func NormalizeStage(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if ValidStage(normalized) {
		return normalized
	}
	return DefaultStage
}

// PasteurizerTypes lists the selectable pasteurization methods.
func PasteurizerTypes() []string {
	return []string{
		PasteurizerUnknown,
		PasteurizerCirculating,
		PasteurizerHolder,
		PasteurizerFlash,
		PasteurizerOther,
	}
}

// ValidPasteurizerType reports whether the provided value names a known method.
func ValidPasteurizerType(value string) bool {
	switch value {
	case PasteurizerUnknown, PasteurizerCirculating, PasteurizerHolder,
		PasteurizerFlash, PasteurizerOther:
		return true
	}
	return false
}

// NormalizePasteurizerType coerces arbitrary input to a known method,
// defaulting to Unknown.
func NormalizePasteurizerType(value string) string {
	trimmed := strings.TrimSpace(value)
	if ValidPasteurizerType(trimmed) {
		return trimmed
	}
	return DefaultPasteurizer
}

// BottleSizes lists the selectable bottle formats.
func BottleSizes() []string {
	return []string{Bottle120ml, Bottle240ml, Bottle1oz, Bottle2oz, Bottle4oz}
}

// ValidBottleSize reports whether the provided value names a known format.
func ValidBottleSize(value string) bool {
	switch value {
	case Bottle120ml, Bottle240ml, Bottle1oz, Bottle2oz, Bottle4oz:
		return true
	}
	return false
}

// NormalizeBottleSizes drops unknown formats and duplicates while preserving
// the order of first appearance.
func NormalizeBottleSizes(values []string) []string {
	seen := make(map[string]bool, len(values))
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if !ValidBottleSize(trimmed) || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		normalized = append(normalized, trimmed)
	}
	return normalized
}

// SizeSet flattens the association rows into a plain list of formats.
func (b Bank) SizeSet() []string {
	sizes := make([]string, 0, len(b.BottleSizes))
	for _, entry := range b.BottleSizes {
		sizes = append(sizes, entry.Size)
	}
	return sizes
}

// HasSize reports whether the bank offers the provided bottle format.
func (b Bank) HasSize(size string) bool {
	for _, entry := range b.BottleSizes {
		if entry.Size == size {
			return true
		}
	}
	return false
}
