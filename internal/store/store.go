package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	applog "banktrack/internal/log"
	"banktrack/models"
)

var nowFunc = time.Now

// Store fronts the bank collection. It is the single source of truth for the
// record set: every successful write reloads the full set and pushes it to
// all live subscriptions.
type Store struct {
	db  *gorm.DB
	hub *hub
}

// New builds a Store over the provided database handle.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("store: database handle is nil")
	}
	return &Store{db: db, hub: newHub()}, nil
}

// Fields carries the user-editable attributes of a bank. Create consumes the
// whole struct; zero values mean empty.
type Fields struct {
	Name            string
	Location        string
	Contact         string
	Email           string
	Phone           string
	Stage           string
	Notes           string
	PasteurizerType string
	VolumePotential int
	BottleSizes     []string
	NextAction      *time.Time
	LastContact     *time.Time
}

// DateChange describes an edit to an optional calendar date. The zero value
// leaves the date untouched; Set with a nil Value clears it.
type DateChange struct {
	Set   bool
	Value *time.Time
}

// Changes carries a partial update. Nil pointers leave the corresponding
// field untouched. A non-nil empty BottleSizes clears the set.
type Changes struct {
	Name            *string
	Location        *string
	Contact         *string
	Email           *string
	Phone           *string
	Stage           *string
	Notes           *string
	PasteurizerType *string
	VolumePotential *int
	BottleSizes     []string
	NextAction      DateChange
	LastContact     DateChange
}

// Snapshot loads the complete record set ordered by name ascending.
func (s *Store) Snapshot(ctx context.Context) ([]models.Bank, error) {
	var banks []models.Bank
	err := s.db.WithContext(ctx).
		Preload("BottleSizes").
		Order("name asc").
		Find(&banks).Error
	if err != nil {
		return nil, &StoreError{Op: "snapshot", Err: err}
	}
	return banks, nil
}

// Create writes a new bank with a store-assigned id and timestamps. The name
// is required; stage and pasteurizer type default when absent or invalid.
func (s *Store) Create(ctx context.Context, fields Fields) (models.Bank, error) {
	if fields.Name == "" {
		return models.Bank{}, &StoreError{Op: "create", Err: errors.New("name is required")}
	}

	now := nowFunc().UTC()
	bank := models.Bank{
		ID:              uuid.NewString(),
		Name:            fields.Name,
		Location:        fields.Location,
		Contact:         fields.Contact,
		Email:           fields.Email,
		Phone:           fields.Phone,
		Stage:           models.NormalizeStage(fields.Stage),
		Notes:           fields.Notes,
		PasteurizerType: models.NormalizePasteurizerType(fields.PasteurizerType),
		VolumePotential: max(fields.VolumePotential, 0),
		NextAction:      normalizeDate(fields.NextAction),
		LastContact:     normalizeDate(fields.LastContact),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, size := range models.NormalizeBottleSizes(fields.BottleSizes) {
		bank.BottleSizes = append(bank.BottleSizes, models.BankBottleSize{Size: size})
	}

	if err := s.db.WithContext(ctx).Create(&bank).Error; err != nil {
		return models.Bank{}, &StoreError{Op: "create", Err: err}
	}

	applog.Debug(ctx, "bank created", "id", bank.ID, "name", bank.Name)
	s.broadcast(ctx)
	return bank, nil
}

// Update merges the provided changes into the existing record and refreshes
// updatedAt. Concurrent updates are last-write-wins; the later save silently
// replaces the earlier one.
func (s *Store) Update(ctx context.Context, id string, changes Changes) (models.Bank, error) {
	var bank models.Bank
	err := s.db.WithContext(ctx).Preload("BottleSizes").First(&bank, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Bank{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return models.Bank{}, &StoreError{Op: "update", Err: err}
	}

	applyChanges(&bank, changes)
	bank.UpdatedAt = nowFunc().UTC()
	if bank.UpdatedAt.Before(bank.CreatedAt) {
		bank.UpdatedAt = bank.CreatedAt
	}

	if err := s.db.WithContext(ctx).Omit("BottleSizes").Save(&bank).Error; err != nil {
		return models.Bank{}, &StoreError{Op: "update", Err: err}
	}

	if changes.BottleSizes != nil {
		if err := s.replaceSizes(ctx, &bank, models.NormalizeBottleSizes(changes.BottleSizes)); err != nil {
			return models.Bank{}, &StoreError{Op: "update", Err: err}
		}
	}

	if err := s.db.WithContext(ctx).Preload("BottleSizes").First(&bank, "id = ?", id).Error; err != nil {
		return models.Bank{}, &StoreError{Op: "update", Err: err}
	}

	applog.Debug(ctx, "bank updated", "id", bank.ID)
	s.broadcast(ctx)
	return bank, nil
}

// Delete removes the record. Deleting an absent record is not an error, per
// document-store semantics.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("bank_id = ?", id).Delete(&models.BankBottleSize{}).Error; err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	if err := s.db.WithContext(ctx).Delete(&models.Bank{}, "id = ?", id).Error; err != nil {
		return &StoreError{Op: "delete", Err: err}
	}

	applog.Debug(ctx, "bank deleted", "id", id)
	s.broadcast(ctx)
	return nil
}

func (s *Store) replaceSizes(ctx context.Context, bank *models.Bank, sizes []string) error {
	if err := s.db.WithContext(ctx).Where("bank_id = ?", bank.ID).Delete(&models.BankBottleSize{}).Error; err != nil {
		return err
	}
	if len(sizes) == 0 {
		return nil
	}

	rows := make([]models.BankBottleSize, 0, len(sizes))
	for _, size := range sizes {
		rows = append(rows, models.BankBottleSize{BankID: bank.ID, Size: size})
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func applyChanges(bank *models.Bank, changes Changes) {
	if changes.Name != nil && *changes.Name != "" {
		bank.Name = *changes.Name
	}
	if changes.Location != nil {
		bank.Location = *changes.Location
	}
	if changes.Contact != nil {
		bank.Contact = *changes.Contact
	}
	if changes.Email != nil {
		bank.Email = *changes.Email
	}
	if changes.Phone != nil {
		bank.Phone = *changes.Phone
	}
	if changes.Stage != nil {
		bank.Stage = models.NormalizeStage(*changes.Stage)
	}
	if changes.Notes != nil {
		bank.Notes = *changes.Notes
	}
	if changes.PasteurizerType != nil {
		bank.PasteurizerType = models.NormalizePasteurizerType(*changes.PasteurizerType)
	}
	if changes.VolumePotential != nil {
		bank.VolumePotential = max(*changes.VolumePotential, 0)
	}
	if changes.NextAction.Set {
		bank.NextAction = normalizeDate(changes.NextAction.Value)
	}
	if changes.LastContact.Set {
		bank.LastContact = normalizeDate(changes.LastContact.Value)
	}
}

// normalizeDate strips the time component; the tracker only deals in
// calendar days.
func normalizeDate(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	year, month, day := value.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &date
}
