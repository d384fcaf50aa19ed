package mock

import (
	"context"
	"testing"

	"banktrack/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var banks []models.Bank
	if err := db.WithContext(ctx).Preload("BottleSizes").Find(&banks).Error; err != nil {
		t.Fatalf("query banks: %v", err)
	}
	if len(banks) == 0 {
		t.Fatal("expected seeded banks")
	}

	var converted int
	for _, bank := range banks {
		if bank.ID == "" {
			t.Fatalf("expected bank %q to have a store-assigned id", bank.Name)
		}
		if !models.ValidStage(bank.Stage) {
			t.Fatalf("bank %q has invalid stage %q", bank.Name, bank.Stage)
		}
		if bank.UpdatedAt.Before(bank.CreatedAt) {
			t.Fatalf("bank %q has updatedAt before createdAt", bank.Name)
		}
		if bank.Stage == models.StageConverted {
			converted++
		}
	}
	if converted == 0 {
		t.Fatal("expected at least one converted bank in the seed data")
	}
}
