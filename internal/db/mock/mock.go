package mock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "banktrack/internal/log"
	"banktrack/models"
)

// New returns an in-memory sqlite database seeded with representative
// pipeline data.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:banktrack-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Bank{},
		&models.BankBottleSize{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	now := time.Now().UTC()
	lastWeek := now.AddDate(0, 0, -7)
	yesterday := now.AddDate(0, 0, -1)
	nextWeek := now.AddDate(0, 0, 7)

	banks := []models.Bank{
		{
			ID:              uuid.NewString(),
			Name:            "Cascade Mothers' Milk Bank",
			Location:        "Portland, OR",
			Contact:         "Dana Reyes",
			Email:           "dana@cascademilk.org",
			Phone:           "503-555-0137",
			Stage:           models.StageConverted,
			Notes:           "Running weekly batches since onboarding.",
			PasteurizerType: models.PasteurizerHolder,
			VolumePotential: 4200,
			BottleSizes: []models.BankBottleSize{
				{Size: models.Bottle120ml},
				{Size: models.Bottle240ml},
			},
			LastContact: &lastWeek,
			NextAction:  &nextWeek,
			CreatedAt:   now.AddDate(0, -3, 0),
			UpdatedAt:   lastWeek,
		},
		{
			ID:              uuid.NewString(),
			Name:            "Lakeshore Donor Milk Collective",
			Location:        "Chicago, IL",
			Contact:         "Priya Natarajan",
			Email:           "priya@lakeshoremilk.org",
			Stage:           models.StageSampled,
			Notes:           "Sample batch shipped, awaiting lab results.",
			PasteurizerType: models.PasteurizerCirculating,
			VolumePotential: 2600,
			BottleSizes: []models.BankBottleSize{
				{Size: models.Bottle2oz},
				{Size: models.Bottle4oz},
			},
			LastContact: &yesterday,
			NextAction:  &yesterday,
			CreatedAt:   now.AddDate(0, -2, 0),
			UpdatedAt:   yesterday,
		},
		{
			ID:              uuid.NewString(),
			Name:            "Gulf Coast Milk Bank",
			Location:        "Houston, TX",
			Stage:           models.StageUnknown,
			PasteurizerType: models.PasteurizerUnknown,
			CreatedAt:       now.AddDate(0, 0, -10),
			UpdatedAt:       now.AddDate(0, 0, -10),
		},
	}

	for i := range banks {
		if err := db.WithContext(ctx).Create(&banks[i]).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded", "banks", len(banks))
	return nil
}
