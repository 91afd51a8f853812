package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "mixup/internal/log"
	"mixup/models"
)

// Credentials of the seeded bartender account.
const (
	SeedEmail    = "bar@mixup.app"
	SeedPassword = "bitters"
)

// New returns an in-memory sqlite database seeded with a small back bar
// and a few classic drinks.
func New(ctx context.Context) (*gorm.DB, error) {
	return Open(ctx, "mixup-mock")
}

// Open is New with an explicit in-memory database name, so tests can keep
// their data apart.
func Open(ctx context.Context, name string) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database", "name", name)

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return nil, err
	}

	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return nil, err
	}
	if users == 0 {
		if err := seed(ctx, db); err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "House Bartender",
		Email:        SeedEmail,
		PasswordHash: string(password),
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	liquids := []models.Liquid{
		{Name: "Lairds Applejack", ABV: .50, Notes: "Bottled-in-bond apple brandy."},
		{Name: "Cointreau", ABV: .40, Sugar: .25},
		{Name: "Lemon Juice", Sugar: .016, Acid: .06, Notes: "Fresh, strained."},
		{Name: "Simple Syrup", Sugar: .615, Notes: "1:1 by volume."},
	}
	for i := range liquids {
		if err := db.WithContext(ctx).Create(&liquids[i]).Error; err != nil {
			return err
		}
	}

	drinks := []models.Drink{
		{
			Name:  "Jack Rose",
			Style: "shaken",
			Pours: []models.DrinkPour{
				{Position: 0, IngredientName: "Lairds Applejack", Ounces: 2.00},
				{Position: 1, IngredientName: "Simple Syrup", Ounces: 0.75},
				{Position: 2, IngredientName: "Lemon Juice", Ounces: 0.75},
			},
		},
		{
			Name:  "Applejack Sidecar",
			Style: "shaken",
			Pours: []models.DrinkPour{
				{Position: 0, IngredientName: "Lairds Applejack", Ounces: 1.50},
				{Position: 1, IngredientName: "Cointreau", Ounces: 0.75},
				{Position: 2, IngredientName: "Lemon Juice", Ounces: 0.75},
			},
		},
		{
			Name:  "Orchard Stir",
			Style: "stirred",
			Notes: "Spirit-forward; serve up.",
			Pours: []models.DrinkPour{
				{Position: 0, IngredientName: "Lairds Applejack", Ounces: 2.00},
				{Position: 1, IngredientName: "Cointreau", Ounces: 0.50},
			},
		},
	}
	for i := range drinks {
		if err := db.WithContext(ctx).Create(&drinks[i]).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded", "liquids", len(liquids), "drinks", len(drinks))
	return nil
}
