package store

import (
	"testing"

	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.PasswordReset{},
		&models.Product{},
		&models.StockAudit{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartItem{},
		&models.Favorite{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) models.Product {
	t.Helper()

	if p.Unit == "" {
		p.Unit = "kg"
	}
	if p.Category == "" {
		p.Category = "fresh"
	}
	if p.Status == "" {
		p.Status = models.ProductStatusActive
	}
	if p.MinStockLevel == 0 {
		p.MinStockLevel = 5
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedUser(t *testing.T, db *gorm.DB, email, phone, role string) models.User {
	t.Helper()

	u := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Phone:        phone,
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Status:       "active",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}
