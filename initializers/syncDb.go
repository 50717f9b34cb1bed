package initializers

import (
	"log"

	"github.com/jrrodriguez/meatdealer-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.PasswordReset{},
		&models.Product{},
		&models.StockAudit{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartItem{},
		&models.Favorite{},
	)
	if err != nil {
		log.Fatal("Database migration failed: ", err)
	}
	log.Println("Database synced successfully.")
}
