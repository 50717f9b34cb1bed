package models

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Unit          string    `gorm:"size:50;not null" json:"unit"`
	Category      string    `gorm:"size:100;not null;index" json:"category"`
	ImageURL      string    `gorm:"size:500" json:"image_url"`
	StockQuantity int       `gorm:"default:0" json:"stock_quantity"`
	MinStockLevel int       `gorm:"default:5" json:"min_stock_level"`
	Status        string    `gorm:"size:20;default:active;index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// StockAudit records every stock mutation with the before/after values
// and the admin who applied it.
type StockAudit struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	ActorID   uint           `gorm:"index" json:"actor_id"`
	Operation string         `gorm:"size:20;not null" json:"operation"`
	OldStock  int            `json:"old_stock"`
	NewStock  int            `json:"new_stock"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}
