package models

import "time"

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	OrderNumber     string      `gorm:"size:50;not null;uniqueIndex" json:"order_number"`
	Subtotal        float64     `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	DeliveryFee     float64     `gorm:"type:numeric(10,2);default:0" json:"delivery_fee"`
	TotalAmount     float64     `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	PaymentMethod   string      `gorm:"size:50;not null" json:"payment_method"`
	PaymentStatus   string      `gorm:"size:20;default:pending" json:"payment_status"`
	OrderStatus     string      `gorm:"size:20;default:pending;index" json:"order_status"`
	DeliveryAddress string      `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryDate    string      `gorm:"size:20" json:"delivery_date"`
	DeliveryTime    string      `gorm:"size:20" json:"delivery_time"`
	Notes           string      `gorm:"type:text" json:"notes"`
	OrderItems      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  float64   `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	TotalPrice float64   `gorm:"type:numeric(10,2);not null" json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}
