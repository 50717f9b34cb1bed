package store

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderNumberPrefix = "JRR-"

type CheckoutInput struct {
	PaymentMethod   string
	DeliveryAddress string
	DeliveryDate    string
	DeliveryTime    string
	Notes           string
}

// Checkout turns the user's cart into an order in one transaction: stock is
// decremented under the non-negative guard, totals are computed server-side,
// and the cart is cleared. Any failure rolls the whole order back.
func Checkout(db *gorm.DB, user *models.User, in CheckoutInput, deliveryFee decimal.Decimal) (*models.Order, error) {
	if in.PaymentMethod == "" {
		return nil, invalid("Payment method is required")
	}
	if in.DeliveryAddress == "" {
		return nil, invalid("Delivery address is required")
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", user.ID).Order("created_at").Find(&cartItems).Error; err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(cartItems) == 0 {
			return invalid("Cart is empty")
		}

		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(cartItems))

		for _, ci := range cartItems {
			var product models.Product
			err := tx.Where("id = ? AND status = ?", ci.ProductID, models.ProductStatusActive).
				First(&product).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid(fmt.Sprintf("Product %d is no longer available", ci.ProductID))
			}
			if err != nil {
				return fmt.Errorf("get product %d: %w", ci.ProductID, err)
			}

			// The decrement is guarded so a concurrent checkout can never
			// push stock below zero.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", product.ID, ci.Quantity).
				Updates(map[string]interface{}{
					"stock_quantity": gorm.Expr("stock_quantity - ?", ci.Quantity),
					"updated_at":     time.Now(),
				})
			if res.Error != nil {
				return fmt.Errorf("reserve stock for %q: %w", product.Name, res.Error)
			}
			if res.RowsAffected == 0 {
				return invalid(fmt.Sprintf("Insufficient stock for %s", product.Name))
			}

			unitPrice := decimal.NewFromFloat(product.Price)
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(ci.Quantity)))
			subtotal = subtotal.Add(lineTotal)

			items = append(items, models.OrderItem{
				ProductID:  product.ID,
				Quantity:   ci.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: lineTotal.InexactFloat64(),
			})
		}

		total := subtotal.Add(deliveryFee)
		order = models.Order{
			UserID:          user.ID,
			OrderNumber:     newOrderNumber(),
			Subtotal:        subtotal.InexactFloat64(),
			DeliveryFee:     deliveryFee.InexactFloat64(),
			TotalAmount:     total.InexactFloat64(),
			PaymentMethod:   in.PaymentMethod,
			PaymentStatus:   "pending",
			OrderStatus:     "pending",
			DeliveryAddress: in.DeliveryAddress,
			DeliveryDate:    in.DeliveryDate,
			DeliveryTime:    in.DeliveryTime,
			Notes:           in.Notes,
			OrderItems:      items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func newOrderNumber() string {
	return orderNumberPrefix + strings.ToUpper(uuid.NewString()[:13])
}

// GetOrder returns an order with its items. Customers can only read their
// own orders.
func GetOrder(db *gorm.DB, orderID uint, requester *models.Session) (*models.Order, error) {
	var order models.Order
	err := db.Preload("OrderItems").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if requester.UserRole != "admin" && order.UserID != requester.UserID {
		return nil, ErrNotFound
	}
	return &order, nil
}

func ListOrdersByUser(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListAllOrders is the admin view, newest first, paginated.
func ListAllOrders(db *gorm.DB, page, limit int) ([]models.Order, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 15
	}

	var total int64
	if err := db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("count orders: %w", err)
	}

	var orders []models.Order
	err := db.Preload("OrderItems").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list orders: %w", err)
	}

	return orders, Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func UpdateOrderStatus(db *gorm.DB, orderID uint, status string) error {
	switch status {
	case "pending", "confirmed", "preparing", "out_for_delivery", "delivered", "cancelled":
	default:
		return invalid("Invalid order status")
	}

	res := db.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{"order_status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
