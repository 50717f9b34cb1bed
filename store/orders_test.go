package store

import (
	"strings"
	"testing"

	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")
	ribeye := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})
	ground := seedProduct(t, db, models.Product{Name: "Ground Beef", Price: 250.50, StockQuantity: 10})

	require.NoError(t, AddCartItem(db, user.ID, ribeye.ID, 2))
	require.NoError(t, AddCartItem(db, user.ID, ground.ID, 1))

	order, err := Checkout(db, &user, CheckoutInput{
		PaymentMethod:   "cod",
		DeliveryAddress: "123 Main St",
		DeliveryDate:    "2025-06-20",
		DeliveryTime:    "morning",
	}, decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "JRR-"))
	assert.InDelta(t, 1450.50, order.Subtotal, 0.001)
	assert.InDelta(t, 50, order.DeliveryFee, 0.001)
	assert.InDelta(t, 1500.50, order.TotalAmount, 0.001)
	assert.Equal(t, "pending", order.PaymentStatus)
	assert.Equal(t, "pending", order.OrderStatus)
	require.Len(t, order.OrderItems, 2)

	var stored models.Product
	require.NoError(t, db.First(&stored, ribeye.ID).Error)
	assert.Equal(t, 18, stored.StockQuantity)
	stored = models.Product{}
	require.NoError(t, db.First(&stored, ground.ID).Error)
	assert.Equal(t, 9, stored.StockQuantity)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Zero(t, cartCount, "checkout empties the cart")
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")
	ribeye := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})
	ground := seedProduct(t, db, models.Product{Name: "Ground Beef", Price: 250, StockQuantity: 1})

	require.NoError(t, AddCartItem(db, user.ID, ribeye.ID, 2))
	require.NoError(t, AddCartItem(db, user.ID, ground.ID, 5))

	_, err := Checkout(db, &user, CheckoutInput{
		PaymentMethod:   "cod",
		DeliveryAddress: "123 Main St",
	}, decimal.NewFromInt(50))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "Ground Beef")

	// The earlier decrement is rolled back with everything else.
	var stored models.Product
	require.NoError(t, db.First(&stored, ribeye.ID).Error)
	assert.Equal(t, 20, stored.StockQuantity)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Equal(t, int64(2), cartCount, "a failed checkout keeps the cart")
}

func TestCheckoutValidation(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")

	_, err := Checkout(db, &user, CheckoutInput{DeliveryAddress: "123 Main St"}, decimal.Zero)
	assert.True(t, IsValidation(err))

	_, err = Checkout(db, &user, CheckoutInput{PaymentMethod: "cod"}, decimal.Zero)
	assert.True(t, IsValidation(err))

	_, err = Checkout(db, &user, CheckoutInput{PaymentMethod: "cod", DeliveryAddress: "123 Main St"}, decimal.Zero)
	assert.True(t, IsValidation(err), "an empty cart cannot be checked out")
}

func TestCheckoutSkipsInactiveProduct(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")
	p := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})

	require.NoError(t, AddCartItem(db, user.ID, p.ID, 1))
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).
		Update("status", models.ProductStatusInactive).Error)

	_, err := Checkout(db, &user, CheckoutInput{
		PaymentMethod:   "cod",
		DeliveryAddress: "123 Main St",
	}, decimal.Zero)
	assert.True(t, IsValidation(err))
}

func TestGetOrderOwnership(t *testing.T) {
	db := openTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", "09170000001", "customer")
	other := seedUser(t, db, "other@example.com", "09170000002", "customer")
	p := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})

	require.NoError(t, AddCartItem(db, buyer.ID, p.ID, 1))
	order, err := Checkout(db, &buyer, CheckoutInput{
		PaymentMethod:   "cod",
		DeliveryAddress: "123 Main St",
	}, decimal.Zero)
	require.NoError(t, err)

	ownerSession := &models.Session{UserID: buyer.ID, UserRole: "customer"}
	got, err := GetOrder(db, order.ID, ownerSession)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, got.OrderNumber)
	assert.Len(t, got.OrderItems, 1)

	otherSession := &models.Session{UserID: other.ID, UserRole: "customer"}
	_, err = GetOrder(db, order.ID, otherSession)
	assert.ErrorIs(t, err, ErrNotFound, "foreign orders look nonexistent")

	adminSession := &models.Session{UserID: other.ID, UserRole: "admin"}
	_, err = GetOrder(db, order.ID, adminSession)
	assert.NoError(t, err)
}

func TestListOrdersByUser(t *testing.T) {
	db := openTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", "09170000001", "customer")
	other := seedUser(t, db, "other@example.com", "09170000002", "customer")
	p := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})

	for _, u := range []models.User{buyer, buyer, other} {
		require.NoError(t, AddCartItem(db, u.ID, p.ID, 1))
		_, err := Checkout(db, &u, CheckoutInput{
			PaymentMethod:   "cod",
			DeliveryAddress: "123 Main St",
		}, decimal.Zero)
		require.NoError(t, err)
	}

	orders, err := ListOrdersByUser(db, buyer.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	all, page, err := ListAllOrders(db, 1, 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Pages)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := openTestDB(t)
	buyer := seedUser(t, db, "buyer@example.com", "09170000001", "customer")
	p := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})

	require.NoError(t, AddCartItem(db, buyer.ID, p.ID, 1))
	order, err := Checkout(db, &buyer, CheckoutInput{
		PaymentMethod:   "cod",
		DeliveryAddress: "123 Main St",
	}, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, UpdateOrderStatus(db, order.ID, "confirmed"))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, "confirmed", stored.OrderStatus)

	err = UpdateOrderStatus(db, order.ID, "teleported")
	assert.True(t, IsValidation(err))

	err = UpdateOrderStatus(db, 9999, "confirmed")
	assert.ErrorIs(t, err, ErrNotFound)
}
