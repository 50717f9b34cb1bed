package store

import (
	"testing"

	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCartItemAccumulates(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")
	p := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})

	require.NoError(t, AddCartItem(db, user.ID, p.ID, 2))
	require.NoError(t, AddCartItem(db, user.ID, p.ID, 3))

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", user.ID, p.ID).First(&item).Error)
	assert.Equal(t, 5, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "re-adding merges into the existing line")
}

func TestAddCartItemRejections(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")
	p := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})
	inactive := seedProduct(t, db, models.Product{Name: "Retired Cut", Price: 300, StockQuantity: 20, Status: models.ProductStatusInactive})

	err := AddCartItem(db, user.ID, p.ID, 0)
	assert.True(t, IsValidation(err))

	err = AddCartItem(db, user.ID, inactive.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	err = AddCartItem(db, user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetCartItemQuantity(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")
	p := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})

	require.NoError(t, AddCartItem(db, user.ID, p.ID, 2))
	require.NoError(t, SetCartItemQuantity(db, user.ID, p.ID, 7))

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&item).Error)
	assert.Equal(t, 7, item.Quantity)

	err := SetCartItemQuantity(db, user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	err = SetCartItemQuantity(db, user.ID, p.ID, 0)
	assert.True(t, IsValidation(err))
}

func TestGetCartTotals(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")
	ribeye := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})
	ground := seedProduct(t, db, models.Product{Name: "Ground Beef", Price: 250.50, StockQuantity: 0})

	require.NoError(t, AddCartItem(db, user.ID, ribeye.ID, 2))
	require.NoError(t, AddCartItem(db, user.ID, ground.ID, 1))

	lines, subtotal, err := GetCart(db, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, ribeye.ID, lines[0].ProductID)
	assert.Equal(t, 1200.0, lines[0].LineTotal)
	assert.True(t, lines[0].InStock)
	assert.Equal(t, "₱600.00", lines[0].FormattedPrice)

	assert.Equal(t, ground.ID, lines[1].ProductID)
	assert.Equal(t, 250.50, lines[1].LineTotal)
	assert.False(t, lines[1].InStock)

	assert.InDelta(t, 1450.50, subtotal, 0.001)
}

func TestRemoveAndClearCart(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")
	p1 := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})
	p2 := seedProduct(t, db, models.Product{Name: "Sirloin", Price: 350, StockQuantity: 20})

	require.NoError(t, AddCartItem(db, user.ID, p1.ID, 1))
	require.NoError(t, AddCartItem(db, user.ID, p2.ID, 1))

	require.NoError(t, RemoveCartItem(db, user.ID, p1.ID))
	err := RemoveCartItem(db, user.ID, p1.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, ClearCart(db, user.ID))
	require.NoError(t, ClearCart(db, user.ID))

	lines, subtotal, err := GetCart(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Zero(t, subtotal)
}

func TestFavorites(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "juan@example.com", "09171234567", "customer")
	p := seedProduct(t, db, models.Product{Name: "Ribeye", Price: 600, StockQuantity: 20})

	require.NoError(t, AddFavorite(db, user.ID, p.ID))
	require.NoError(t, AddFavorite(db, user.ID, p.ID))

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "favoriting twice keeps a single row")

	views, err := ListFavorites(db, user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Ribeye", views[0].Name)
	assert.NotEmpty(t, views[0].Badge)

	require.NoError(t, RemoveFavorite(db, user.ID, p.ID))
	err = RemoveFavorite(db, user.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = AddFavorite(db, user.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
