package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/jrrodriguez/meatdealer-api/utils"
	"gorm.io/gorm"
)

// AddCartItem adds a product to the user's cart, accumulating quantity when
// the product is already there.
func AddCartItem(db *gorm.DB, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return invalid("Quantity must be greater than zero")
	}

	var product models.Product
	err := db.Where("id = ? AND status = ?", productID, models.ProductStatusActive).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}

	var item models.CartItem
	err = db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	switch {
	case err == nil:
		err = db.Model(&item).Updates(map[string]interface{}{
			"quantity":   item.Quantity + quantity,
			"updated_at": time.Now(),
		}).Error
		if err != nil {
			return fmt.Errorf("update cart item: %w", err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := db.Create(&item).Error; err != nil {
			return fmt.Errorf("create cart item: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("get cart item: %w", err)
	}
}

// SetCartItemQuantity replaces the quantity of an existing cart line.
func SetCartItemQuantity(db *gorm.DB, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return invalid("Quantity must be greater than zero")
	}

	res := db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{"quantity": quantity, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func RemoveCartItem(db *gorm.DB, userID, productID uint) error {
	res := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func ClearCart(db *gorm.DB, userID uint) error {
	if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

type CartLine struct {
	ProductID      uint    `json:"product_id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Unit           string  `json:"unit"`
	ImageURL       string  `json:"image_url"`
	Quantity       int     `json:"quantity"`
	LineTotal      float64 `json:"line_total"`
	InStock        bool    `json:"in_stock"`
	FormattedPrice string  `json:"formatted_price"`
}

// GetCart returns the user's cart joined with current product data. Totals
// are computed server-side.
func GetCart(db *gorm.DB, userID uint) ([]CartLine, float64, error) {
	var lines []CartLine
	err := db.Model(&models.CartItem{}).
		Select("cart_items.product_id, products.name, products.price, products.unit, products.image_url, cart_items.quantity, cart_items.quantity * products.price AS line_total, products.stock_quantity > 0 AS in_stock").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at").
		Scan(&lines).Error
	if err != nil {
		return nil, 0, fmt.Errorf("get cart: %w", err)
	}

	var subtotal float64
	for i := range lines {
		subtotal += lines[i].LineTotal
		lines[i].FormattedPrice = utils.FormatPrice(lines[i].Price)
	}
	return lines, subtotal, nil
}

// AddFavorite is idempotent: favoriting an already-favorited product
// succeeds without creating a second row.
func AddFavorite(db *gorm.DB, userID, productID uint) error {
	var product models.Product
	err := db.Where("id = ? AND status = ?", productID, models.ProductStatusActive).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}

	fav := models.Favorite{UserID: userID, ProductID: productID}
	err = db.Where("user_id = ? AND product_id = ?", userID, productID).
		FirstOrCreate(&fav).Error
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func RemoveFavorite(db *gorm.DB, userID, productID uint) error {
	res := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("remove favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFavorites returns the user's favorited products as catalog views.
func ListFavorites(db *gorm.DB, userID uint) ([]ProductView, error) {
	var products []models.Product
	err := db.Model(&models.Product{}).
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	now := time.Now()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, Decorate(p, now))
	}
	return views, nil
}
