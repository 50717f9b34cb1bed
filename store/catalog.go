package store

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jrrodriguez/meatdealer-api/models"
	"github.com/jrrodriguez/meatdealer-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	premiumPriceThreshold = 400
	newProductDays        = 7
	defaultPageLimit      = 20
	defaultFeaturedLimit  = 8
	relatedProductLimit   = 4
)

type ProductFilters struct {
	Page     int
	Limit    int
	Category string
	Status   string
	Query    string
	MinPrice float64
	MaxPrice float64
}

// ProductView is a Product plus the derived display attributes every
// catalog response carries.
type ProductView struct {
	models.Product
	InStock        bool   `json:"in_stock"`
	LowStock       bool   `json:"low_stock"`
	Badge          string `json:"badge"`
	FormattedPrice string `json:"formatted_price"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListProducts returns one page of the filtered catalog. When a search query
// is present, rows are ranked name-match > description-match > rest, then by
// recency; without a query recency alone decides.
func ListProducts(db *gorm.DB, f ProductFilters) ([]ProductView, Pagination, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageLimit
	}
	if f.Status == "" {
		f.Status = models.ProductStatusActive
	}

	filtered := func() *gorm.DB {
		q := db.Model(&models.Product{}).Where("status = ?", f.Status)
		if f.Category != "" {
			q = q.Where("category = ?", f.Category)
		}
		if f.MinPrice > 0 {
			q = q.Where("price >= ?", f.MinPrice)
		}
		if f.MaxPrice > 0 {
			q = q.Where("price <= ?", f.MaxPrice)
		}
		if f.Query != "" {
			like := likePattern(f.Query)
			q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("count products: %w", err)
	}

	q := filtered()
	if f.Query != "" {
		like := likePattern(f.Query)
		q = q.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "CASE WHEN LOWER(name) LIKE ? THEN 3 WHEN LOWER(description) LIKE ? THEN 2 ELSE 1 END DESC, created_at DESC",
			Vars: []interface{}{like, like},
		}})
	} else {
		q = q.Order("created_at DESC")
	}

	var products []models.Product
	if err := q.Limit(f.Limit).Offset((f.Page - 1) * f.Limit).Find(&products).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("list products: %w", err)
	}

	now := time.Now()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, Decorate(p, now))
	}

	return views, Pagination{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

// SearchProducts is ListProducts restricted to the active catalog, requiring
// at least a query or a category.
func SearchProducts(db *gorm.DB, f ProductFilters) ([]ProductView, Pagination, error) {
	if f.Query == "" && f.Category == "" {
		return nil, Pagination{}, invalid("Search query or category is required")
	}
	f.Status = models.ProductStatusActive
	return ListProducts(db, f)
}

type RelatedProduct struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Unit           string  `json:"unit"`
	ImageURL       string  `json:"image_url"`
	StockQuantity  int     `json:"stock_quantity"`
	InStock        bool    `json:"in_stock"`
	FormattedPrice string  `json:"formatted_price"`
}

// GetProductDetails returns an active product plus up to four same-category
// products in randomized order.
func GetProductDetails(db *gorm.DB, id uint) (*ProductView, []RelatedProduct, error) {
	var p models.Product
	err := db.Where("id = ? AND status = ?", id, models.ProductStatusActive).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get product: %w", err)
	}

	var rows []models.Product
	err = db.Where("category = ? AND id != ? AND status = ?", p.Category, p.ID, models.ProductStatusActive).
		Order("RANDOM()").
		Limit(relatedProductLimit).
		Find(&rows).Error
	if err != nil {
		return nil, nil, fmt.Errorf("related products: %w", err)
	}

	related := make([]RelatedProduct, 0, len(rows))
	for _, r := range rows {
		related = append(related, RelatedProduct{
			ID:             r.ID,
			Name:           r.Name,
			Price:          r.Price,
			Unit:           r.Unit,
			ImageURL:       r.ImageURL,
			StockQuantity:  r.StockQuantity,
			InStock:        r.StockQuantity > 0,
			FormattedPrice: utils.FormatPrice(r.Price),
		})
	}

	view := Decorate(p, time.Now())
	return &view, related, nil
}

type CategorySummary struct {
	Category     string  `json:"category"`
	ProductCount int64   `json:"product_count"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

func GetCategories(db *gorm.DB) ([]CategorySummary, error) {
	var categories []CategorySummary
	err := db.Model(&models.Product{}).
		Select("category, COUNT(*) AS product_count, MIN(price) AS min_price, MAX(price) AS max_price").
		Where("status = ?", models.ProductStatusActive).
		Group("category").
		Order("category").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetFeaturedProducts returns the newest well-stocked products.
func GetFeaturedProducts(db *gorm.DB, limit int) ([]ProductView, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	var products []models.Product
	err := db.Where("status = ? AND stock_quantity > min_stock_level", models.ProductStatusActive).
		Order("created_at DESC, stock_quantity DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("featured products: %w", err)
	}

	now := time.Now()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, Decorate(p, now))
	}
	return views, nil
}

type LowStockProduct struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
	StockQuantity  int     `json:"stock_quantity"`
	MinStockLevel  int     `json:"min_stock_level"`
	FormattedPrice string  `json:"formatted_price"`
	StockRatio     float64 `json:"stock_ratio"`
}

// GetLowStockProducts lists active products at or below their minimum stock
// level, most critical first. StockRatio is stock/minimum as a percentage.
func GetLowStockProducts(db *gorm.DB) ([]LowStockProduct, error) {
	var products []models.Product
	err := db.Where("status = ? AND stock_quantity <= min_stock_level", models.ProductStatusActive).
		Order("CASE WHEN min_stock_level > 0 THEN 1.0 * stock_quantity / min_stock_level ELSE 0 END ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}

	result := make([]LowStockProduct, 0, len(products))
	for _, p := range products {
		ratio := 0.0
		if p.MinStockLevel > 0 {
			ratio = math.Round(float64(p.StockQuantity)/float64(p.MinStockLevel)*1000) / 10
		}
		result = append(result, LowStockProduct{
			ID:             p.ID,
			Name:           p.Name,
			Price:          p.Price,
			Unit:           p.Unit,
			Category:       p.Category,
			StockQuantity:  p.StockQuantity,
			MinStockLevel:  p.MinStockLevel,
			FormattedPrice: utils.FormatPrice(p.Price),
			StockRatio:     ratio,
		})
	}
	return result, nil
}

// Decorate derives the display attributes for a product row.
func Decorate(p models.Product, now time.Time) ProductView {
	return ProductView{
		Product:        p,
		InStock:        p.StockQuantity > 0,
		LowStock:       p.StockQuantity <= p.MinStockLevel,
		Badge:          Badge(p, now),
		FormattedPrice: utils.FormatPrice(p.Price),
	}
}

// Badge picks the first matching display label; stock state wins over
// recency, recency over price, price over the category default. Recency
// counts whole elapsed days, so a product stays "New" until the end of its
// seventh day.
func Badge(p models.Product, now time.Time) string {
	ageDays := int(now.Sub(p.CreatedAt).Hours() / 24)
	switch {
	case p.StockQuantity <= 0:
		return "Out of Stock"
	case p.StockQuantity <= p.MinStockLevel:
		return "Low Stock"
	case ageDays <= newProductDays:
		return "New"
	case p.Price >= premiumPriceThreshold:
		return "Premium"
	}

	switch p.Category {
	case "fresh":
		return "Fresh"
	case "ground":
		return "Ground"
	case "specialty":
		return "Specialty"
	}
	return "Available"
}

func likePattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}
