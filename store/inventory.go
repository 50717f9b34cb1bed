package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jrrodriguez/meatdealer-api/models"
	"gorm.io/gorm"
)

const (
	StockOpSet      = "set"
	StockOpAdd      = "add"
	StockOpSubtract = "subtract"

	// Retries for the optimistic stock update before giving up on a
	// contended row.
	maxStockRetries = 3
)

type StockAdjustment struct {
	ProductID uint `json:"product_id"`
	OldStock  int  `json:"old_stock"`
	NewStock  int  `json:"new_stock"`
}

// AdjustStock applies a set/add/subtract mutation under the non-negative
// invariant. The write is guarded by the stock value that was read, so a
// concurrent adjustment to the same product can never be lost; on contention
// the read-compute-write cycle is retried. Every applied change leaves a
// StockAudit row behind.
func AdjustStock(db *gorm.DB, productID uint, quantity int, operation string, actorID uint) (*StockAdjustment, error) {
	if productID == 0 {
		return nil, invalid("Valid product ID is required")
	}

	switch operation {
	case StockOpSet, StockOpAdd, StockOpSubtract:
	default:
		return nil, invalid("Invalid operation. Use: set, add, or subtract")
	}

	for attempt := 0; attempt < maxStockRetries; attempt++ {
		var product models.Product
		err := db.First(&product, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}

		newStock := product.StockQuantity
		switch operation {
		case StockOpSet:
			if quantity < 0 {
				return nil, invalid("Stock quantity cannot be negative")
			}
			newStock = quantity
		case StockOpAdd:
			newStock = product.StockQuantity + abs(quantity)
		case StockOpSubtract:
			newStock = product.StockQuantity - abs(quantity)
			if newStock < 0 {
				return nil, invalid("Operation would result in negative stock")
			}
		}

		adj := StockAdjustment{ProductID: product.ID, OldStock: product.StockQuantity, NewStock: newStock}
		applied := false

		err = db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity = ?", product.ID, product.StockQuantity).
				Updates(map[string]interface{}{
					"stock_quantity": newStock,
					"updated_at":     time.Now(),
				})
			if res.Error != nil {
				return fmt.Errorf("update stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				// Lost the race; re-read and try again.
				return nil
			}
			applied = true

			details, _ := json.Marshal(map[string]interface{}{
				"product_name": product.Name,
				"operation":    operation,
				"quantity":     quantity,
				"old_stock":    product.StockQuantity,
				"new_stock":    newStock,
			})
			audit := models.StockAudit{
				ProductID: product.ID,
				ActorID:   actorID,
				Operation: operation,
				OldStock:  product.StockQuantity,
				NewStock:  newStock,
				Details:   details,
			}
			if err := tx.Create(&audit).Error; err != nil {
				return fmt.Errorf("write stock audit: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if applied {
			return &adj, nil
		}
	}
	return nil, fmt.Errorf("stock update contention on product %d", productID)
}

// BulkProductUpdate carries the optional per-row fields of a bulk update.
// Absent fields are left untouched; present-but-invalid values are dropped
// rather than failing the row.
type BulkProductUpdate struct {
	ID            uint     `json:"id"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	MinStockLevel *int     `json:"min_stock_level"`
	Status        *string  `json:"status"`
}

type BulkResult struct {
	ProductID uint   `json:"product_id"`
	Status    string `json:"status"` // updated, no_changes or no_valid_fields
}

type BulkSummary struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// BulkUpdateProducts applies all row updates inside one transaction. Rows
// with a bad id or nothing valid to apply are reported without aborting the
// rest; only an unexpected store failure rolls the whole batch back.
func BulkUpdateProducts(db *gorm.DB, rows []BulkProductUpdate) ([]BulkResult, []string, BulkSummary, error) {
	if len(rows) == 0 {
		return nil, nil, BulkSummary{}, invalid("Products array is required")
	}

	results := make([]BulkResult, 0, len(rows))
	rowErrors := []string{}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if row.ID == 0 {
				rowErrors = append(rowErrors, fmt.Sprintf("Invalid product ID: %d", row.ID))
				continue
			}

			updates := map[string]interface{}{}
			if row.Price != nil && *row.Price > 0 {
				updates["price"] = *row.Price
			}
			if row.StockQuantity != nil && *row.StockQuantity >= 0 {
				updates["stock_quantity"] = *row.StockQuantity
			}
			if row.MinStockLevel != nil && *row.MinStockLevel >= 0 {
				updates["min_stock_level"] = *row.MinStockLevel
			}
			if row.Status != nil && (*row.Status == models.ProductStatusActive || *row.Status == models.ProductStatusInactive) {
				updates["status"] = *row.Status
			}

			if len(updates) == 0 {
				results = append(results, BulkResult{ProductID: row.ID, Status: "no_valid_fields"})
				continue
			}
			updates["updated_at"] = time.Now()

			res := tx.Model(&models.Product{}).Where("id = ?", row.ID).Updates(updates)
			if res.Error != nil {
				return fmt.Errorf("update product %d: %w", row.ID, res.Error)
			}
			if res.RowsAffected > 0 {
				results = append(results, BulkResult{ProductID: row.ID, Status: "updated"})
			} else {
				results = append(results, BulkResult{ProductID: row.ID, Status: "no_changes"})
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, BulkSummary{}, err
	}

	summary := BulkSummary{Total: len(rows), Failed: len(rowErrors)}
	for _, r := range results {
		if r.Status == "updated" {
			summary.Updated++
		}
	}
	return results, rowErrors, summary, nil
}

type CreateProductInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category"`
	StockQuantity int     `json:"stock_quantity"`
	MinStockLevel *int    `json:"min_stock_level"`
	ImageURL      string  `json:"image_url"`
}

// CreateProduct validates and inserts a new active product. Name uniqueness
// is enforced across active and inactive products alike.
func CreateProduct(db *gorm.DB, in CreateProductInput) (uint, error) {
	switch {
	case in.Name == "":
		return 0, invalid("Name is required")
	case in.Unit == "":
		return 0, invalid("Unit is required")
	case in.Category == "":
		return 0, invalid("Category is required")
	case in.Price <= 0:
		return 0, invalid("Price must be greater than zero")
	case in.StockQuantity < 0:
		return 0, invalid("Stock quantity cannot be negative")
	}

	minStock := 5
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return 0, invalid("Min stock level cannot be negative")
		}
		minStock = *in.MinStockLevel
	}

	var count int64
	if err := db.Model(&models.Product{}).Where("name = ?", in.Name).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("check product name: %w", err)
	}
	if count > 0 {
		return 0, conflict("Product with this name already exists")
	}

	product := models.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Unit:          in.Unit,
		Category:      in.Category,
		StockQuantity: in.StockQuantity,
		MinStockLevel: minStock,
		ImageURL:      in.ImageURL,
		Status:        models.ProductStatusActive,
	}
	if err := db.Create(&product).Error; err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return product.ID, nil
}

type UpdateProductInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Unit          *string  `json:"unit"`
	Category      *string  `json:"category"`
	StockQuantity *int     `json:"stock_quantity"`
	MinStockLevel *int     `json:"min_stock_level"`
	ImageURL      *string  `json:"image_url"`
	Status        *string  `json:"status"`
}

// UpdateProduct rewrites only the fields present in the input, re-validating
// each against the same rules as create.
func UpdateProduct(db *gorm.DB, id uint, in UpdateProductInput) error {
	if id == 0 {
		return invalid("Valid product ID is required")
	}

	var existing models.Product
	err := db.First(&existing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return invalid("Name is required")
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return invalid("Price must be greater than zero")
		}
		updates["price"] = *in.Price
	}
	if in.Unit != nil {
		updates["unit"] = *in.Unit
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return invalid("Stock quantity cannot be negative")
		}
		updates["stock_quantity"] = *in.StockQuantity
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return invalid("Min stock level cannot be negative")
		}
		updates["min_stock_level"] = *in.MinStockLevel
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.Status != nil {
		if *in.Status != models.ProductStatusActive && *in.Status != models.ProductStatusInactive {
			return invalid("Status must be active or inactive")
		}
		updates["status"] = *in.Status
	}

	if len(updates) == 0 {
		return invalid("No valid fields to update")
	}

	if name, ok := updates["name"].(string); ok && name != existing.Name {
		var count int64
		if err := db.Model(&models.Product{}).Where("name = ? AND id != ?", name, id).Count(&count).Error; err != nil {
			return fmt.Errorf("check product name: %w", err)
		}
		if count > 0 {
			return conflict("Product with this name already exists")
		}
	}

	updates["updated_at"] = time.Now()
	if err := db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product, or deactivates it instead when order
// items still reference it. Reports whether a soft delete happened.
func DeleteProduct(db *gorm.DB, id uint) (bool, error) {
	if id == 0 {
		return false, invalid("Valid product ID is required")
	}

	var product models.Product
	err := db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("get product: %w", err)
	}

	var orderRefs int64
	if err := db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&orderRefs).Error; err != nil {
		return false, fmt.Errorf("count order references: %w", err)
	}

	if orderRefs > 0 {
		err := db.Model(&product).Updates(map[string]interface{}{
			"status":     models.ProductStatusInactive,
			"updated_at": time.Now(),
		}).Error
		if err != nil {
			return false, fmt.Errorf("deactivate product: %w", err)
		}
		return true, nil
	}

	if err := db.Delete(&models.Product{}, id).Error; err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return false, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
