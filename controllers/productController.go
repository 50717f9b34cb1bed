package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/store"
	"gorm.io/gorm"
)

func parseFilters(ctx *gin.Context) store.ProductFilters {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	minPrice, _ := strconv.ParseFloat(ctx.DefaultQuery("min_price", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(ctx.DefaultQuery("max_price", "0"), 64)

	return store.ProductFilters{
		Page:     page,
		Limit:    limit,
		Category: ctx.Query("category"),
		Status:   ctx.Query("status"),
		Query:    ctx.Query("q"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}
}

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		filters := parseFilters(ctx)
		products, pagination, err := store.ListProducts(db, filters)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		sendSuccess(ctx, gin.H{
			"products":   products,
			"pagination": pagination,
		}, "Success")
	}
}

func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		filters := parseFilters(ctx)
		products, pagination, err := store.SearchProducts(db, filters)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		sendSuccess(ctx, gin.H{
			"products":     products,
			"search_query": filters.Query,
			"filters": gin.H{
				"category":  filters.Category,
				"min_price": filters.MinPrice,
				"max_price": filters.MaxPrice,
			},
			"pagination": pagination,
		}, "Success")
	}
}

func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil || id <= 0 {
			sendError(ctx, http.StatusBadRequest, "Valid product ID is required")
			return
		}

		product, related, err := store.GetProductDetails(db, uint(id))
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		sendSuccess(ctx, gin.H{
			"product":          product,
			"related_products": related,
		}, "Success")
	}
}

func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		categories, err := store.GetCategories(db)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{"categories": categories}, "Success")
	}
}

func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "8"))
		products, err := store.GetFeaturedProducts(db, limit)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{"products": products}, "Success")
	}
}

func GetLowStockProducts(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		products, err := store.GetLowStockProducts(db)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{"products": products}, "Success")
	}
}

func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var input store.CreateProductInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		productID, err := store.CreateProduct(db, input)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		log.Println("Product created:", input.Name)
		sendSuccess(ctx, gin.H{"product_id": productID}, "Product created successfully")
	}
}

func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil || id <= 0 {
			sendError(ctx, http.StatusBadRequest, "Valid product ID is required")
			return
		}

		var input store.UpdateProductInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		if err := store.UpdateProduct(db, uint(id), input); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, "Product updated successfully")
	}
}

func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil || id <= 0 {
			sendError(ctx, http.StatusBadRequest, "Valid product ID is required")
			return
		}

		soft, err := store.DeleteProduct(db, uint(id))
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		if soft {
			sendSuccess(ctx, gin.H{}, "Product deactivated (soft delete due to existing orders)")
			return
		}
		sendSuccess(ctx, gin.H{}, "Product deleted successfully")
	}
}

func getS3Uploader() (*manager.Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return manager.NewUploader(s3.NewFromConfig(cfg)), nil
}

// UploadProductImage stores a product photo in S3 and records its URL on
// the product row.
func UploadProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil || id <= 0 {
			sendError(ctx, http.StatusBadRequest, "Valid product ID is required")
			return
		}

		file, err := ctx.FormFile("image")
		if err != nil {
			sendError(ctx, http.StatusBadRequest, "No file uploaded")
			return
		}

		f, err := file.Open()
		if err != nil {
			sendError(ctx, http.StatusBadRequest, "Unable to read uploaded file")
			return
		}
		defer f.Close()

		uploader, err := getS3Uploader()
		if err != nil {
			log.Println("AWS config error:", err)
			sendError(ctx, http.StatusInternalServerError, "Failed to configure storage")
			return
		}

		key := fmt.Sprintf("products/%d-%s-%s", id, time.Now().Format("20060102150405"), file.Filename)
		result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(os.Getenv("S3_BUCKET")),
			Key:         aws.String(key),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		if err != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, err)
			sendError(ctx, http.StatusInternalServerError, "Failed to upload image")
			return
		}

		url := result.Location
		if err := store.UpdateProduct(db, uint(id), store.UpdateProductInput{ImageURL: &url}); err != nil {
			sendStoreError(ctx, err)
			return
		}

		sendSuccess(ctx, gin.H{"image_url": url}, "Image uploaded successfully")
	}
}
