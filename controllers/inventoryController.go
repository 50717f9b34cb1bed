package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/middlewares"
	"github.com/jrrodriguez/meatdealer-api/store"
	"gorm.io/gorm"
)

type updateStockBody struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation" binding:"required,oneof=set add subtract"`
}

func UpdateStock(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body updateStockBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		session := middlewares.CurrentSession(ctx)
		adj, err := store.AdjustStock(db, body.ProductID, body.Quantity, body.Operation, session.UserID)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		log.Printf("Stock updated: product=%d operation=%s old=%d new=%d",
			adj.ProductID, body.Operation, adj.OldStock, adj.NewStock)
		sendSuccess(ctx, gin.H{
			"product_id": adj.ProductID,
			"old_stock":  adj.OldStock,
			"new_stock":  adj.NewStock,
		}, "Stock updated successfully")
	}
}

type bulkUpdateBody struct {
	Products []store.BulkProductUpdate `json:"products" binding:"required"`
}

func BulkUpdateProducts(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body bulkUpdateBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		results, rowErrors, summary, err := store.BulkUpdateProducts(db, body.Products)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		log.Printf("Bulk product update: total=%d updated=%d failed=%d",
			summary.Total, summary.Updated, summary.Failed)
		sendSuccess(ctx, gin.H{
			"results": results,
			"errors":  rowErrors,
			"summary": summary,
		}, "Bulk update completed")
	}
}
