package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/middlewares"
	"github.com/jrrodriguez/meatdealer-api/store"
	"github.com/jrrodriguez/meatdealer-api/utils"
	"gorm.io/gorm"
)

type cartItemBody struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body cartItemBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		session := middlewares.CurrentSession(ctx)
		if err := store.AddCartItem(db, session.UserID, body.ProductID, body.Quantity); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, "Item added to cart")
	}
}

func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session := middlewares.CurrentSession(ctx)
		lines, subtotal, err := store.GetCart(db, session.UserID)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		sendSuccess(ctx, gin.H{
			"items":              lines,
			"subtotal":           subtotal,
			"formatted_subtotal": utils.FormatPrice(subtotal),
		}, "Success")
	}
}

func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body cartItemBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		session := middlewares.CurrentSession(ctx)
		if err := store.SetCartItemQuantity(db, session.UserID, body.ProductID, body.Quantity); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, "Cart item updated")
	}
}

func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productID, err := strconv.Atoi(ctx.Param("productId"))
		if err != nil || productID <= 0 {
			sendError(ctx, http.StatusBadRequest, "Valid product ID is required")
			return
		}

		session := middlewares.CurrentSession(ctx)
		if err := store.RemoveCartItem(db, session.UserID, uint(productID)); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, "Item removed from cart")
	}
}

func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session := middlewares.CurrentSession(ctx)
		if err := store.ClearCart(db, session.UserID); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, "Cart cleared")
	}
}

type favoriteBody struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func AddFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body favoriteBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		session := middlewares.CurrentSession(ctx)
		if err := store.AddFavorite(db, session.UserID, body.ProductID); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, "Product added to favorites")
	}
}

func ListFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session := middlewares.CurrentSession(ctx)
		products, err := store.ListFavorites(db, session.UserID)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{"products": products}, "Success")
	}
}

func RemoveFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productID, err := strconv.Atoi(ctx.Param("productId"))
		if err != nil || productID <= 0 {
			sendError(ctx, http.StatusBadRequest, "Valid product ID is required")
			return
		}

		session := middlewares.CurrentSession(ctx)
		if err := store.RemoveFavorite(db, session.UserID, uint(productID)); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, "Product removed from favorites")
	}
}
