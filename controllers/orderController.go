package controllers

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/middlewares"
	"github.com/jrrodriguez/meatdealer-api/store"
	"github.com/jrrodriguez/meatdealer-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultDeliveryFee = 50

func deliveryFee() decimal.Decimal {
	if v := os.Getenv("DELIVERY_FEE"); v != "" {
		if fee, err := decimal.NewFromString(v); err == nil && !fee.IsNegative() {
			return fee
		}
	}
	return decimal.NewFromInt(defaultDeliveryFee)
}

type checkoutBody struct {
	PaymentMethod   string `json:"payment_method" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	DeliveryDate    string `json:"delivery_date"`
	DeliveryTime    string `json:"delivery_time"`
	Notes           string `json:"notes"`
}

// Checkout converts the caller's cart into an order. Totals come from the
// store, never from the client.
func Checkout(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body checkoutBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		session := middlewares.CurrentSession(ctx)
		user, err := store.GetUser(db, session.UserID)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		order, err := store.Checkout(db, user, store.CheckoutInput{
			PaymentMethod:   body.PaymentMethod,
			DeliveryAddress: body.DeliveryAddress,
			DeliveryDate:    body.DeliveryDate,
			DeliveryTime:    body.DeliveryTime,
			Notes:           body.Notes,
		}, deliveryFee())
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		if err := utils.SendOrderSMS(user.Phone, order.OrderNumber, utils.FormatPrice(order.TotalAmount)); err != nil {
			log.Println("Order SMS not sent:", err)
		}

		log.Printf("Order created: %s user=%d total=%.2f", order.OrderNumber, user.ID, order.TotalAmount)
		sendSuccess(ctx, gin.H{"order": order}, "Order placed successfully")
	}
}

func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session := middlewares.CurrentSession(ctx)
		orders, err := store.ListOrdersByUser(db, session.UserID)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{"orders": orders}, "Success")
	}
}

func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orderID, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil || orderID <= 0 {
			sendError(ctx, http.StatusBadRequest, "Valid order ID is required")
			return
		}

		session := middlewares.CurrentSession(ctx)
		order, err := store.GetOrder(db, uint(orderID), session)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{"order": order}, "Success")
	}
}

func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))

		orders, pagination, err := store.ListAllOrders(db, page, limit)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{
			"orders":     orders,
			"pagination": pagination,
		}, "Success")
	}
}

type orderStatusBody struct {
	Status string `json:"status" binding:"required"`
}

func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orderID, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil || orderID <= 0 {
			sendError(ctx, http.StatusBadRequest, "Valid order ID is required")
			return
		}

		var body orderStatusBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendError(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		if err := store.UpdateOrderStatus(db, uint(orderID), body.Status); err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendSuccess(ctx, gin.H{}, "Order status updated successfully")
	}
}
