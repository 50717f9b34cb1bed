package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/controllers"
	"github.com/jrrodriguez/meatdealer-api/middlewares"
	"gorm.io/gorm"
)

func OrderRoutes(server *gin.Engine, db *gorm.DB) {
	orders := server.Group("/orders", middlewares.RequireAuth(db))
	{
		orders.POST("", controllers.Checkout(db))
		orders.GET("", controllers.GetMyOrders(db))
		orders.GET("/:orderId", controllers.GetOrder(db))
	}

	admin := server.Group("/admin/orders", middlewares.RequireAuth(db), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetAllOrders(db))
		admin.PATCH("/:orderId/status", controllers.UpdateOrderStatus(db))
	}
}
