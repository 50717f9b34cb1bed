package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/controllers"
	"github.com/jrrodriguez/meatdealer-api/middlewares"
	"gorm.io/gorm"
)

func ProductRoutes(server *gin.Engine, db *gorm.DB) {
	products := server.Group("/products")
	{
		products.GET("", controllers.GetProducts(db))
		products.GET("/search", controllers.SearchProducts(db))
		products.GET("/categories", controllers.GetCategories(db))
		products.GET("/featured", controllers.GetFeaturedProducts(db))
		products.GET("/:id", controllers.GetProduct(db))
	}

	admin := server.Group("/products", middlewares.RequireAuth(db), middlewares.RequireAdmin())
	{
		admin.GET("/low-stock", controllers.GetLowStockProducts(db))
		admin.POST("", controllers.CreateProduct(db))
		admin.POST("/stock", controllers.UpdateStock(db))
		admin.POST("/bulk-update", controllers.BulkUpdateProducts(db))
		admin.POST("/:id/images", controllers.UploadProductImage(db))
		admin.PUT("/:id", controllers.UpdateProduct(db))
		admin.DELETE("/:id", controllers.DeleteProduct(db))
	}
}
