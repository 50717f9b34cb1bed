package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/controllers"
	"github.com/jrrodriguez/meatdealer-api/middlewares"
	"gorm.io/gorm"
)

func CartRoutes(server *gin.Engine, db *gorm.DB) {
	cart := server.Group("/cart", middlewares.RequireAuth(db))
	{
		cart.GET("", controllers.GetCart(db))
		cart.POST("", controllers.AddCartItem(db))
		cart.PUT("", controllers.UpdateCartItem(db))
		cart.DELETE("", controllers.ClearCart(db))
		cart.DELETE("/:productId", controllers.RemoveCartItem(db))
	}

	favorites := server.Group("/favorites", middlewares.RequireAuth(db))
	{
		favorites.GET("", controllers.ListFavorites(db))
		favorites.POST("", controllers.AddFavorite(db))
		favorites.DELETE("/:productId", controllers.RemoveFavorite(db))
	}
}
