package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jrrodriguez/meatdealer-api/controllers"
	"github.com/jrrodriguez/meatdealer-api/middlewares"
	"gorm.io/gorm"
)

func AuthRoutes(server *gin.Engine, db *gorm.DB) {
	auth := server.Group("/auth")
	{
		auth.POST("/register", controllers.Register(db))
		auth.POST("/login", controllers.Login(db))
		auth.POST("/logout", controllers.Logout(db))
		auth.POST("/forgot-password", controllers.ForgotPassword(db))
		auth.POST("/reset-password", controllers.ResetPassword(db))
		auth.POST("/verify-email", controllers.VerifyEmail(db))
		auth.POST("/resend-verification", controllers.ResendVerification(db))
		auth.GET("/check-session", controllers.CheckSession(db))
		auth.GET("/profile", middlewares.RequireAuth(db), controllers.GetProfile(db))
	}
}
