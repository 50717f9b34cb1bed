package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jrrodriguez/meatdealer-api/initializers"
	"github.com/jrrodriguez/meatdealer-api/routes"
	"github.com/jrrodriguez/meatdealer-api/utils"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("phone_ph", utils.PhoneValidator)
	}
}

func main() {
	server := gin.Default()
	server.HandleMethodNotAllowed = true

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontend},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	db := initializers.DB
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, db)
	routes.ProductRoutes(server, db)
	routes.CartRoutes(server, db)
	routes.OrderRoutes(server, db)
	server.Run()
}
