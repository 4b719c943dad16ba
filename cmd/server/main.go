package main

import (
	"log"
	"os"

	"sonar/internal/db"
	"sonar/internal/logger"
	"sonar/internal/middleware"
	"sonar/internal/monitoring"
	"sonar/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	logger.InitLogger()

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Middleware
	r.Use(monitoring.Instrument())
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Sonar server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
