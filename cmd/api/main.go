package main

import (
	"log"

	"chillbills/internal/auth"
	"chillbills/internal/config"
	"chillbills/internal/database"
	"chillbills/internal/handlers"
	"chillbills/internal/middleware"
	"chillbills/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		log.Fatal("Failed to create tables:", err)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	api := handlers.New(store.NewUserStore(db), store.NewExpenseStore(db), tokens, cfg.AdminClearPassword)

	router := gin.New()
	router.Use(middleware.RequestID(), gin.Recovery())
	api.RegisterRoutes(router)

	log.Printf("ChillBills API starting on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
