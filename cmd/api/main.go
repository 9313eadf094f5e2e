package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alphadevking/mini-inventory/internal/handler"
	"github.com/alphadevking/mini-inventory/internal/model"
	"github.com/alphadevking/mini-inventory/internal/repository"
	"github.com/alphadevking/mini-inventory/internal/service"
	"github.com/alphadevking/mini-inventory/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	if err := db.AutoMigrate(&model.Product{}, &model.Transaction{}); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	// 3. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	invService := service.NewInventoryService(productRepo, txRepo, db)
	dashService := service.NewDashboardService(productRepo, txRepo)

	invHandler := handler.NewInventoryHandler(invService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Mini Inventory API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(corsConfig()))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to the Mini Inventory API!"})
	})

	// 5. Routes
	api := app.Group("/api/v1")

	// Product Routes
	api.Post("/products", invHandler.CreateProduct)
	api.Get("/products", invHandler.GetProducts)
	api.Get("/products/low-stock", invHandler.GetLowStockProducts)
	api.Get("/products/:id", invHandler.GetProduct)
	api.Put("/products/:id", invHandler.UpdateProduct)
	api.Delete("/products/:id", invHandler.DeleteProduct)

	// Transaction Routes
	api.Post("/transactions", invHandler.CreateTransaction)
	api.Get("/transactions", invHandler.GetTransactions)
	api.Get("/transactions/:id", invHandler.GetTransaction)
	api.Delete("/transactions/:id", invHandler.DeleteTransaction)

	// Summary & Dashboard Routes
	api.Get("/summary", dashHandler.GetFinancialSummary)
	api.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	api.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// 6. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// corsConfig allows the browser-hosted UI origins; CORS_ORIGINS narrows the
// default wildcard for deployed domains.
func corsConfig() cors.Config {
	cfg := cors.Config{}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = origins
	}
	return cfg
}
