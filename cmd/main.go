package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"stock-trading-platform/config"
	"stock-trading-platform/internal/handlers"
	"stock-trading-platform/internal/search"
	"stock-trading-platform/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Initialize MongoDB
	config.ConnectDB()
	defer config.DisconnectDB()

	if err := config.EnsureIndexes(); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Initialize search index
	stockIndex, err := search.NewStockIndex()
	if err != nil {
		log.Fatal("Failed to create stock search index:", err)
	}

	// Initialize services
	wsHub := services.NewWebSocketHub()
	stockService := services.NewStockService(stockIndex, wsHub)
	marketService := services.NewMarketService()
	orderService := services.NewOrderService(marketService, stockService)
	authService := services.NewAuthService()
	transactionService := services.NewTransactionService()

	if err := marketService.Seed(); err != nil {
		log.Fatal("Failed to seed market document:", err)
	}
	if err := stockService.ReloadIndex(); err != nil {
		log.Fatal("Failed to build stock search index:", err)
	}

	// Start WebSocket hub in goroutine
	go wsHub.Run()

	// Start simulated quote feed
	if os.Getenv("QUOTE_FEED") == "simulated" {
		go services.NewQuoteFeed(stockService).Run()
	}

	// Create Gin router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	accountHandler := handlers.NewAccountHandler(authService)
	stockHandler := handlers.NewStockHandler(stockService)
	marketHandler := handlers.NewMarketHandler(marketService)
	tradeHandler := handlers.NewTradeHandler(orderService)
	orderHandler := handlers.NewOrderHandler(orderService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	authRequired := authHandler.AuthMiddleware()
	adminOnly := authHandler.RequireAdmin()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"message": "Stock Trading Platform API",
			"version": "1.0.0",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"message": "Stock Trading Platform API is running",
		})
	})

	// Auth routes
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	router.GET("/api/auth/me", authRequired, authHandler.Me)

	// User routes - admin or self
	router.GET("/api/users/:username", authRequired, userHandler.GetUser)
	router.PUT("/api/users/:username", authRequired, userHandler.UpdateUser)
	router.DELETE("/api/users/:username", authRequired, userHandler.DeactivateUser)

	// Admin routes
	router.GET("/api/admin/verify", authRequired, adminOnly, userHandler.VerifyAdmin)
	router.GET("/api/admin/users", authRequired, adminOnly, userHandler.ListUsers)
	router.GET("/api/admin/transactions", authRequired, adminOnly, transactionHandler.ListAllTransactions)

	// Account routes - admin or self
	router.GET("/api/accounts/:username", authRequired, accountHandler.GetAccount)
	router.PUT("/api/accounts/:username/balance", authRequired, accountHandler.UpdateBalance)

	// Stock routes
	router.GET("/api/stocks", authRequired, stockHandler.ListStocks)
	router.GET("/api/stocks/search", authRequired, stockHandler.SearchStocks)
	router.GET("/api/stocks/:ticker", authRequired, stockHandler.GetStock)
	router.POST("/api/stocks", authRequired, adminOnly, stockHandler.CreateStock)
	router.PUT("/api/stocks/:ticker/price", authRequired, adminOnly, stockHandler.UpdatePrice)
	router.DELETE("/api/stocks/:ticker", authRequired, adminOnly, stockHandler.DeleteStock)

	// Market routes
	router.GET("/api/market", authRequired, marketHandler.GetMarket)
	router.GET("/api/market/is-open", authRequired, marketHandler.IsOpen)
	router.PUT("/api/market", authRequired, adminOnly, marketHandler.UpdateMarket)
	router.PUT("/api/market/open", authRequired, adminOnly, marketHandler.OpenMarket)
	router.PUT("/api/market/close", authRequired, adminOnly, marketHandler.CloseMarket)
	router.PUT("/api/market/schedule", authRequired, adminOnly, marketHandler.UpdateSchedule)

	// Trading routes - customers only
	router.POST("/api/trade/buy", authRequired, tradeHandler.Buy)
	router.POST("/api/trade/sell", authRequired, tradeHandler.Sell)
	router.POST("/api/trade/deposit", authRequired, tradeHandler.Deposit)
	router.POST("/api/trade/withdraw", authRequired, tradeHandler.Withdraw)
	router.GET("/api/portfolio", authRequired, tradeHandler.Portfolio)

	// Order routes
	router.POST("/api/orders", authRequired, orderHandler.PlaceOrder)
	router.GET("/api/orders", authRequired, orderHandler.ListOrders)
	router.GET("/api/orders/:id", authRequired, orderHandler.GetOrder)
	router.DELETE("/api/orders/:id", authRequired, orderHandler.CancelOrder)

	// Transaction routes
	router.POST("/api/transactions", authRequired, transactionHandler.CreateTransaction)
	router.GET("/api/transactions", authRequired, transactionHandler.ListMyTransactions)
	router.GET("/api/transactions/:id", authRequired, transactionHandler.GetTransaction)

	// WebSocket quote stream
	router.GET("/ws", func(c *gin.Context) {
		username := c.Query("username")
		if username == "" {
			username = "anonymous"
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to upgrade to WebSocket"})
			return
		}

		client := wsHub.RegisterClient(conn, username)
		log.Printf("WebSocket connection established for user: %s", username)

		go client.WritePump()
		go client.ReadPump()
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🚀 Stock Trading Platform running on port %s\n", port)
	fmt.Printf("📊 API available at http://localhost:%s/api\n", port)
	fmt.Printf("🔌 Quote stream available at ws://localhost:%s/ws\n", port)
	router.Run(":" + port)
}
