package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"restaurant/server/internal/api"
	"restaurant/server/internal/config"
	"restaurant/server/internal/database"
	"restaurant/server/internal/models"
	"restaurant/server/internal/services"
	"restaurant/server/internal/store"
	"restaurant/server/internal/utils"
)

func main() {
	// Загружаем переменные окружения из .env файла (если существует)
	// Игнорируем ошибку, если файл не найден (для production окружений)
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ .env файл не найден, используем переменные окружения системы")
	} else {
		log.Printf("✅ Переменные окружения загружены из .env файла")
	}

	// Загрузка конфигурации
	cfg := config.Load()

	// Логируем DATABASE_URL без пароля
	if cfg.DatabaseURL != "" {
		safeURL := cfg.DatabaseURL
		if idx := strings.Index(safeURL, "@"); idx > 0 {
			if schemeIdx := strings.Index(safeURL, "://"); schemeIdx > 0 {
				safeURL = safeURL[:schemeIdx+3] + "***@" + safeURL[idx+1:]
			}
		}
		log.Printf("📋 DATABASE_URL установлен: %s", safeURL)
	}

	// Подключение к PostgreSQL: без хранилища заказов сервер бесполезен
	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ PostgreSQL connection failed: %v", err)
	}
	defer database.ClosePostgres(db)

	// Выполняем миграции (orders, order_items)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Подключение к Redis (опционально: relay событий между экземплярами
	// и дневные счетчики; без Redis работаем в одном экземпляре)
	var redisUtil *utils.RedisClient
	if cfg.RedisURL != "" || len(cfg.RedisSentinelAddrs) > 0 {
		redisClient, err := database.ConnectRedis(
			cfg.RedisURL,
			cfg.RedisSentinelAddrs,
			cfg.RedisMasterName,
		)
		if err != nil {
			log.Printf("⚠️ Redis connection failed: %v (continuing without Redis)", err)
		} else {
			redisUtil = utils.NewRedisClient(redisClient)
			defer database.CloseRedis(redisClient)
		}
	} else {
		log.Println("ℹ️ Redis не настроен, relay событий выключен")
	}

	// Kafka поток событий (опционален)
	eventStream := services.NewEventStream(cfg.KafkaBrokers, cfg.KafkaUsername, cfg.KafkaPassword, cfg.KafkaCACert)
	if eventStream != nil {
		defer eventStream.Close()
	} else {
		log.Println("ℹ️ KAFKA_BROKERS не установлен, поток событий выключен")
	}

	// WebSocket хаб наблюдателей
	hub := api.NewHub()
	go hub.Run()

	// Notifier: хаб + Redis relay + Kafka
	notifier := api.NewOrderNotifier(hub, redisUtil, eventStream)
	notifier.StartRelay()

	// Хранилище и сервис заказов
	orderStore := store.NewOrderStore(db)
	orderService := services.NewOrderService(orderStore, notifier)

	// Контроллеры
	orderController := api.NewOrderController(orderService)
	menuController := api.NewMenuController()
	wsController := api.NewWSController(hub, orderService)

	// Отключаем debug-логи gin
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Health check endpoint (должен быть до CORS для Railway)
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Restaurant API is running",
		})
	})

	// Логирование всех запросов
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		log.Printf("🌐 %s %s - Status: %d - Latency: %v", method, path, status, latency)
	})

	// CORS для фронтенда
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// API routes
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/menu", menuController.GetMenu)
		apiGroup.GET("/orders", orderController.GetOrders)
		apiGroup.POST("/orders", orderController.CreateOrder)
		apiGroup.PUT("/orders/:id/status", orderController.UpdateOrderStatus)
		apiGroup.DELETE("/orders/:id", orderController.DeleteOrder)
		apiGroup.GET("/stats", orderController.GetStats)
	}
	log.Println("🍽️ Order endpoints enabled: /api/orders")

	// WebSocket для наблюдателей (кухня, официанты, менеджер)
	r.GET("/ws", wsController.ServeWS)
	log.Println("📱 WebSocket endpoint enabled: /ws")

	port := cfg.ServerPort
	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("📡 API доступен на http://0.0.0.0:%s/api", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
