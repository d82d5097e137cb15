package main

import (
	"net/http"

	_ "umkm-invoice/api/swagger" // swagger docs
	"umkm-invoice/internal/config"
	"umkm-invoice/internal/database"
	"umkm-invoice/internal/handler"
	"umkm-invoice/internal/logger"
	"umkm-invoice/internal/middleware"
	"umkm-invoice/internal/render"
	"umkm-invoice/internal/repository"
	"umkm-invoice/internal/service"
	"umkm-invoice/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           UMKM Invoice API
// @version         1.0
// @description     Invoicing for small businesses: customers, products, invoices, PDF documents and sales reports.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	db, err := database.NewConnection(database.Options{
		Driver: cfg.DBDriver,
		DSN:    cfg.DSN(),
		Logger: logger.NewGormLogger(log, cfg.SlowQueryThreshold),
	})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.WithField("driver", cfg.DBDriver).Info("Connected to database")

	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	// Repository -> Service -> Handler
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	reportRepo := repository.NewReportRepository(db)
	txManager := repository.NewTransactionManager(db)

	customerService := service.NewCustomerService(customerRepo, activityRepo, txManager, wsHub, log)
	productService := service.NewProductService(productRepo, activityRepo, txManager, wsHub, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, settingsRepo, activityRepo, txManager,
		render.NewPDFRenderer(), wsHub, log, cfg.InvoiceNumberRetries)
	settingsService := service.NewSettingsService(settingsRepo, activityRepo, wsHub, log)
	reportService := service.NewReportService(reportRepo)
	draftService := service.NewDraftService(service.NewDraftStore(), invoiceService, productService, settingsRepo)
	activityService := service.NewActivityService(activityRepo)

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig), middleware.RequestLogger(log), gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	api := router.Group("/api")
	handler.NewCustomerHandler(customerService).RegisterRoutes(api)
	handler.NewProductHandler(productService).RegisterRoutes(api)
	handler.NewInvoiceHandler(invoiceService).RegisterRoutes(api)
	handler.NewDraftHandler(draftService).RegisterRoutes(api)
	handler.NewSettingsHandler(settingsService).RegisterRoutes(api)
	handler.NewReportHandler(reportService).RegisterRoutes(api)
	handler.NewActivityHandler(activityService).RegisterRoutes(api)

	log.Infof("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
