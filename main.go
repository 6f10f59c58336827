package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/amey40375/getshiny-mobile-care/config"
	"github.com/amey40375/getshiny-mobile-care/controllers"
	"github.com/amey40375/getshiny-mobile-care/events"
	"github.com/amey40375/getshiny-mobile-care/middleware"
	"github.com/amey40375/getshiny-mobile-care/models"
	"github.com/amey40375/getshiny-mobile-care/services"
)

func main() {
	log.Info("Starting GetShiny Mobile Care API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Order{},
		&models.MitraProfile{},
		&models.ChatMessage{},
		&models.Service{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("Database migration completed successfully")

	if err := seedServiceCatalog(db); err != nil {
		log.Fatalf("Failed to seed service catalog: %v", err)
	}

	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
	} else {
		log.Warn("AWS_S3_BUCKET not set, document uploads disabled")
	}

	hub := events.New()
	controllers.Init(db, hub)

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Infof("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the gin engine with all routes attached.
func setupRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Public surface: the order intake form and the catalog behind it.
		v1.GET("/services", controllers.ListServices)
		v1.POST("/orders", controllers.SubmitOrder)
		v1.GET("/events", controllers.StreamEvents)

		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.POST("/users", controllers.CreateUser)
			authed.GET("/users/me", controllers.GetMyProfile)
			authed.PATCH("/users/me", controllers.UpdateMyProfile)

			authed.POST("/mitra/register", controllers.RegisterMitra)
			authed.GET("/mitra/me", controllers.GetMyMitraProfile)
			authed.POST("/uploads/ktp", controllers.UploadKTPDocument)

			authed.GET("/orders/available", controllers.ListAvailableOrders)
			authed.POST("/orders/:id/claim", controllers.ClaimOrder)
			authed.POST("/orders/:id/advance", controllers.AdvanceOrder)

			authed.POST("/chat/messages", controllers.SendChatMessage)
			authed.GET("/chat/thread/:partyId", controllers.GetChatThread)
			authed.POST("/chat/read", controllers.MarkMessagesRead)
			authed.GET("/chat/unread", controllers.GetUnreadCount)

			admin := authed.Group("")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/orders", controllers.ListOrders)
				admin.POST("/orders/:id/assign", controllers.AssignOrder)
				admin.POST("/orders/:id/cancel", controllers.CancelOrder)
				admin.GET("/mitra/applications", controllers.ListMitraApplications)
				admin.POST("/mitra/applications/:id/decide", controllers.DecideMitraApplication)
			}
		}
	}

	return router
}

// seedServiceCatalog inserts the fixed service catalog on first boot.
func seedServiceCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalog := []models.Service{
		{ServiceKey: "cleaning", ServiceName: "Cleaning", Description: "Home and office cleaning", Price: "Rp 50.000/jam"},
		{ServiceKey: "laundry", ServiceName: "Laundry", Description: "Pickup laundry service", Price: "Rp 8.000/kg"},
	}
	return db.Create(&catalog).Error
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "GetShiny Mobile Care API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
