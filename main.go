package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"

	appConfig "github.com/temirlan-b/baraholka-api/config"
	"github.com/temirlan-b/baraholka-api/controllers"
	"github.com/temirlan-b/baraholka-api/middleware"
	"github.com/temirlan-b/baraholka-api/models"
	"github.com/temirlan-b/baraholka-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Baraholka API server...")

	// Load configuration
	cfg, err := appConfig.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := appConfig.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := appConfig.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.City{},
		&models.AdvertisementType{},
		&models.Advertisement{},
		&models.Message{},
		&models.Comment{},
		&models.Rating{},
		&models.UserRatingSummary{},
		&models.Sale{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed reference data
	if err := seedReferenceData(); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	// Initialize S3-backed photo storage when a bucket is configured
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitPhotoService(s3Service)
		log.Printf("Photo storage initialized (bucket %s)", cfg.AWSS3Bucket)
	} else {
		log.Println("AWS_S3_BUCKET not set, photo uploads disabled")
	}

	// Start the periodic rating summary refresh
	scheduler, err := startRatingRefresh(cfg)
	if err != nil {
		log.Fatalf("Failed to start rating refresh job: %v", err)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Failed to shut down scheduler: %v", err)
		}
	}()

	// Initialize Gin router
	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all API routes
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	cfg := appConfig.GetConfig()

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public routes
		v1.POST("/auth/register", controllers.Register)
		v1.POST("/auth/login", controllers.Login)
		v1.GET("/cities", controllers.ListCities)
		v1.GET("/advertisement-types", controllers.ListAdvertisementTypes)
		v1.GET("/advertisement", controllers.ListAdvertisements)
		v1.GET("/advertisement/:id", controllers.GetAdvertisement)
		v1.GET("/comment/:id", controllers.GetComment)
		v1.GET("/comment/advertisement/:id", controllers.ListAdvertisementComments)
		v1.GET("/rating/user/:id", controllers.GetUserRating)

		// Authenticated routes
		auth := v1.Group("")
		auth.Use(middleware.EnsureValidToken(cfg))
		{
			auth.GET("/users/me", controllers.GetMyProfile)
			auth.PUT("/users/me", controllers.UpdateMyProfile)
			auth.GET("/users/:id", controllers.GetUser)

			auth.POST("/advertisement", controllers.CreateAdvertisement)
			auth.PUT("/advertisement/:id", controllers.UpdateAdvertisement)
			auth.PATCH("/advertisement/:id/close", controllers.CloseAdvertisement)
			auth.PATCH("/advertisement/:id/promote", controllers.PromoteAdvertisement)
			auth.PATCH("/advertisement/:id/reopen", controllers.ReopenAdvertisement)
			auth.POST("/advertisement/:id/photo", controllers.UploadAdvertisementPhoto)

			auth.POST("/message", controllers.SendMessage)
			auth.POST("/message/chat", controllers.ListChat)
			auth.PATCH("/message/mark-read", controllers.MarkRead)

			auth.POST("/comment", controllers.CreateComment)
			auth.DELETE("/comment/:id", controllers.DeleteComment)

			auth.POST("/rating", controllers.RateUser)
			auth.DELETE("/rating/user/:id", controllers.UnrateUser)

			auth.POST("/sale", controllers.RecordSale)
			auth.GET("/sale/my", controllers.ListMySales)
		}
	}

	return router
}

// startRatingRefresh schedules the periodic rebuild of the user rating
// summaries. The job is idempotent so overlapping runs are harmless.
func startRatingRefresh(cfg *appConfig.Config) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	ratingService := services.NewRatingService(appConfig.GetDB())
	_, err = scheduler.NewJob(
		gocron.CronJob(cfg.RatingRefreshCron, false),
		gocron.NewTask(func() {
			if err := ratingService.RefreshSummaries(); err != nil {
				log.Printf("Rating summary refresh failed: %v", err)
			}
		}),
		gocron.WithName("rating-summary-refresh"),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	log.Printf("Rating summary refresh scheduled (%s)", cfg.RatingRefreshCron)
	return scheduler, nil
}

// seedReferenceData inserts the city and advertisement type reference rows
// if they are not present yet
func seedReferenceData() error {
	db := appConfig.GetDB()

	cities := []string{"Almaty", "Astana", "Shymkent", "Karaganda", "Aktobe"}
	for _, name := range cities {
		if err := db.Where(models.City{Name: name}).FirstOrCreate(&models.City{Name: name}).Error; err != nil {
			return err
		}
	}

	types := []string{"Electronics", "Vehicles", "Real Estate", "Clothing", "Furniture", "Services", "Other"}
	for _, name := range types {
		if err := db.Where(models.AdvertisementType{Name: name}).FirstOrCreate(&models.AdvertisementType{Name: name}).Error; err != nil {
			return err
		}
	}

	return nil
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Baraholka API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := appConfig.GetDB()

	// Get the underlying SQL database to check connection
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

	// Ping the database to verify connection
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
