package main

import (
	"log" // log package is needed for logging

	"github.com/SaidRavestG/secugen-api/internal/api"        // Custom package for API handlers
	"github.com/SaidRavestG/secugen-api/internal/config"     // Custom package for configuration
	"github.com/SaidRavestG/secugen-api/internal/device"     // Device session service
	"github.com/SaidRavestG/secugen-api/internal/middleware" // Custom package for middleware
	"github.com/SaidRavestG/secugen-api/internal/sgfplib"    // Vendor SDK binding

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// One device session for the whole process. The vendor library is loaded
	// lazily on the first /initialize call, so the server starts on hosts
	// without the SDK installed.
	session := device.NewSession(func() (device.SDK, error) {
		return sgfplib.Open(cfg.SDKLibrary)
	})

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Browser clients call the reader API from other origins
	r.Use(middleware.CORSMiddleware())

	// Root banner
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "SecuGen reader API running", "status": "ok"})
	})

	// User routes
	r.POST("/users", api.RegisterHandler(db))           // Registration endpoint
	r.GET("/login", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Fingerprint routes; JWT protection applies only when a secret is configured
	fp := r.Group("/api/v1/fingerprint")
	fp.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	fp.POST("/initialize", api.InitializeHandler(session))  // Initialize SDK and open device
	fp.POST("/terminate", api.TerminateHandler(session))    // Close device and terminate SDK
	fp.GET("/status", api.StatusHandler(session))           // Reader information endpoint
	fp.POST("/led", api.LEDHandler(session))                // LED control endpoint
	fp.POST("/capture", api.CaptureHandler(session))        // Capture template endpoint
	fp.POST("/verify", api.VerifyHandler(session))          // Verify two templates endpoint
	fp.POST("/enroll", api.EnrollHandler(db, session))      // Enroll fingerprint endpoint

	// Enrollment lookups, behind the same optional auth
	users := r.Group("/users")
	users.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	users.GET("/:id/fingerprints", api.ListFingerprintsHandler(db)) // List a user's fingerprints

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
