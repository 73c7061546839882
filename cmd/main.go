package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"tradeyard/internal/caching"
	"tradeyard/internal/common"
	"tradeyard/internal/handlers"
	"tradeyard/internal/jobs"
	"tradeyard/internal/jobs/background"
	"tradeyard/internal/middleware"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"
	"tradeyard/internal/services"
	"tradeyard/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	// Initialize object storage
	storageSvc, err := services.NewMinioStorageService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	for _, bucket := range []string{services.PhotoBucket, jobs.AgreementBucket} {
		if err := storageSvc.EnsureBucketExists(context.Background(), bucket); err != nil {
			log.Printf("WARNING: Failed to ensure bucket %s: %v", bucket, err)
		}
	}

	// Create repositories
	userRepo := repositories.NewUserRepository(pool)
	warehouseRepo := repositories.NewWarehouseRepository(pool)
	bookingRepo := repositories.NewBookingRepository(pool)
	partnershipRepo := repositories.NewPartnershipRepository(pool)
	tenderRepo := repositories.NewTenderRepository(pool)
	quoteRepo := repositories.NewTenderQuoteRepository(pool)
	proposalRepo := repositories.NewProposalRepository(pool)
	auditLogRepo := repositories.NewAuditLogRepository(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Asynq client for background tasks
	asynqRedis := asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword, DB: redisDB}
	asynqClient := asynq.NewClient(asynqRedis)
	defer asynqClient.Close()

	// Create services
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret)
	warehouseSvc := services.NewWarehouseService(warehouseRepo, cacheSvc, storageSvc)
	availabilitySvc := services.NewAvailabilityService(warehouseRepo, bookingRepo)
	bookingSvc := services.NewBookingService(bookingRepo, warehouseRepo, asynqClient)
	partnershipSvc := services.NewPartnershipService(partnershipRepo, userRepo)
	tenderSvc := services.NewTenderService(tenderRepo, quoteRepo, partnershipRepo)
	proposalSvc := services.NewProposalService(proposalRepo, userRepo)

	// Token verification. AUTH_MODE=session switches to redis-backed session
	// cookies, JWKS_URL to an external identity provider; the default is local
	// HS256 tokens from the auth service.
	var verifier middleware.TokenVerifier
	switch {
	case os.Getenv("AUTH_MODE") == "session":
		verifier = middleware.NewSessionVerifier(cacheSvc)
	case os.Getenv("JWKS_URL") != "":
		jwksVerifier, err := middleware.NewJWKSVerifier(os.Getenv("JWKS_URL"))
		if err != nil {
			log.Fatalf("Failed to initialize JWKS verifier: %v", err)
		}
		verifier = jwksVerifier
	default:
		verifier = middleware.NewHMACVerifier(jwtSecret)
	}

	// Create handlers
	authHandlers := handlers.NewAuthHandler(authSvc)
	warehouseHandlers := handlers.NewWarehouseHandler(warehouseSvc, availabilitySvc)
	bookingHandlers := handlers.NewBookingHandler(bookingSvc)
	partnershipHandlers := handlers.NewPartnershipHandler(partnershipSvc)
	tenderHandlers := handlers.NewTenderHandler(tenderSvc)
	proposalHandlers := handlers.NewProposalHandler(proposalSvc)
	adminHandlers := handlers.NewAdminHandler(authSvc)
	auditLogHandlers := handlers.NewAuditLogHandler(auditLogRepo)
	healthHandlers := handlers.NewHealthHandler(pool)

	// Background workers
	agreementGenerator := jobs.NewAgreementGenerator(bookingRepo, warehouseRepo, userRepo, storageSvc)
	asynqServer := asynq.NewServer(asynqRedis, asynq.Config{Concurrency: 5})
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypeBookingAgreement, agreementGenerator.HandleBookingAgreementTask)
	go func() {
		if err := asynqServer.Run(mux); err != nil {
			log.Fatalf("Asynq server stopped: %v", err)
		}
	}()

	scheduler, err := background.NewJobScheduler(bookingRepo, tenderRepo)
	if err != nil {
		log.Fatalf("Failed to initialize job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HTTPErrorHandler = common.ErrorHandler

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoint (no auth required)
	e.GET("/health", healthHandlers.Health)

	// API routes
	v1 := e.Group("/v1")

	// Authentication routes (no token required)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)
	auth.POST("/session", authHandlers.SessionLogin)
	auth.DELETE("/session", authHandlers.SessionLogout)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.Authenticate(verifier))
	protected.Use(middleware.AuditTrail(auditLogRepo))

	protected.GET("/me", authHandlers.Me)
	protected.PUT("/me", authHandlers.UpdateMe)
	protected.GET("/audit-logs", auditLogHandlers.ListMine)

	// Admin routes
	admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.GET("/users", adminHandlers.ListUsers)
	admin.PUT("/users/:id/verify", adminHandlers.VerifyUser)

	// Warehouse routes
	protected.GET("/warehouses", warehouseHandlers.ListActive)
	protected.GET("/warehouses/mine", warehouseHandlers.ListMine, middleware.RequireRole(models.RoleDealer))
	protected.POST("/warehouses", warehouseHandlers.Create, middleware.RequireRole(models.RoleDealer))
	protected.GET("/warehouses/:id", warehouseHandlers.Get)
	protected.PUT("/warehouses/:id", warehouseHandlers.Update, middleware.RequireRole(models.RoleDealer))
	protected.POST("/warehouses/:id/photo", warehouseHandlers.UploadPhoto, middleware.RequireRole(models.RoleDealer))
	protected.POST("/warehouses/check-availability", warehouseHandlers.CheckAvailability)

	// Booking routes
	protected.POST("/bookings", bookingHandlers.Create, middleware.RequireRole(models.RoleCorporate))
	protected.GET("/bookings/corporate", bookingHandlers.ListCorporate, middleware.RequireRole(models.RoleCorporate))
	protected.GET("/bookings/dealer", bookingHandlers.ListDealer, middleware.RequireRole(models.RoleDealer))
	protected.GET("/bookings/:id", bookingHandlers.Get)
	protected.PUT("/bookings/:id", bookingHandlers.Transition, middleware.RequireRole(models.RoleDealer))

	// Partnership routes
	protected.POST("/partnerships", partnershipHandlers.Request, middleware.RequireRole(models.RoleDealer))
	protected.GET("/partnerships/companyrequests", partnershipHandlers.CompanyRequests, middleware.RequireRole(models.RoleCorporate))
	protected.GET("/partnerships/mine", partnershipHandlers.DealerRequests, middleware.RequireRole(models.RoleDealer))
	protected.GET("/partnerships/approved-dealers", partnershipHandlers.ApprovedDealers, middleware.RequireRole(models.RoleCorporate))
	protected.PUT("/partnerships/:id", partnershipHandlers.Review, middleware.RequireRole(models.RoleCorporate))

	// Tender routes
	protected.POST("/tenders", tenderHandlers.Create, middleware.RequireRole(models.RoleCorporate))
	protected.GET("/tenders", tenderHandlers.ListMine, middleware.RequireRole(models.RoleCorporate))
	protected.GET("/tenders/partnertenders", tenderHandlers.PartnerTenders, middleware.RequireRole(models.RoleDealer))
	protected.GET("/tenders/:id", tenderHandlers.Get)
	protected.POST("/tenders/:id/close", tenderHandlers.Close, middleware.RequireRole(models.RoleCorporate))
	protected.POST("/tenders/:id/quotes", tenderHandlers.SubmitQuote, middleware.RequireRole(models.RoleDealer))
	protected.GET("/tenders/:id/quotes", tenderHandlers.ListQuotes, middleware.RequireRole(models.RoleCorporate))
	protected.GET("/quotes/mine", tenderHandlers.MyQuotes, middleware.RequireRole(models.RoleDealer))
	protected.PUT("/quotes/:id", tenderHandlers.ReviewQuote, middleware.RequireRole(models.RoleCorporate))

	// Proposal routes
	protected.POST("/proposals", proposalHandlers.Create, middleware.RequireRole(models.RoleAgency))
	protected.GET("/proposals/agency", proposalHandlers.ListAgency, middleware.RequireRole(models.RoleAgency))
	protected.GET("/proposals/corporate", proposalHandlers.ListCorporate, middleware.RequireRole(models.RoleCorporate))
	protected.PUT("/proposals/:id", proposalHandlers.Respond, middleware.RequireRole(models.RoleCorporate))

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Tradeyard server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
