package routes

import (
	"libraryhub/internal/adapters/http/handlers"
	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/imagestore"
	"libraryhub/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	borrowRepo := repositories.NewBorrowRepository(db)

	// External image host
	uploader := imagestore.New(imagestore.Config{
		BaseURL: cfg.ImageStore.BaseURL,
		APIKey:  cfg.ImageStore.APIKey,
		Folder:  cfg.ImageStore.Folder,
	})

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, uploader, cfg)
	userService := services.NewUserService(userRepo, uploader)
	bookService := services.NewBookService(bookRepo, borrowRepo)
	lendingService := services.NewLendingService(bookRepo, borrowRepo)

	// Initialize handlers
	validator := validate.New()
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, validator, cfg)
	userHandler := handlers.NewUserHandler(userService, validator)
	bookHandler := handlers.NewBookHandler(bookService, validator)
	lendingHandler := handlers.NewLendingHandler(lendingService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, userHandler, cfg)

	// Book & lending routes
	bookRoutes := apiV1.Group("/books")
	setupBookRoutes(bookRoutes, bookHandler, lendingHandler, cfg)
}

// setupAuthRoutes configures authentication, profile and user
// administration routes
func setupAuthRoutes(router fiber.Router, authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler, cfg *config.Config) {
	// Public routes (register/login rate limited: 5 req/min/IP)
	router.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	router.Post("/refresh", authHandler.Refresh)
	router.Post("/logout", authHandler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), userHandler.Me)
	router.Put("/profile", middleware.AuthMiddleware(cfg), userHandler.UpdateProfile)
	router.Put("/profile/image", middleware.AuthMiddleware(cfg), userHandler.UpdateProfileImage)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	userRoutes.Get("/", userHandler.ListUsers)
	userRoutes.Get("/:id", userHandler.GetUser)
	userRoutes.Post("/:id/ban", userHandler.BanUser)
	userRoutes.Post("/:id/unban", userHandler.UnbanUser)
}

// setupBookRoutes configures catalog and lending routes.
// Static paths register before /:id so the router never treats them
// as an ID parameter.
func setupBookRoutes(router fiber.Router, bookHandler *handlers.BookHandler, lendingHandler *handlers.LendingHandler, cfg *config.Config) {
	// Public catalog
	router.Get("/", bookHandler.ListAvailable)

	// Admin catalog (full list, unfiltered)
	router.Get("/all", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), bookHandler.ListAll)

	// Lending routes (Authenticated users)
	router.Post("/borrow", middleware.AuthMiddleware(cfg), lendingHandler.Borrow)
	router.Post("/return", middleware.AuthMiddleware(cfg), lendingHandler.Return)
	router.Get("/my-borrows", middleware.AuthMiddleware(cfg), lendingHandler.MyBorrows)
	router.Get("/borrowing-history", middleware.AuthMiddleware(cfg), lendingHandler.History)

	// Catalog management (Admin only)
	router.Post("/", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), bookHandler.Add)
	router.Put("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), bookHandler.Update)
	router.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), bookHandler.Delete)
}
