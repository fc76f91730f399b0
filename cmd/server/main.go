package main

import (
	"log"
	"strings"
	"time"

	"anoa.com/yamdbreview/internal/bootstrap"
	"anoa.com/yamdbreview/internal/config"
	"anoa.com/yamdbreview/internal/handler"
	"anoa.com/yamdbreview/internal/mailer"
	"anoa.com/yamdbreview/internal/middleware"
	"anoa.com/yamdbreview/internal/repository"
	"anoa.com/yamdbreview/internal/service"
	"anoa.com/yamdbreview/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	}

	searchService := service.NewNoopSearchService()
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchService = service.NewMeiliSearchService(meiliClient)
	}

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, mail, redisClient, cfg)
	authHandler := handler.NewAuthHandler(authService)

	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)

	categoryService := service.NewCategoryService(categoryRepo)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	genreService := service.NewGenreService(genreRepo)
	genreHandler := handler.NewGenreHandler(genreService)

	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, searchService)
	titleHandler := handler.NewTitleHandler(titleService)

	reviewService := service.NewReviewService(reviewRepo, titleRepo, userRepo)
	reviewHandler := handler.NewReviewHandler(reviewService)

	commentService := service.NewCommentService(commentRepo, reviewRepo, userRepo)
	commentHandler := handler.NewCommentHandler(commentService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api/v1")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/token", authHandler.IssueToken)
	}

	api.GET("/categories", categoryHandler.List)
	api.GET("/genres", genreHandler.List)
	api.GET("/titles", titleHandler.List)
	api.GET("/titles/:title_id", titleHandler.Get)
	api.GET("/titles/:title_id/reviews", reviewHandler.List)
	api.GET("/titles/:title_id/reviews/:review_id", reviewHandler.Get)
	api.GET("/titles/:title_id/reviews/:review_id/comments", commentHandler.List)
	api.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Get)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Self-service profile
		protected.GET("/users/me", userHandler.GetMe)
		protected.PATCH("/users/me", userHandler.UpdateMe)

		// Reviews and comments: owner-or-moderation writes, checked
		// in the services
		protected.POST("/titles/:title_id/reviews", reviewHandler.Create)
		protected.PATCH("/titles/:title_id/reviews/:review_id", reviewHandler.Update)
		protected.DELETE("/titles/:title_id/reviews/:review_id", reviewHandler.Delete)
		protected.POST("/titles/:title_id/reviews/:review_id/comments", commentHandler.Create)
		protected.PATCH("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Update)
		protected.DELETE("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Delete)

		// Admin routes
		admin := protected.Group("")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.GET("/users/:username", userHandler.Get)
			admin.PATCH("/users/:username", userHandler.Update)
			admin.DELETE("/users/:username", userHandler.Delete)

			admin.POST("/categories", categoryHandler.Create)
			admin.DELETE("/categories/:slug", categoryHandler.Delete)
			admin.POST("/genres", genreHandler.Create)
			admin.DELETE("/genres/:slug", genreHandler.Delete)

			admin.POST("/titles", titleHandler.Create)
			admin.PATCH("/titles/:title_id", titleHandler.Update)
			admin.DELETE("/titles/:title_id", titleHandler.Delete)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
