package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appHTTP "mockgram/internal/controller/http"
	"mockgram/internal/repo/persistent"
	"mockgram/internal/store"
	"mockgram/internal/usecase"
	"mockgram/pkg/cache"
	"mockgram/pkg/config"
	"mockgram/pkg/logger"
	"mockgram/pkg/metrics"
	"mockgram/pkg/middleware"
	"mockgram/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "mockgram/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	store       *store.Store
	s3Client    *s3.Client
	redisClient *redis.Client
	metrics     *metrics.Metrics
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	st, err := store.Open(cfg.DBFile)
	if err != nil {
		log.Error("Failed to open store: %v", err)
		return nil, err
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	// Redis only backs the rate limiter, so the service runs without it.
	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("Failed to connect to redis: %v (continuing without rate limiting)", err)
			redisClient = nil
		}
	}

	return &App{
		cfg:         cfg,
		log:         log,
		store:       st,
		s3Client:    s3Client,
		redisClient: redisClient,
		metrics:     metrics.InitMetrics(),
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.store)
	postRepo := persistent.NewPostRepository(a.store)
	mediaTypeRepo := persistent.NewMediaTypeRepository(a.store)

	// Initialize use cases
	userUseCase := usecase.NewUserUseCase(userRepo, a.s3Client, a.log)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, a.log)
	mediaTypeUseCase := usecase.NewMediaTypeUseCase(mediaTypeRepo)

	// Initialize HTTP handlers
	userHandler := appHTTP.NewUserHandler(userUseCase, a.metrics, a.log)
	postHandler := appHTTP.NewPostHandler(postUseCase, a.metrics, a.log)
	mediaTypeHandler := appHTTP.NewMediaTypeHandler(mediaTypeUseCase)

	// Setup router
	r := gin.Default()

	// Public /api/* paths and the legacy product path are rewritten onto
	// the internal resource paths before matching. The rewriter must run
	// ahead of the other middlewares: it aborts the original dispatch
	// after re-routing, so each request passes the metrics counter once.
	r.Use(appHTTP.URLRewriter(r))

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.MetricsMiddleware(a.metrics))

	if a.redisClient != nil {
		r.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitRequests, time.Minute))
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Users
	r.POST("/users", userHandler.Register)
	r.GET("/users", userHandler.ListUsers)
	r.GET("/users/:id", userHandler.GetUser)
	r.PUT("/users/:id", userHandler.UpdateUser)
	r.POST("/users/:id/follow", userHandler.Follow)
	r.POST("/users/:id/unfollow", userHandler.Unfollow)
	r.POST("/users/:id/updateProfilePicture", userHandler.UpdateProfilePicture)
	r.POST("/users/:id/updateBannerPicture", userHandler.UpdateBannerPicture)

	// Login
	r.POST("/login",
		appHTTP.CheckUserExistence(userUseCase),
		appHTTP.AuthenticateUser(userUseCase),
		userHandler.Login,
	)

	// Posts
	r.GET("/posts", postHandler.ListPosts)
	r.POST("/posts", postHandler.CreatePost)
	r.GET("/posts/:id", postHandler.GetPost)
	r.PUT("/posts/:id", appHTTP.CheckPostOwnership(postUseCase), postHandler.UpdatePost)
	r.DELETE("/posts/:id", appHTTP.CheckPostOwnership(postUseCase), postHandler.DeletePost)
	r.POST("/posts/:id/like", postHandler.Like)
	r.POST("/posts/:id/unlike", postHandler.Unlike)
	r.POST("/posts/:id/comments", postHandler.AddComment)

	// Media types
	r.GET("/mediaTypes", mediaTypeHandler.List)
	r.POST("/mediaTypes", mediaTypeHandler.Create)
	r.GET("/mediaTypes/:id", mediaTypeHandler.Get)
	r.PUT("/mediaTypes/:id", mediaTypeHandler.Update)
	r.DELETE("/mediaTypes/:id", mediaTypeHandler.Delete)

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("mockgram starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server exited")
	return nil
}
