package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hongaldhruv-del/SalesSavvy/apperrors"
	"github.com/hongaldhruv-del/SalesSavvy/controllers"
	"github.com/hongaldhruv-del/SalesSavvy/database"
	"github.com/hongaldhruv-del/SalesSavvy/gateway"
	"github.com/hongaldhruv-del/SalesSavvy/logger"
	"github.com/hongaldhruv-del/SalesSavvy/middleware"
	aws_pkg "github.com/hongaldhruv-del/SalesSavvy/pkg/aws"
	"github.com/hongaldhruv-del/SalesSavvy/repository"
	"github.com/hongaldhruv-del/SalesSavvy/routes"
	"github.com/hongaldhruv-del/SalesSavvy/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := getEnv("APP_ENV", "development")
	serviceName := getEnv("SERVICE_NAME", "salessavvy")

	cwWriter, err := aws_pkg.NewCloudWatchLogsClient(ctx, serviceName)
	if err != nil || !cwWriter.IsEnabled() {
		cwWriter = nil
	}
	var appLogger *zap.Logger
	if cwWriter != nil {
		appLogger, err = logger.InitializeWithWriter(env, cwWriter)
	} else {
		appLogger, err = logger.Initialize(env)
	}
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLogger.Sync() //nolint:errcheck

	cfg, err := LoadConfig(ctx)
	if err != nil {
		appLogger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.DB, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck
	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	razorpayClient, err := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayTimeout)
	if err != nil {
		appLogger.Fatal("Failed to init payment gateway", zap.Error(err))
	}

	// AWS clients
	var snsClient aws_pkg.SNSPublisher
	if awsCfg, err := aws_pkg.LoadAWSConfig(ctx); err != nil {
		appLogger.Warn("AWS config unavailable, SNS disabled", zap.Error(err))
	} else if cfg.PaymentSNSTopicARN != "" {
		snsClient = aws_pkg.NewSNSClient(awsCfg, cfg.ServiceName)
	}

	metricsClient, err := aws_pkg.NewMetricsClient(ctx)
	if err != nil {
		appLogger.Warn("CloudWatch metrics unavailable", zap.Error(err))
	}

	var catalogCache services.CatalogCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close() //nolint:errcheck
		if err := rdb.Ping(ctx).Err(); err != nil {
			appLogger.Warn("Redis unreachable, catalog cache disabled", zap.Error(err))
		} else {
			catalogCache = services.NewRedisCatalogCache(rdb, appLogger)
		}
	}

	store := repository.NewStore(db)
	paymentService := services.NewPaymentService(
		store,
		razorpayClient,
		gateway.VerifySignature,
		services.PaymentConfig{
			KeySecret:      cfg.RazorpayKeySecret,
			Currency:       cfg.Currency,
			EventsTopicArn: cfg.PaymentSNSTopicARN,
		},
		snsClient,
		metricsClient,
		appLogger,
	)
	catalogService := services.NewCatalogService(repository.NewGormProductRepository(db), catalogCache, metricsClient, appLogger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(appLogger),
		middleware.MetricsMiddleware(metricsClient, cfg.ServiceName),
		middleware.SecurityHeaders(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(ctx, rate.Every(time.Minute/100), 50, 5*time.Minute)),
		middleware.Timeout(30*time.Second),
		apperrors.ErrorMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": cfg.ServiceName})
	})

	routes.RegisterRoutes(r,
		controllers.NewPaymentController(paymentService),
		controllers.NewProductController(catalogService),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	appLogger.Info("Service started", zap.String("service", cfg.ServiceName), zap.String("port", cfg.Port))
	<-ctx.Done()
	appLogger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("Server exited cleanly")
}
