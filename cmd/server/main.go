package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mintfeed/mintfeed/internal/cache"
	"github.com/mintfeed/mintfeed/internal/config"
	"github.com/mintfeed/mintfeed/internal/content"
	"github.com/mintfeed/mintfeed/internal/handlers"
	"github.com/mintfeed/mintfeed/internal/ledger"
	"github.com/mintfeed/mintfeed/internal/logger"
	"github.com/mintfeed/mintfeed/internal/middleware"
	"github.com/mintfeed/mintfeed/internal/queue"
	"github.com/mintfeed/mintfeed/internal/scanner"
	"github.com/mintfeed/mintfeed/internal/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Invalid configuration", zap.Error(err))
	}

	// Ledger client: one shared connection for every queued read.
	ledgerClient, err := ledger.NewRPCClient(cfg.Ledger.RPCEndpoint)
	if err != nil {
		logger.Log.Fatal("Failed to initialize ledger client", zap.Error(err))
	}

	// Server wallet identity; without it the write path stays disabled.
	var identity ledger.Identity
	if seed := cfg.SeedBytes(); seed != nil {
		keypair, err := ledger.NewKeypairIdentity(seed)
		if err != nil {
			logger.Log.Fatal("Failed to load identity keypair", zap.Error(err))
		}
		identity = keypair
		logger.Log.Info("Identity loaded", zap.String("address", keypair.Address()))
	} else {
		logger.Log.Warn("IDENTITY_SEED not set, content creation is disabled")
	}

	// Image pinning; reads keep working without it.
	var uploader storage.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(cfg.S3.Region, cfg.S3.Bucket, cfg.S3.BaseURL)
		if err != nil {
			logger.Log.Fatal("Failed to initialize S3 uploader", zap.Error(err))
		}
		if err := s3Uploader.CheckBucketAccess(context.Background()); err != nil {
			logger.Log.Warn("S3 bucket access check failed, image uploads may fail", zap.Error(err))
		}
		uploader = s3Uploader
	} else {
		logger.Log.Warn("AWS_BUCKET not set, content will be created without images")
	}

	store := cache.New()
	requestQueue := queue.New(cfg.Ledger.QueueMinGap, cfg.Ledger.QueueCooldown)
	collectionScanner := scanner.New(ledgerClient, requestQueue, store, scanner.Config{
		Timeout: cfg.Ledger.ScanTimeout,
		TTL:     cfg.Cache.ListTTL,
		Limit:   cfg.Ledger.ScanLimit,
	})

	contentService, err := content.New(content.Config{
		Collection: cfg.Ledger.CollectionAddress,
		ListTTL:    cfg.Cache.ListTTL,
		ProfileTTL: cfg.Cache.ProfileTTL,
	}, collectionScanner, store, ledgerClient, uploader, identity)
	if err != nil {
		logger.Log.Fatal("Failed to initialize content service", zap.Error(err))
	}

	h := handlers.NewHandlers(contentService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	h.RegisterRoutes(api, middleware.RateLimit(middleware.CreateRateLimitConfig()))

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.ServerPort),
		Handler: r,
	}

	go func() {
		logger.Log.Info("Server listening",
			zap.Int("port", cfg.ServerPort),
			zap.String("collection", cfg.Ledger.CollectionAddress),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
}
