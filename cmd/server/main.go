package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"todo-server/internal/auth"
	"todo-server/internal/backup"
	"todo-server/internal/config"
	apphttp "todo-server/internal/http"
	"todo-server/internal/metrics"
	"todo-server/internal/repository"
	"todo-server/internal/repository/memory"
	"todo-server/internal/repository/sqlite"
	"todo-server/internal/service"
	"todo-server/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, todoRepo, db := buildRepositories(ctx, cfg, logger)
	if db != nil {
		defer db.Close()
	}

	storageTimeout := time.Duration(cfg.Database.TimeoutSeconds) * time.Second
	userService := service.NewUserService(userRepo, storageTimeout)
	todoService := service.NewTodoService(todoRepo, storageTimeout)
	tokens := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	limiter := apphttp.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	defer limiter.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf("panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}))
	router.Use(collector.Middleware())
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handler := apphttp.NewHandler(userService, todoService, tokens, logger, cfg.Debug)
	handler.RegisterRoutes(router, limiter.Middleware())

	var backupRunner *backup.Runner
	if db != nil && cfg.Backup.Bucket != "" {
		store, err := buildStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup backup storage: %v", err)
		}
		backupRunner = backup.NewRunner(db, store, backup.Config{
			Bucket:    cfg.Backup.Bucket,
			KeyPrefix: cfg.Backup.KeyPrefix,
			Interval:  time.Duration(cfg.Backup.IntervalMinutes) * time.Minute,
			Logger:    logger,
		})
		backupRunner.Start(ctx)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if backupRunner != nil {
		backupRunner.Wait()
		if err := backupRunner.Snapshot(shutdownCtx); err != nil {
			logger.Warnf("final backup: %v", err)
		}
	}

	logger.Info("bye")
}

// buildRepositories selects the storage backend. When the durable store
// is unreachable the service still comes up on a transient in-memory
// store: data is lost on restart and not shared between instances.
func buildRepositories(ctx context.Context, cfg config.Config, logger *logrus.Logger) (repository.UserRepository, repository.TodoRepository, *sql.DB) {
	if cfg.Database.Path == "" {
		logger.Warn("no database path configured, using transient in-memory store")
		return memory.NewUserRepository(), memory.NewTodoRepository(), nil
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Warnf("open database: %v; falling back to transient in-memory store", err)
		return memory.NewUserRepository(), memory.NewTodoRepository(), nil
	}

	userRepo := sqlite.NewUserRepository(db)
	todoRepo := sqlite.NewTodoRepository(db)

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	initErr := userRepo.Init(initCtx)
	if initErr == nil {
		initErr = todoRepo.Init(initCtx)
	}
	if initErr != nil {
		logger.Warnf("init database: %v; falling back to transient in-memory store", initErr)
		db.Close()
		return memory.NewUserRepository(), memory.NewTodoRepository(), nil
	}

	logger.Infof("using sqlite database at %s", cfg.Database.Path)
	return userRepo, todoRepo, db
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Backup.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("backing up to s3 bucket %s (region %s)", cfg.Backup.Bucket, cfg.Backup.Region)
	return storage.NewS3Service(client), nil
}
