package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Guyuepp/go-clean-forum/internal/auth"
	"github.com/Guyuepp/go-clean-forum/internal/config"
	"github.com/Guyuepp/go-clean-forum/internal/markdown"
	"github.com/Guyuepp/go-clean-forum/internal/repository"
	myRedisCache "github.com/Guyuepp/go-clean-forum/internal/repository/redis"
	"github.com/Guyuepp/go-clean-forum/internal/repository/sqlstore"
	"github.com/Guyuepp/go-clean-forum/internal/rest"
	"github.com/Guyuepp/go-clean-forum/internal/rest/middleware"
	"github.com/Guyuepp/go-clean-forum/internal/usecase/comment"
	"github.com/Guyuepp/go-clean-forum/internal/usecase/message"
	"github.com/Guyuepp/go-clean-forum/internal/usecase/story"
	"github.com/Guyuepp/go-clean-forum/internal/usecase/tag"
	"github.com/Guyuepp/go-clean-forum/internal/usecase/user"
	"github.com/Guyuepp/go-clean-forum/internal/workers"
)

const (
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func openDatabase(cfg config.Database) (*gorm.DB, error) {
	dialector, err := sqlstore.Dialector(cfg.Driver, cfg.ConnString())
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	for i := range dbMaxRetry {
		db, err = sqlstore.Open(dialector)
		if err != nil {
			logrus.Warnf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return nil, dbErr
			}
			if err = sqlDB.Ping(); err == nil {
				return db, nil
			}
			logrus.Warnf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}
	return nil, err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	cfg.SetupLogging()

	// prepare database
	db, err := openDatabase(cfg.Database)
	if err != nil {
		logrus.Fatalf("could not connect to database after retries: %v", err)
	}
	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			logrus.Errorf("got error when getting sql.DB from gorm.DB: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("got error when closing the DB connection: %v", err)
		}
	}()
	if err := sqlstore.Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	// prepare cache
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr(),
		Password: cfg.Cache.Pass,
		DB:       cfg.Cache.DB,
	})
	defer func() {
		if err := client.Close(); err != nil {
			logrus.Errorf("got error when closing the cache connection: %v", err)
		}
	}()
	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to open connection to cache: %v", err)
	}

	// Prepare Repository
	userRepo := sqlstore.NewUserRepository(db)
	tagRepo := sqlstore.NewTagRepository(db)
	commentRepo := sqlstore.NewCommentRepository(db)
	messageRepo := sqlstore.NewMessageRepository(db)

	// Story相关的三层架构
	// 1. DB层
	storyDBRepo := sqlstore.NewStoryRepository(db)
	// 2. Cache层
	storyCache := myRedisCache.NewStoryCache(client)
	// 3. Repository协调层
	storyRepo := repository.NewStoryRepository(storyDBRepo, storyCache)

	bloomRepo := myRedisCache.NewRedisBloomRepo(client, cfg.BloomBitSize)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hotness := workers.NewStoryHotnessWorker(storyDBRepo)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		hotness.Start(ctx)
	}()

	// Build service Layer
	renderer := markdown.NewRenderer()
	commentSvc := comment.NewService(commentRepo, storyRepo, bloomRepo, hotness, renderer)
	storySvc := story.NewService(storyRepo, storyCache, tagRepo, commentSvc, bloomRepo, hotness, renderer)
	userSvc := user.NewService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	tagSvc := tag.NewService(tagRepo)
	messageSvc := message.NewService(messageRepo, userRepo, renderer)

	// Prepare bloom filter
	if err := storySvc.InitBloomFilter(ctx); err != nil {
		logrus.Errorf("failed to init bloom filter: %v", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	route.Use(middleware.SetRequestContextWithTimeout(cfg.ContextTimeout))

	rest.RegisterRoutes(route, rest.Services{
		Stories:  storySvc,
		Comments: commentSvc,
		Users:    userSvc,
		Tags:     tagSvc,
		Messages: messageSvc,
	}, auth.NewJWT(cfg.JWTSecret, cfg.JWTTTL))

	// Start Server
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: route,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Waiting for worker to cleanup...")
	<-workerDone

	logrus.Info("Server exiting")
}
