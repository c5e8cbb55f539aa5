package main

import (
	"context"
	"fmt"
	stdlog "log"

	"github.com/gin-gonic/gin"

	"github.com/AleksMarkov/LumenTask-server/internal/cache"
	"github.com/AleksMarkov/LumenTask-server/internal/config"
	"github.com/AleksMarkov/LumenTask-server/internal/domain"
	"github.com/AleksMarkov/LumenTask-server/internal/handler"
	"github.com/AleksMarkov/LumenTask-server/internal/mailer"
	"github.com/AleksMarkov/LumenTask-server/internal/media"
	"github.com/AleksMarkov/LumenTask-server/internal/middleware"
	"github.com/AleksMarkov/LumenTask-server/internal/repository"
	"github.com/AleksMarkov/LumenTask-server/internal/service"
	"github.com/AleksMarkov/LumenTask-server/pkg/database"
	"github.com/AleksMarkov/LumenTask-server/pkg/log"
	"github.com/AleksMarkov/LumenTask-server/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	log.Init(log.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "lumentask-server",
	})
	logger := log.L()

	// Connect to database using GORM
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db, &domain.UserModel{}, &domain.BoardModel{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Object storage + media store
	mediaStore, err := newMediaStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize media store")
	}

	// User cache
	userCache, err := cache.NewRedisUserCache(cfg.Redis, cfg.Cache.Prefix)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer userCache.Close()

	// Repositories
	userRepo := repository.NewGormUserRepository(db)
	boardRepo := repository.NewGormBoardRepository(db)

	// Services
	userService := service.NewUserService(userRepo, mediaStore, userCache, cfg.Media, cfg.Profile, cfg.Cache.TTL)
	boardService := service.NewBoardService(boardRepo)
	supportService := service.NewSupportService(mailer.NewSMTPSender(cfg.Email), cfg.Email.SupportAddress)

	// Auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create auth middleware")
	}

	httpHandler := handler.NewHandler(userService, boardService, supportService, authMiddleware, "")

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(log.GinMiddleware(logger))
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	httpHandler.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Str("storage", cfg.Storage.Backend).Msg("LumenTask server starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

// newMediaStore builds the media store for the configured storage backend.
func newMediaStore(cfg *config.Config) (media.Store, error) {
	switch cfg.Storage.Backend {
	case "s3":
		st, err := storage.NewS3Storage(context.Background(), cfg.Storage.S3)
		if err != nil {
			return nil, err
		}
		return media.NewCDNStore(st), nil

	case "local":
		st, err := storage.NewLocalStorage(cfg.Storage.Local)
		if err != nil {
			return nil, err
		}
		return media.NewLocalStore(st), nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}
