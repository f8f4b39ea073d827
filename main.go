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

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"hotel-admin/config"
	"hotel-admin/controllers"
	"hotel-admin/middleware"
	"hotel-admin/routes"
	"hotel-admin/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat, "hotel-admin")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("database handle unavailable", zap.Error(err))
	}
	defer sqlDB.Close()
	logger.Info("database ready", zap.String("database", cfg.DatabaseName))

	tokens := newTokenStore(cfg, logger)
	notifier := newNotifier(cfg, logger)

	for _, dir := range []string{cfg.UploadDir, cfg.ChannelImageDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("create upload dir failed", zap.String("dir", dir), zap.Error(err))
		}
	}
	uploads := services.NewFileStore(cfg.UploadDir, logger)
	channelImages := services.NewFileStore(cfg.ChannelImageDir, logger)

	// Initialize services
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db, notifier)
	groupService := services.NewGroupService(db, notifier)
	facilityService := services.NewFacilityService(db, notifier)
	messageService := services.NewMessageService(db, notifier)
	channelService := services.NewChannelService(db, notifier)
	appService := services.NewAppService(db, notifier)
	backgroundService := services.NewBackgroundService(db, notifier)
	launcherService := services.NewLauncherService(db)

	// Initialize controllers
	handlers := routes.Handlers{
		Auth:       controllers.NewAuthController(userService, jwtService, tokens, logger),
		Rooms:      controllers.NewRoomController(roomService, groupService, logger),
		Facilities: controllers.NewFacilityController(facilityService, uploads, logger),
		Messages:   controllers.NewMessageController(messageService, uploads, logger),
		Channels:   controllers.NewChannelController(channelService, channelImages, cfg.ChannelImageMaxBytes, logger),
		Groups:     controllers.NewGroupController(groupService, logger),
		Apps:       controllers.NewAppController(appService, logger),
		Background: controllers.NewBackgroundController(backgroundService, uploads, cfg.ChannelImageMaxBytes, logger),
		Launcher:   controllers.NewLauncherController(launcherService, logger),
		Health:     controllers.NewHealthController(sqlDB, logger),
	}

	router := routes.SetupRouter(routes.Options{
		CORSOrigins:     cfg.CORSOrigins,
		UploadDir:       cfg.UploadDir,
		ChannelImageDir: cfg.ChannelImageDir,
		MaxUploadBytes:  cfg.MaxUploadBytes,
	}, handlers, middleware.Authenticate(jwtService, tokens, logger), logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if n, ok := notifier.(*services.MQTTNotifier); ok {
		n.Close()
	}

	logger.Info("server stopped")
}

// newTokenStore uses Redis when configured so revocations survive restarts
// and are shared between instances.
func newTokenStore(cfg *config.Config, logger *zap.Logger) services.TokenStore {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, token revocations kept in memory")
		return services.NewMemoryTokenStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping failed, revocation checks will fail open until it recovers",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return services.NewRedisTokenStore(client)
}

func newNotifier(cfg *config.Config, logger *zap.Logger) services.Notifier {
	if cfg.MQTTBrokerURL == "" {
		return services.NopNotifier{}
	}

	n, err := services.NewMQTTNotifier(services.MQTTConfig{
		BrokerURL:   cfg.MQTTBrokerURL,
		ClientID:    cfg.MQTTClientID,
		Username:    cfg.MQTTUsername,
		Password:    cfg.MQTTPassword,
		TopicPrefix: cfg.MQTTTopicPrefix,
	}, logger)
	if err != nil {
		logger.Warn("mqtt unavailable, change events disabled", zap.Error(err))
		return services.NopNotifier{}
	}
	return n
}
