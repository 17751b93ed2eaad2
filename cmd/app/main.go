package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rayspace/blog-service/internal/config"
	"github.com/rayspace/blog-service/internal/handler"
	"github.com/rayspace/blog-service/internal/repository"
	"github.com/rayspace/blog-service/internal/repository/postgres"
	"github.com/rayspace/blog-service/internal/server"
	"github.com/rayspace/blog-service/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	bootLogger, _ := zap.NewProduction()

	if err := loadEnv(); err != nil {
		bootLogger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		bootLogger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	logger := newLogger(bootLogger)
	defer logger.Sync()

	dbConfig := config.DB()
	if viper.GetBool("migrations.enabled") {
		if err := postgres.Migrate(dbConfig.DSN()); err != nil {
			logger.Sugar().Panicf("failed to apply migrations: %s", err.Error())
		}
		logger.Info("Database migrations applied")
	}

	db, err := postgres.DB(ctx, dbConfig.DSN())
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	logger.Info("Successfully connected to PostgreSQL")

	redisOptions := &redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	rdb := redis.NewClient(redisOptions)
	defer rdb.Close()
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	sessionConfig, err := config.Session()
	if err != nil {
		logger.Sugar().Panicf("failed to load session config: %s", err.Error())
	}

	adminUserID := viper.GetString("admin.user_id")
	if adminUserID == "" {
		logger.Warn("admin.user_id is not set, admin routes are unreachable")
	}

	contentConfig := config.Content()
	repos := repository.New(db, rdb, contentConfig.Dir)
	services := service.New(logger, repos, service.Options{
		AdminUserID: adminUserID,
		Session:     sessionConfig,
		OAuth:       config.OAuth(),
		Stars:       config.Stars(),
		Content:     contentConfig,
	})
	handlers := handler.New(logger, services, viper.GetString("client.origin"), sessionConfig)

	if viper.GetString("app.env") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}
	go func() {
		if err := srv.Run(serverConfig); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}()

	logger.Sugar().Infof("Server started on port %s", serverConfig.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown http server: %s", err.Error())
	}
}

func newLogger(fallback *zap.Logger) *zap.Logger {
	if viper.GetString("app.env") != "development" {
		return fallback
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fallback
	}
	return logger
}

// loadEnv tolerates a missing .env so the service can run on plain environment variables.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func initConfig() error {
	config.SetDefaults()

	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}
