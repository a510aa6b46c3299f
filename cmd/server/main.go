package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/config"
	"github.com/jdu211171/schedule-website-sub007/pkg/database"
	"github.com/jdu211171/schedule-website-sub007/pkg/logger"
	"github.com/jdu211171/schedule-website-sub007/pkg/redis"

	"github.com/jdu211171/schedule-website-sub007/internal/api/handler"
	"github.com/jdu211171/schedule-website-sub007/internal/api/router"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
	"github.com/jdu211171/schedule-website-sub007/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}

	if err := database.RunMigrations(&cfg.Database, log); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	// Redis is optional: without it the policy cache degrades to direct reads.
	cache, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, running without policy cache", zap.Error(err))
		cache = nil
	} else {
		defer cache.Close()
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, cache, log)
	h := handler.NewHandler(svc, log)
	engine := router.New(cfg, h, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
