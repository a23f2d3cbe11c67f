package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"paintcalc/internal/config"
	"paintcalc/internal/database"
	httpapi "paintcalc/internal/http"
	"paintcalc/internal/logger"
	"paintcalc/internal/repository"
	"paintcalc/internal/service"
	"paintcalc/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "paintcalc")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Projects repo: postgres when enabled and reachable, memory fallback
	// otherwise so the tool always starts with plain `go run`.
	var repo repository.ProjectsRepository = repository.NewMemoryProjectsRepo()
	if cfg.DBEnabled {
		if db, err := database.NewPostgresDB(&cfg.Database); err == nil {
			pg := repository.NewPostgresProjectsRepo(db)
			if err := pg.EnsureSchema(context.Background()); err != nil {
				log.Warn("schema bootstrap failed, falling back to memory repo", zap.Error(err))
			} else {
				repo = pg
				log.Info("DB enabled for paintcalc")
			}
			defer database.Close(db)
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repo", zap.Error(err))
		}
	}

	// Result cache: redis when enabled, in-process map otherwise.
	var cache store.KV = store.NewMemoryKV()
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err == nil {
			cache = store.NewRedisKV(redisClient)
			log.Info("redis result cache enabled")
		} else {
			log.Warn("redis enabled but unreachable, using in-process cache", zap.Error(err))
		}
	}

	svc := service.NewProjectService(repo, cache, log)
	handler := httpapi.NewProjectHandler(svc, log)
	router := httpapi.NewRouter(log)
	router.RegisterProjectRoutes(handler)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		log.Info("paintcalc listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
