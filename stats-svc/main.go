package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinein-preorder/config"
	"dinein-preorder/logger"
	httpapi "dinein-preorder/stats-svc/internal/api/http"
	"dinein-preorder/stats-svc/internal/service"
	"dinein-preorder/stats-svc/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.New("stats-svc")

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	store := storage.NewStore(rdb)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.KafkaBroker != "" {
		reader := config.NewKafkaReader(cfg, "stats-svc-consumer")
		defer reader.Close()
		consumer := service.NewConsumer(reader, store, log)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Error("consumer stopped", "error", err)
			}
		}()
	} else {
		log.Warn("KAFKA_BROKER not set, order events will not be consumed")
	}

	handler := httpapi.NewHandler(store, log)
	server := &http.Server{
		Addr:              ":" + cfg.StatsPort,
		Handler:           httpapi.NewRouter(handler, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("stats-svc listening", "port", cfg.StatsPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
