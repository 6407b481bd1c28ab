package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinein-preorder/config"
	"dinein-preorder/logger"
	httpapi "dinein-preorder/preorder-svc/internal/api/http"
	"dinein-preorder/preorder-svc/internal/service"
	"dinein-preorder/preorder-svc/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.New("preorder-svc")

	store, closeStore := openStore(cfg, log)
	defer closeStore()

	var publisher service.OrderPublisher
	if writer := config.NewKafkaWriter(cfg); writer != nil {
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		log.Info("KAFKA_BROKER not set, order events disabled")
	}

	catalog := service.NewCatalogService(store, store, store, log)
	orders := service.NewOrderService(store, store, store, publisher,
		service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}, log)

	handler := httpapi.NewHandler(catalog, orders, log)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(handler, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("preorder service starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}
}

type documentStore interface {
	service.RestaurantRepository
	service.MenuRepository
	service.OrderRepository
	service.StatusReporter
}

// openStore falls back to an unconfigured Postgres store, which answers every
// call with ErrStoreNotConfigured, when no database is reachable.
func openStore(cfg config.Config, log *slog.Logger) (documentStore, func()) {
	if cfg.StoreDriver == "memory" {
		log.Info("using in-memory store")
		return storage.NewMemoryStore(), func() {}
	}

	db, err := config.InitPostgres(cfg)
	if err != nil {
		log.Warn("starting without database", "error", err)
		return storage.NewPostgresStore(nil), func() {}
	}

	store := storage.NewPostgresStore(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Error("ensure schema", "error", err)
		os.Exit(1)
	}
	return store, func() { db.Close() }
}
