package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinein-preorder/api-gateway/internal/gateway"
	"dinein-preorder/config"
	"dinein-preorder/logger"

	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()
	log := logger.New("api-gateway")

	gw := gateway.NewGateway(gateway.Config{
		PreorderSvcURL: cfg.PreorderSvcURL,
		StatsSvcURL:    cfg.StatsSvcURL,
	}, &http.Client{Timeout: 30 * time.Second}, log)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.GatewayPort,
		Handler:           c.Handler(gw.SetupRoutes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API gateway starting", "addr", server.Addr,
			"preorder_svc", cfg.PreorderSvcURL, "stats_svc", cfg.StatsSvcURL)
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
