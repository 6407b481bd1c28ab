package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"dinein-preorder/logger"
	"dinein-preorder/stats-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type Handler struct {
	Stats service.StatsReader
	Log   *slog.Logger
}

func NewHandler(stats service.StatsReader, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{Stats: stats, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/restaurants/{restaurantId}/stats", h.restaurantStats).Methods("GET")
}

func NewRouter(handler *Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(logger.AccessLog(handler.Log))
	handler.RegisterRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	redisStatus := "connected"
	if err := h.Stats.Ping(r.Context()); err != nil {
		redisStatus = "error: " + err.Error()
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "stats-svc",
		"timestamp": time.Now().Format(time.RFC3339),
		"redis":     redisStatus,
	})
}

func (h *Handler) restaurantStats(w http.ResponseWriter, r *http.Request) {
	restaurantID := mux.Vars(r)["restaurantId"]
	stats, err := h.Stats.RestaurantStats(r.Context(), restaurantID)
	if err != nil {
		h.Log.Error("read stats", "restaurant_id", restaurantID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to read stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
