package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"dinein-preorder/logger"
	"dinein-preorder/preorder-svc/internal/domain"
	"dinein-preorder/preorder-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Orders  service.OrderServiceInterface
	Log     *slog.Logger
}

func NewHandler(catalog service.CatalogServiceInterface, orders service.OrderServiceInterface, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		Catalog: catalog,
		Orders:  orders,
		Log:     log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.root).Methods("GET")
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/seed", h.seed).Methods("POST")

	r.HandleFunc("/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/restaurants/{restaurantId}/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/restaurants/{restaurantId}/menu", h.createMenuItem).Methods("POST")

	r.HandleFunc("/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Dine-In Preorder API running"})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	status := h.Catalog.Status(r.Context())

	database := "not configured"
	switch {
	case status.Err != nil:
		database = "error: " + truncate(status.Err.Error(), 80)
	case status.Configured:
		database = "connected"
	}

	collections := status.Collections
	if collections == nil {
		collections = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"service":     "preorder-svc",
		"timestamp":   time.Now().Format(time.RFC3339),
		"database":    database,
		"collections": collections,
	})
}

func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.Catalog.Seed(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	rest := domain.Restaurant{AvgPrepMinutes: domain.DefaultPrepMinutes}
	if err := decodeAndValidate(r, &rest); err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := h.Catalog.CreateRestaurant(r.Context(), &rest)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListMenu(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID := mux.Vars(r)["restaurantId"]
	item := domain.MenuItem{IsAvailable: true}
	if err := decodeAndValidate(r, &item); err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := h.Catalog.CreateMenuItem(r.Context(), restaurantID, &item)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	result, err := h.Orders.PlaceOrder(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := domain.DefaultOrderLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, r, service.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = parsed
	}

	orders, err := h.Orders.ListOrders(r.Context(), query.Get("restaurant_id"), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return service.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return service.Validate(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	case errors.Is(err, domain.ErrStoreNotConfigured):
		h.Log.Error("store not configured", "method", r.Method, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database not configured"})
	default:
		h.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
