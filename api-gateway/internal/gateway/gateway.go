package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dinein-preorder/logger"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	PreorderSvcURL string
	StatsSvcURL    string
}

type Gateway struct {
	config Config
	client HTTPClient
	log    *slog.Logger
}

func NewGateway(config Config, client HTTPClient, log *slog.Logger) *Gateway {
	if log == nil {
		log = logger.Discard()
	}
	return &Gateway{
		config: config,
		client: client,
		log:    log,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ProxyRequest forwards r to targetURL keeping method, path, query, headers
// and body. Upstream failures answer 502.
func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	g.log.Debug("proxy", "method", r.Method, "path", r.URL.Path, "target", url)

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.log.Error("build upstream request", "target", url, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("upstream unavailable", "target", targetURL, "error", err)
		writeError(w, http.StatusBadGateway, "Upstream service unavailable")
		return
	}
	defer resp.Body.Close()

	// CORS is answered by the gateway itself.
	for k, v := range resp.Header {
		if strings.HasPrefix(k, "Access-Control-") {
			continue
		}
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.log.Error("copy upstream response", "target", targetURL, "error", err)
	}
}

func (g *Gateway) StatsHandler(w http.ResponseWriter, r *http.Request) {
	g.ProxyRequest(w, r, g.config.StatsSvcURL)
}

func (g *Gateway) PreorderHandler(w http.ResponseWriter, r *http.Request) {
	g.ProxyRequest(w, r, g.config.PreorderSvcURL)
}

func (g *Gateway) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(logger.AccessLog(g.log))
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.HandleFunc("/restaurants/{restaurantId}/stats", g.StatsHandler).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.PreorderHandler)
	return r
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
