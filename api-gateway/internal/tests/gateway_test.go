package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dinein-preorder/api-gateway/internal/gateway"
	"dinein-preorder/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func upstreamResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_Routing(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		expectedURL string
	}{
		{name: "stats", method: http.MethodGet, target: "/restaurants/rest-1/stats", expectedURL: "http://stats-svc/restaurants/rest-1/stats"},
		{name: "menu", method: http.MethodGet, target: "/restaurants/rest-1/menu", expectedURL: "http://preorder-svc/restaurants/rest-1/menu"},
		{name: "place order", method: http.MethodPost, target: "/orders", expectedURL: "http://preorder-svc/orders"},
		{name: "query kept", method: http.MethodGet, target: "/orders?restaurant_id=rest-1&limit=5", expectedURL: "http://preorder-svc/orders?restaurant_id=rest-1&limit=5"},
		{name: "qr code", method: http.MethodGet, target: "/orders/o-1/qrcode", expectedURL: "http://preorder-svc/orders/o-1/qrcode"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{
				PreorderSvcURL: "http://preorder-svc",
				StatsSvcURL:    "http://stats-svc",
			}, mockClient, nil)

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.Method == testCase.method && req.URL.String() == testCase.expectedURL
			})).Return(upstreamResponse(http.StatusOK, `{"ok":true}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.target, strings.NewReader(`{}`))
			rr := httptest.NewRecorder()

			gw.SetupRoutes().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestGateway_PassesUpstreamStatus(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{PreorderSvcURL: "http://preorder-svc"}, mockClient, nil)

	mockClient.On("Do", mock.Anything).
		Return(upstreamResponse(http.StatusBadRequest, `{"error":"field is required","field":"items"}`), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"field":"items"`)
}

func TestGateway_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{
		StatsSvcURL: "http://invalid",
	}, mockClient, nil)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/restaurants/rest-1/stats", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_DropsUpstreamCORSHeaders(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{PreorderSvcURL: "http://preorder-svc"}, mockClient, nil)

	resp := upstreamResponse(http.StatusOK, `[]`)
	resp.Header.Set("Access-Control-Allow-Origin", "*")
	mockClient.On("Do", mock.Anything).Return(resp, nil).Once()

	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/restaurants", nil))

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "[]", rr.Body.String())
}
