package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "dinein-preorder/stats-svc/internal/api/http"
	"dinein-preorder/stats-svc/internal/domain"
	"dinein-preorder/stats-svc/internal/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(stats *mocks.StatsReader) *mux.Router {
	r := mux.NewRouter()
	httpapi.NewHandler(stats, nil).RegisterRoutes(r)
	return r
}

func TestHandler_restaurantStats(t *testing.T) {
	tests := []struct {
		name         string
		prepareMocks func(*mocks.StatsReader)
		expectedCode int
	}{
		{
			name: "success",
			prepareMocks: func(m *mocks.StatsReader) {
				m.On("RestaurantStats", mock.Anything, "rest-1").Return(&domain.RestaurantStats{
					RestaurantID: "rest-1",
					Orders:       3,
					Revenue:      31.3,
					PopularItems: []domain.PopularItem{{MenuItemID: "item-b", Quantity: 5}},
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "store error",
			prepareMocks: func(m *mocks.StatsReader) {
				m.On("RestaurantStats", mock.Anything, "rest-1").Return(nil, errors.New("redis down")).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			stats := mocks.NewStatsReader(t)
			testCase.prepareMocks(stats)

			req := httptest.NewRequest("GET", "/restaurants/rest-1/stats", nil)
			recorder := httptest.NewRecorder()
			setupTestRouter(stats).ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_restaurantStats_Body(t *testing.T) {
	stats := mocks.NewStatsReader(t)
	stats.On("RestaurantStats", mock.Anything, "rest-1").Return(&domain.RestaurantStats{
		RestaurantID: "rest-1",
		Orders:       3,
		OrdersToday:  2,
		PopularItems: []domain.PopularItem{},
	}, nil).Once()

	recorder := httptest.NewRecorder()
	setupTestRouter(stats).ServeHTTP(recorder, httptest.NewRequest("GET", "/restaurants/rest-1/stats", nil))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, float64(3), body["orders"])
	assert.Equal(t, float64(2), body["orders_today"])
	assert.Equal(t, []interface{}{}, body["popular_items"])
}

func TestHandler_healthCheck(t *testing.T) {
	stats := mocks.NewStatsReader(t)
	stats.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()

	recorder := httptest.NewRecorder()
	setupTestRouter(stats).ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))

	var body map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "stats-svc", body["service"])
	assert.Equal(t, "error: connection refused", body["redis"])
}
