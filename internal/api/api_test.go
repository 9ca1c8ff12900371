// internal/api/api_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udyamhq/udyam-backend/internal/api/middleware"
	"github.com/udyamhq/udyam-backend/internal/config"
	"github.com/udyamhq/udyam-backend/internal/domain"
	"github.com/udyamhq/udyam-backend/internal/repository"
	"github.com/udyamhq/udyam-backend/internal/service"
)

// fakeLedger embeds the interface and overrides only the methods the tested
// endpoints reach. Untested paths panic loudly instead of passing silently.
type fakeLedger struct {
	repository.LedgerReader
	series []domain.TimeSeriesPoint
}

func (f fakeLedger) SalesByPeriod(ctx context.Context, flt repository.LedgerFilter, bucket domain.Bucket) ([]domain.TimeSeriesPoint, error) {
	return f.series, nil
}

func (f fakeLedger) TopProductsByRevenue(ctx context.Context, flt repository.LedgerFilter, limit int) ([]domain.ProductRevenue, error) {
	return nil, nil
}

func newTestRouter(ledger repository.LedgerReader) *gin.Engine {
	gin.SetMode(gin.TestMode)

	analyticsSvc := service.NewAnalyticsService(ledger, nil, config.DefaultAnalytics())
	financeSvc := service.NewFinanceService(ledger)
	return NewRouter(&Services{
		Analytics: analyticsSvc,
		Finance:   financeSvc,
		Reports:   service.NewReportService(financeSvc, nil),
	}, nil)
}

func doRequest(router *gin.Engine, method, path, tenant, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if tenant != "" {
		req.Header.Set(middleware.TenantHeader, tenant)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTenantHeaderRequired(t *testing.T) {
	router := newTestRouter(fakeLedger{})

	w := doRequest(router, http.MethodGet, "/api/v1/analytics/forecast", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), middleware.TenantHeader)

	w = doRequest(router, http.MethodGet, "/api/v1/analytics/forecast", "not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForecastEndpoint(t *testing.T) {
	router := newTestRouter(fakeLedger{series: []domain.TimeSeriesPoint{
		{Period: "2025-05", Revenue: 10000},
		{Period: "2025-06", Revenue: 12000},
	}})

	w := doRequest(router, http.MethodGet, "/api/v1/analytics/forecast?months=2", "1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var forecast domain.Forecast
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &forecast))
	assert.Len(t, forecast.Predictions, 2)
	assert.Len(t, forecast.Historical, 2)
}

func TestForecastDefaultsToOneMonth(t *testing.T) {
	router := newTestRouter(fakeLedger{series: []domain.TimeSeriesPoint{
		{Period: "2025-05", Revenue: 10000},
		{Period: "2025-06", Revenue: 12000},
	}})

	w := doRequest(router, http.MethodGet, "/api/v1/analytics/forecast", "1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var forecast domain.Forecast
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &forecast))
	assert.Len(t, forecast.Predictions, 1)
}

func TestForecastValidation(t *testing.T) {
	router := newTestRouter(fakeLedger{series: []domain.TimeSeriesPoint{
		{Period: "2025-05", Revenue: 10000},
		{Period: "2025-06", Revenue: 12000},
	}})

	for _, months := range []string{"0", "13", "abc"} {
		w := doRequest(router, http.MethodGet, "/api/v1/analytics/forecast?months="+months, "1", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "months=%s", months)
	}
}

func TestForecastInsufficientDataIs400(t *testing.T) {
	router := newTestRouter(fakeLedger{series: []domain.TimeSeriesPoint{
		{Period: "2025-06", Revenue: 12000},
	}})

	w := doRequest(router, http.MethodGet, "/api/v1/analytics/forecast", "1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient data")
}

func TestSalesRejectsUnknownPeriod(t *testing.T) {
	router := newTestRouter(fakeLedger{})

	w := doRequest(router, http.MethodGet, "/api/v1/analytics/sales?period=hourly", "1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateReportRejectsUnknownType(t *testing.T) {
	router := newTestRouter(fakeLedger{})

	w := doRequest(router, http.MethodPost, "/api/v1/finance/reports", "1",
		`{"report_type":"ledger_dump"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "profit_loss")

	w = doRequest(router, http.MethodPost, "/api/v1/finance/reports", "1", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
