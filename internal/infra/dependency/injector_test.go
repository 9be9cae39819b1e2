package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

var fixedNow = time.Date(2025, time.October, 19, 15, 30, 0, 0, time.UTC)

type apiHarness struct {
	t      *testing.T
	engine *gin.Engine
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, Window: time.Minute},
		Export:    config.ExportConfig{Delimiter: ','},
		Analytics: config.AnalyticsConfig{TrendMonths: 6},
	}

	injector := NewInjector(cfg, db, nil, WithClock(func() time.Time { return fixedNow }))
	_, err = injector.UseCases.SeedDefaultCategories.Execute(context.Background())
	require.NoError(t, err)

	return &apiHarness{t: t, engine: injector.Router.Setup("test")}
}

func (h *apiHarness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if _, isString := body.(string); !isString && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAPI_Health(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "disabled", body["redis"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAPI_ExpenseLifecycle(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPost, "/api/v1/expenses", map[string]any{
		"category":    "Groceries",
		"amount":      12.5,
		"description": "Weekly shop",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode(t, rec)["expense"].(map[string]any)
	assert.Equal(t, "2025-10-19", created["date"])
	assert.Equal(t, 12.5, created["amount"])
	assert.Equal(t, "Cash", created["payment_method"])
	id := int(created["id"].(float64))

	path := "/api/v1/expenses/" + strconv.Itoa(id)

	rec = h.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Weekly shop", decode(t, rec)["description"])

	rec = h.do(http.MethodPatch, path, map[string]any{"amount": "20.00", "date": "2025-10-18"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, 20.0, updated["amount"])
	assert.Equal(t, "2025-10-18", updated["date"])

	rec = h.do(http.MethodGet, "/api/v1/expenses/search?q=weekly", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decode(t, rec)["total"])

	rec = h.do(http.MethodGet, "/api/v1/expenses/recent?days=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decode(t, rec)["total"])

	rec = h.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "EXP-020001", decode(t, rec)["code"])
}

func TestAPI_ExpenseValidation(t *testing.T) {
	h := newAPIHarness(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{
			name:   "unknown category",
			method: http.MethodPost,
			path:   "/api/v1/expenses",
			body:   map[string]any{"category": "Yachts", "amount": 10},
			status: http.StatusBadRequest,
			code:   "EXP-010003",
		},
		{
			name:   "non-positive amount",
			method: http.MethodPost,
			path:   "/api/v1/expenses",
			body:   map[string]any{"category": "Rent", "amount": 0},
			status: http.StatusBadRequest,
			code:   "EXP-010001",
		},
		{
			name:   "malformed date",
			method: http.MethodPost,
			path:   "/api/v1/expenses",
			body:   map[string]any{"category": "Rent", "amount": 10, "date": "19/10/2025"},
			status: http.StatusBadRequest,
			code:   "EXP-010004",
		},
		{
			name:   "malformed body",
			method: http.MethodPost,
			path:   "/api/v1/expenses",
			body:   "{not json",
			status: http.StatusBadRequest,
			code:   "REQ-010001",
		},
		{
			name:   "non-numeric id",
			method: http.MethodGet,
			path:   "/api/v1/expenses/abc",
			status: http.StatusBadRequest,
			code:   "REQ-010002",
		},
		{
			name:   "empty patch",
			method: http.MethodPatch,
			path:   "/api/v1/expenses/1",
			body:   map[string]any{},
			status: http.StatusBadRequest,
			code:   "EXP-010006",
		},
		{
			name:   "empty search",
			method: http.MethodGet,
			path:   "/api/v1/expenses/search",
			status: http.StatusBadRequest,
			code:   "EXP-010005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decode(t, rec)["code"])
		})
	}
}

func TestAPI_BudgetWarningAndStatus(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPut, "/api/v1/budgets/Groceries", map[string]any{"monthly_limit": 100})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 100.0, decode(t, rec)["monthly_limit"])

	rec = h.do(http.MethodPost, "/api/v1/expenses", map[string]any{
		"category": "Groceries",
		"amount":   80,
		"date":     "2025-10-05",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	warning := decode(t, rec)["budget_warning"].(map[string]any)
	assert.Equal(t, "CAUTION", warning["status"])
	assert.Equal(t, "Note: 80.0% of budget used", warning["message"])

	rec = h.do(http.MethodGet, "/api/v1/budgets/status?as_of=2025-10-19", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode(t, rec)
	assert.Equal(t, "2025-10-01", status["month_start"])
	budgets := status["budgets"].([]any)
	require.Len(t, budgets, 1)
	assert.Equal(t, 20.0, budgets[0].(map[string]any)["remaining"])

	rec = h.do(http.MethodPut, "/api/v1/budgets/Groceries", map[string]any{"monthly_limit": -5})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BDG-010001", decode(t, rec)["code"])

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/v1/budgets/Groceries", nil).Code)

	rec = h.do(http.MethodDelete, "/api/v1/budgets/Groceries", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "BDG-020001", decode(t, rec)["code"])
}

func TestAPI_Categories(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["categories"], 13)

	rec = h.do(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Pets"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "📌", decode(t, rec)["icon"])

	rec = h.do(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Pets"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CAT-010005", decode(t, rec)["code"])
}

func TestAPI_Analytics(t *testing.T) {
	h := newAPIHarness(t)

	for _, e := range []map[string]any{
		{"category": "Rent", "amount": 900, "date": "2025-10-01"},
		{"category": "Groceries", "amount": 100, "date": "2025-10-03"},
		{"category": "Groceries", "amount": 50, "date": "2025-09-10"},
	} {
		require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/v1/expenses", e).Code)
	}

	rec := h.do(http.MethodGet, "/api/v1/analytics/summary?period=month&as_of=2025-10-19", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decode(t, rec)
	assert.Equal(t, 1000.0, summary["total_spent"])
	assert.Equal(t, 2.0, summary["transaction_count"])
	assert.Equal(t, "2025-10-01", summary["start_date"])

	rec = h.do(http.MethodGet, "/api/v1/analytics/breakdown?start_date=2025-10-01&end_date=2025-10-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode(t, rec)["categories"].([]any)
	require.Len(t, categories, 2)
	assert.Equal(t, "Rent", categories[0].(map[string]any)["category"])
	assert.Equal(t, 90.0, categories[0].(map[string]any)["percentage"])

	rec = h.do(http.MethodGet, "/api/v1/analytics/trends?as_of=2025-10-19", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["monthly_data"], 2)

	rec = h.do(http.MethodGet, "/api/v1/analytics/prediction?as_of=2025-10-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prediction := decode(t, rec)
	assert.Equal(t, 10.0, prediction["days_passed"])
	assert.Equal(t, 3100.0, prediction["projected_monthly_total"])

	rec = h.do(http.MethodGet, "/api/v1/analytics/insights?as_of=2025-10-19", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	insights := decode(t, rec)["insights"].([]any)
	require.NotEmpty(t, insights)
	first := insights[0].(map[string]any)
	assert.Equal(t, "WARNING", first["severity"])
	assert.True(t, strings.HasPrefix(first["message"].(string), "Rent accounts for 90.0%"))

	rec = h.do(http.MethodGet, "/api/v1/analytics/compare?period1_start=2025-09-01&period1_end=2025-09-30&period2_start=2025-10-01&period2_end=2025-10-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	compare := decode(t, rec)
	assert.Equal(t, "INCREASED", compare["direction"])
	assert.Equal(t, 950.0, compare["change_amount"])
}

func TestAPI_AnalyticsValidation(t *testing.T) {
	h := newAPIHarness(t)

	tests := []struct {
		name string
		path string
		code string
	}{
		{name: "bad period", path: "/api/v1/analytics/summary?period=decade", code: "ANL-010003"},
		{name: "bad as_of", path: "/api/v1/analytics/prediction?as_of=yesterday", code: "ANL-010001"},
		{name: "inverted range", path: "/api/v1/analytics/breakdown?start_date=2025-10-31&end_date=2025-10-01", code: "ANL-010002"},
		{name: "negative months", path: "/api/v1/analytics/trends?months=-2", code: "ANL-010004"},
		{name: "missing comparison period", path: "/api/v1/analytics/compare?period1_start=2025-09-01", code: "ANL-010006"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decode(t, rec)["code"])
		})
	}
}

func TestAPI_ExportImport(t *testing.T) {
	h := newAPIHarness(t)

	csvBody := "date,category,amount,description,payment_method\n" +
		"2025-10-01,Rent,900.00,October rent,Debit Card\n" +
		"2025-10-02,Yachts,10.00,nope,Cash\n" +
		"2025-10-03,Groceries,45.10,Market,\n"

	rec := h.do(http.MethodPost, "/api/v1/expenses/import", csvBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode(t, rec)
	assert.Equal(t, 2.0, result["imported"])
	rejected := result["rejected"].([]any)
	require.Len(t, rejected, 1)
	assert.Equal(t, 2.0, rejected[0].(map[string]any)["line"])

	rec = h.do(http.MethodGet, "/api/v1/expenses/export?start_date=2025-10-01&end_date=2025-10-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "2", rec.Header().Get("X-Export-Count"))
	assert.Contains(t, rec.Body.String(), "October rent")
	assert.Contains(t, rec.Body.String(), "45.10")
}
