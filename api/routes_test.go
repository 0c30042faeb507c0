package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage/memory"
	"github.com/carson-networks/budget-tracker/internal/suggest"
)

func newTestServer(t *testing.T) (*httptest.Server, *operator.OperatorDelegator) {
	t.Helper()

	logger := logging.SetupLogging()
	logger.SetOutput(io.Discard)

	store := memory.NewStorage()
	delegator := operator.NewOperatorDelegator(store, 2, logger)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	rest := &Rest{
		Logger:         logger,
		AllowedOrigins: []string{"http://localhost:3000"},
		Service:        service.NewService(store, delegator, suggest.Fallback{}),
		Operator:       delegator,
	}

	server := httptest.NewServer(rest.Handler())
	t.Cleanup(server.Close)
	return server, delegator
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), spew.Sdump(string(raw)))
	}
	return resp.StatusCode
}

func TestStatusAndMetrics(t *testing.T) {
	server, delegator := newTestServer(t)

	assert.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, server.URL+"/status", nil, nil))

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "budget_operator_queue_depth")

	delegator.Stop()
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, http.MethodGet, server.URL+"/status", nil, nil))
}

func TestExpenseFlow(t *testing.T) {
	server, _ := newTestServer(t)

	var category struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, server.URL+"/v1/category",
		map[string]any{"name": "Groceries"}, &category))

	var goal struct {
		ID              string `json:"id"`
		CurrentSpending string `json:"currentSpending"`
	}
	require.Equal(t, http.StatusCreated, doJSON(t, http.MethodPost, server.URL+"/v1/budget-goal",
		map[string]any{"name": "Food", "amount": "500", "timePeriod": "MONTHLY"}, &goal))

	status := doJSON(t, http.MethodPost, server.URL+"/v1/transaction", map[string]any{
		"amount":       "100",
		"type":         "Expense",
		"description":  "Weekly shop",
		"date":         "2025-01-15",
		"categoryID":   category.ID,
		"budgetGoalID": goal.ID,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, server.URL+"/v1/budget-goal/"+goal.ID, nil, &goal))
	assert.Equal(t, "100", goal.CurrentSpending)

	var report struct {
		TotalSpending      string `json:"totalSpending"`
		SpendingByCategory []struct {
			Category   string `json:"category"`
			Percentage string `json:"percentage"`
		} `json:"spendingByCategory"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet,
		server.URL+"/v1/report/monthly-spending?startDate=2025-01-01&endDate=2025-01-31", nil, &report))
	assert.Equal(t, "100.00", report.TotalSpending)
	require.Len(t, report.SpendingByCategory, 1)
	assert.Equal(t, "Groceries", report.SpendingByCategory[0].Category)
	assert.Equal(t, "100.00", report.SpendingByCategory[0].Percentage)
}

func TestCreateTransaction_MissingGoal(t *testing.T) {
	server, _ := newTestServer(t)

	status := doJSON(t, http.MethodPost, server.URL+"/v1/transaction", map[string]any{
		"amount":       "10",
		"type":         "Expense",
		"description":  "Coffee",
		"budgetGoalID": "8a4f0c6e-6a43-4a8e-9b7c-0d8e2f1b3c4d",
	}, nil)

	assert.Equal(t, http.StatusNotFound, status)
}

func TestCORS(t *testing.T) {
	server, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/v1/transaction", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
