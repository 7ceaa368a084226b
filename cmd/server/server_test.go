package main

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sentratech/roi-engine/internal/db"
	"github.com/sentratech/roi-engine/internal/migrations"
	"github.com/sentratech/roi-engine/internal/roi"
	"github.com/sentratech/roi-engine/internal/seed"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "pw"
)

const bangladeshJSON = `{
	"calls": 1000,
	"interactions": 1000,
	"callAHT": 8,
	"interactionAHT": 5,
	"automationPct": 0.6,
	"country": "Bangladesh",
	"sentraPricePer1k": 1200,
	"bundlesPerMonth": 1,
	"implCost": 3000,
	"periodMonths": 12
}`

func newTestServer(t *testing.T) *server {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, migrations.Up(ctx, database, nil))

	_, err = seed.Run(ctx, database, seed.Config{
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
		Rates:         roi.DefaultRates(),
	})
	require.NoError(t, err)

	rates, err := seed.LoadRates(ctx, database)
	require.NoError(t, err)
	engine, err := roi.New(rates)
	require.NoError(t, err)

	return &server{
		auth:   newAuthService(database, "test-secret"),
		db:     database,
		engine: engine,
		log:    zap.NewNop(),
	}
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seedReport(t *testing.T, database *sql.DB, id, createdAt, title, company string) {
	t.Helper()

	_, err := database.Exec(`
		INSERT INTO roi_reports (
			id, created_at, title, company, email, country, mode, monthly_savings, roi_percent, input_json, result_json
		) VALUES (?, ?, ?, ?, '', 'Bangladesh', 'call_volume', 100, 10, '{}', '{}')
	`, id, createdAt, title, company)
	require.NoError(t, err)
}
