package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func createReport(t *testing.T, h http.Handler) reportCreatedResponse {
	t.Helper()

	body := `{"title": "Q3 proposal", "company": "Acme", "email": "ops@acme.test", "input": ` + bangladeshJSON + `}`
	rec := doJSON(t, h, http.MethodPost, "/api/reports", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created reportCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return created
}

func TestReportCreateAndDetail(t *testing.T) {
	h := newTestServer(t).routes()
	created := createReport(t, h)
	assert.InDelta(t, 4000, created.Result.MonthlySavings, 1e-9)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+created.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail reportDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, created.ID, detail.ID)
	assert.Equal(t, "Q3 proposal", detail.Title)
	assert.Equal(t, "Acme", detail.Company)
	assert.Equal(t, "Bangladesh", detail.Input.Country)
	assert.InDelta(t, 4000, detail.Result.MonthlySavings, 1e-9)
	assert.NotEmpty(t, detail.CreatedAt)
}

func TestGetReportReadsSnapshotWithoutRecalculation(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.db.Exec(`
		INSERT INTO roi_reports (id, title, company, email, country, mode, monthly_savings, roi_percent, input_json, result_json)
		VALUES ('snap', 'Old', 'Acme', '', 'Bangladesh', 'call_volume', 1, 2,
			'{"country": "Bangladesh", "periodMonths": 12}',
			'{"country": "Bangladesh", "mode": "call_volume", "monthly_savings": 123.45, "roi_percent": 9}')
	`)
	require.NoError(t, err)

	detail, err := srv.getReport(context.Background(), "snap")
	require.NoError(t, err)
	assert.InDelta(t, 123.45, detail.Result.MonthlySavings, 1e-9)
	assert.InDelta(t, 9, detail.Result.ROIPercent, 1e-9)
}

func TestReportText(t *testing.T) {
	h := newTestServer(t).routes()
	created := createReport(t, h)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+created.ID+"/text", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

	text := rec.Body.String()
	assert.Contains(t, text, "Q3 proposal")
	assert.Contains(t, text, "Company: Acme")
	assert.Contains(t, text, "Monthly savings: 4000.00 USD")
	assert.Contains(t, text, "Payback: 0.8 months")
}

func TestReportXLSX(t *testing.T) {
	h := newTestServer(t).routes()
	created := createReport(t, h)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+created.ID+"/xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), created.ID)

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
}

func TestReportNotFound(t *testing.T) {
	h := newTestServer(t).routes()

	for _, path := range []string{"/api/reports/missing", "/api/reports/missing/text", "/api/reports/missing/xlsx"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestReportCreate_RejectsInvalidInput(t *testing.T) {
	srv := newTestServer(t)
	h := srv.routes()

	rec := doJSON(t, h, http.MethodPost, "/api/reports", `{"title": "x", "input": {"country": "Atlantis", "periodMonths": 12}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int
	require.NoError(t, srv.db.QueryRow(`SELECT COUNT(*) FROM roi_reports`).Scan(&count))
	assert.Zero(t, count)
}

func TestListReportsOrdersByDateDesc(t *testing.T) {
	srv := newTestServer(t)

	seedReport(t, srv.db, "a", "2024-01-01 10:00:00", "First", "Acme")
	seedReport(t, srv.db, "c", "2024-01-03 12:00:00", "Third", "Globex")
	seedReport(t, srv.db, "b", "2024-01-02 11:00:00", "Second", "Acme")

	reports, err := srv.listReports(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "Third", reports[0].Title)
	assert.Equal(t, "Second", reports[1].Title)
	assert.Equal(t, "First", reports[2].Title)
	assert.InDelta(t, 100, reports[0].MonthlySavings, 1e-9)
}

func TestListReportsFilterByTitleAndCompany(t *testing.T) {
	srv := newTestServer(t)

	seedReport(t, srv.db, "a", "2024-01-01 10:00:00", "Pilot", "Acme")
	seedReport(t, srv.db, "b", "2024-01-02 10:00:00", "Rollout", "Globex")
	seedReport(t, srv.db, "c", "2024-01-03 10:00:00", "Acme expansion", "Initech")

	byTitle, err := srv.listReports(context.Background(), "Roll")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Rollout", byTitle[0].Title)

	byEither, err := srv.listReports(context.Background(), "acme")
	require.NoError(t, err)
	assert.Len(t, byEither, 2)
}
