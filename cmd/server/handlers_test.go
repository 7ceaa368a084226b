package main

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCalculate_JSON(t *testing.T) {
	h := newTestServer(t).routes()

	rec := doJSON(t, h, http.MethodPost, "/api/roi", bangladeshJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 5200, body["traditional_bpo_cost_per_bundle"], 1e-9)
	assert.InDelta(t, 4000, body["monthly_savings"], 1e-9)
	assert.InDelta(t, 0.75, body["payback_months"], 1e-9)
	assert.Equal(t, true, body["payback_exists"])
	assert.Equal(t, "call_volume", body["mode"])
	assert.Nil(t, body["agent_count"])
	assert.Len(t, body["annualProjection"], 12)
}

func TestHandleCalculate_KeepsRequestID(t *testing.T) {
	h := newTestServer(t).routes()

	req := httptest.NewRequest(http.MethodPost, "/api/roi", strings.NewReader(bangladeshJSON))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestHandleCalculate_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "unknown country",
			body: strings.Replace(bangladeshJSON, "Bangladesh", "Atlantis", 1),
			want: "invalid country",
		},
		{
			name: "agent count mode without count",
			body: strings.Replace(bangladeshJSON, `"periodMonths": 12`, `"periodMonths": 12, "mode": "agent_count"`, 1),
			want: "invalid mode",
		},
		{
			name: "unknown field",
			body: strings.Replace(bangladeshJSON, `"periodMonths": 12`, `"periodMonths": 12, "discount": 5`, 1),
			want: "invalid json body",
		},
		{
			name: "automation above one",
			body: strings.Replace(bangladeshJSON, `"automationPct": 0.6`, `"automationPct": 60`, 1),
			want: "automationPct must be between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t).routes()

			rec := doJSON(t, h, http.MethodPost, "/api/roi", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error, tt.want)
		})
	}
}

func TestHandleCalculate_OverflowIsBadRequest(t *testing.T) {
	huge := strings.NewReplacer(`"calls": 1000`, `"calls": 1e200`, `"callAHT": 8`, `"callAHT": 1e200`).Replace(bangladeshJSON)

	srv := newTestServer(t)
	h := srv.routes()

	rec := doJSON(t, h, http.MethodPost, "/api/roi", huge)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "invalid input")

	rec = doJSON(t, h, http.MethodPost, "/api/reports", `{"title": "huge", "input": `+huge+`}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var count int
	require.NoError(t, srv.db.QueryRow(`SELECT COUNT(*) FROM roi_reports`).Scan(&count))
	assert.Zero(t, count)
}

func TestWriteJSON_EncodeFailureIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"x": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to encode response", body.Error)
}

func TestHandleCountries(t *testing.T) {
	h := newTestServer(t).routes()

	req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body countriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Countries)
	assert.Positive(t, body.AICostPerAgent)

	var found bool
	for _, c := range body.Countries {
		if c.Name == "Bangladesh" {
			found = true
			assert.InDelta(t, 0.40, c.BPOPerMinute, 1e-9)
		}
	}
	assert.True(t, found, "Bangladesh missing from %+v", body.Countries)
}

func TestHandleAgents(t *testing.T) {
	h := newTestServer(t).routes()

	rec := doJSON(t, h, http.MethodPost, "/api/agents", `{"country": "Bangladesh", "agents": 10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 5000, body["traditional_monthly_cost"], 1e-9)
	assert.InDelta(t, 3500, body["monthly_savings"], 1e-9)

	rec = doJSON(t, h, http.MethodPost, "/api/agents", `{"country": "Atlantis", "agents": 10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t).routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t).routes()
	doJSON(t, h, http.MethodPost, "/api/roi", bangladeshJSON)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "roi_calculations_total")
}
