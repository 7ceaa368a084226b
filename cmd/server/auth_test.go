package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionValueRoundTrip(t *testing.T) {
	auth := newAuthService(nil, "secret")

	value := auth.createSessionValue("admin@example.com")
	email, ok := auth.verifySessionValue(value)
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", email)

	other := newAuthService(nil, "other-secret")
	_, ok = other.verifySessionValue(value)
	assert.False(t, ok)

	for _, bad := range []string{"", "no-dot", "abc.zz", value + "00"} {
		_, ok := auth.verifySessionValue(bad)
		assert.False(t, ok, bad)
	}
}

func TestEmptySecretRejectsForgedSessions(t *testing.T) {
	auth := newAuthService(nil, "")
	require.Len(t, auth.sessionSecret, 32)

	payload := base64.RawURLEncoding.EncodeToString([]byte("admin@example.com"))
	mac := hmac.New(sha256.New, nil)
	_, _ = mac.Write([]byte(payload))
	forged := payload + "." + hex.EncodeToString(mac.Sum(nil))

	_, ok := auth.verifySessionValue(forged)
	assert.False(t, ok)

	own := auth.createSessionValue("admin@example.com")
	_, ok = auth.verifySessionValue(own)
	assert.True(t, ok)

	_, ok = newAuthService(nil, "").verifySessionValue(own)
	assert.False(t, ok)
}

func TestValidateCredentials(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	ok, err := srv.auth.validateCredentials(ctx, testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = srv.auth.validateCredentials(ctx, testAdminEmail, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = srv.auth.validateCredentials(ctx, "nobody@example.com", testAdminPassword)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminReportsRequiresLogin(t *testing.T) {
	srv := newTestServer(t)
	h := srv.routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/reports", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	forged := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
	forged.AddCookie(&http.Cookie{Name: sessionCookieName, Value: newAuthService(nil, "guess").createSessionValue("admin@example.com")})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t)
	seedReport(t, srv.db, "a", "2024-01-01 10:00:00", "Pilot", "Acme")
	h := srv.routes()

	rec := doForm(t, h, "/login", url.Values{"email": {testAdminEmail}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doForm(t, h, "/login", url.Values{"email": {testAdminEmail}, "password": {testAdminPassword}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/reports", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/admin/reports?q=pilot", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Pilot"`)

	rec = doForm(t, h, "/logout", url.Values{})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}
