package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfTestHandler() http.Handler {
	return CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	}))
}

func TestCSRFProtection_IssuesCookieOnSafeRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	c := ResponseCookie(rec, DefaultCSRFCookieName)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.Value)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	// The handler sees the same token it embeds in forms.
	assert.Equal(t, c.Value, rec.Body.String())
}

func TestCSRFProtection_SecureBehindTLSProxy(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.Header.Set("X-Forwarded-Proto", "http, https")
	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, r)

	c := ResponseCookie(rec, DefaultCSRFCookieName)
	require.NotNil(t, c)
	assert.True(t, c.Secure)
}

func TestCSRFProtection_UnsafeMethods(t *testing.T) {
	const token = "known-token"
	form := func(v string) string {
		return url.Values{DefaultCSRFCookieName: {v}}.Encode()
	}

	tests := []struct {
		name     string
		method   string
		cookie   string
		header   string
		form     string
		wantCode int
	}{
		{name: "no cookie", method: http.MethodPost, header: token, wantCode: http.StatusForbidden},
		{name: "cookie without submission", method: http.MethodPost, cookie: token, wantCode: http.StatusForbidden},
		{name: "header matches", method: http.MethodPost, cookie: token, header: token, wantCode: http.StatusOK},
		{name: "form field matches", method: http.MethodPost, cookie: token, form: form(token), wantCode: http.StatusOK},
		{name: "header mismatch", method: http.MethodPost, cookie: token, header: "other", wantCode: http.StatusForbidden},
		{name: "form mismatch", method: http.MethodPost, cookie: token, form: form("other"), wantCode: http.StatusForbidden},
		{name: "put checked too", method: http.MethodPut, cookie: token, wantCode: http.StatusForbidden},
		{name: "head exempt", method: http.MethodHead, cookie: token, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.form != "" {
				body = strings.NewReader(tt.form)
			} else {
				body = strings.NewReader("")
			}
			r := httptest.NewRequest(tt.method, "/dashboard/sync", body)
			if tt.form != "" {
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set(DefaultCSRFHeaderName, tt.header)
			}
			rec := httptest.NewRecorder()
			csrfTestHandler().ServeHTTP(rec, r)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGetCSRFToken_EmptyWithoutMiddleware(t *testing.T) {
	assert.Empty(t, GetCSRFToken(httptest.NewRequest(http.MethodGet, "/", nil)))
}
