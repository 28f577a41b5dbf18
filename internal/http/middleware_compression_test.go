package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveCompressed(t *testing.T, h http.HandlerFunc, method, acceptEncoding string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/dashboard", nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	rec := httptest.NewRecorder()
	Compression(CompressionConfig{Level: 6})(h).ServeHTTP(rec, req)
	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestCompression_GzipsCompressibleBodies(t *testing.T) {
	body := strings.Repeat("Revenue by day ", 500)
	h := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}

	tests := []struct {
		name           string
		acceptEncoding string
		wantGzip       bool
	}{
		{name: "gzip accepted", acceptEncoding: "gzip, deflate", wantGzip: true},
		{name: "wildcard accepted", acceptEncoding: "*", wantGzip: true},
		{name: "gzip refused by q=0", acceptEncoding: "gzip;q=0, deflate", wantGzip: false},
		{name: "deflate only", acceptEncoding: "deflate", wantGzip: false},
		{name: "no header", acceptEncoding: "", wantGzip: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serveCompressed(t, h, http.MethodGet, tt.acceptEncoding)

			if !tt.wantGzip {
				assert.Empty(t, resp.Header.Get("Content-Encoding"))
				got, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, body, string(got))
				return
			}

			assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
			assert.Contains(t, resp.Header.Values("Vary"), "Accept-Encoding")
			zr, err := gzip.NewReader(resp.Body)
			require.NoError(t, err)
			got, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, body, string(got))
		})
	}
}

func TestCompression_SkipsIncompressibleAndBodiless(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		resp := serveCompressed(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
		}, http.MethodGet, "gzip")
		assert.Empty(t, resp.Header.Get("Content-Encoding"))
	})

	t.Run("no content", func(t *testing.T) {
		resp := serveCompressed(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNoContent)
		}, http.MethodGet, "gzip")
		assert.Empty(t, resp.Header.Get("Content-Encoding"))
	})

	t.Run("head", func(t *testing.T) {
		resp := serveCompressed(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusOK)
		}, http.MethodHead, "gzip")
		assert.Empty(t, resp.Header.Get("Content-Encoding"))
	})

	t.Run("already encoded", func(t *testing.T) {
		resp := serveCompressed(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/css")
			w.Header().Set("Content-Encoding", "br")
			_, _ = w.Write([]byte("body{}"))
		}, http.MethodGet, "gzip")
		assert.Equal(t, "br", resp.Header.Get("Content-Encoding"))
	})
}

func TestCompression_DetectsContentType(t *testing.T) {
	resp := serveCompressed(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<!DOCTYPE html><html><body>"+strings.Repeat("x", 200)+"</body></html>")
	}, http.MethodGet, "gzip")

	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
}
