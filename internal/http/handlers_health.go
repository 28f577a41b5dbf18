package httpx

import (
	"io"
	"net/http"
)

const healthResponse = `{"status":"ok","service":"shopdash-ui"}`

// healthHandler answers liveness probes. It never calls the dashboard API so
// an API outage does not restart the web tier.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
