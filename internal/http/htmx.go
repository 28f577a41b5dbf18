package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// htmx headers the dashboard reads or sets.
const (
	hxRequestHeader  = "Hx-Request"
	hxRedirectHeader = "Hx-Redirect"
	hxTriggerHeader  = "Hx-Trigger"

	// navActivateEvent tells app.js which sidebar link to highlight after a swap.
	navActivateEvent = "nav:activate"
)

// IsHTMX reports whether the request came from htmx. Such requests get the
// page's content fragment and are never answered with a 3xx.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(hxRequestHeader), "true")
}

// WantsPartial reports whether only the content fragment should be rendered.
func WantsPartial(r *http.Request) bool { return IsHTMX(r) }

// SetHXRedirect makes htmx perform a full navigation to url.
func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set(hxRedirectHeader, url) }

// SetHXTrigger fires event on the client after the swap as {"<event>": payload}.
// A nil payload sends true.
func SetHXTrigger(w http.ResponseWriter, event string, payload any) {
	var value any = true
	if payload != nil {
		value = payload
	}
	b, err := json.Marshal(map[string]any{event: value})
	if err != nil {
		b = []byte(`{"` + event + `":true}`)
	}
	w.Header().Set(hxTriggerHeader, string(b))
}

// activateNav highlights the sidebar entry for path once the fragment lands.
func activateNav(w http.ResponseWriter, path string) {
	SetHXTrigger(w, navActivateEvent, map[string]string{"path": path})
}
