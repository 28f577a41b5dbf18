package httpx

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopdash/shopdash-ui/internal/service"
)

// AuthHandlers provides the JSON-speaking session endpoints.
type AuthHandlers struct {
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Logout ends the browser's session. The credential store is cleared through
// the session, so the cookie deletion is on the response before it is sent.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		sess.Logout(r.Context())
	} else {
		h.logger().WarnContext(r.Context(), "logout without session")
	}

	// AJAX/HTMX requests get a JSON payload; regular requests redirect
	isAJAX := strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
	if IsHTMX(r) {
		SetHXRedirect(w, LoginPath)
	}
	if isAJAX || IsHTMX(r) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": LoginPath,
		})
		return
	}

	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	snap := sess.Snapshot()
	if !snap.IsAuthenticated {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"forced_out":    snap.ForcedOut,
		})
		return
	}

	resp := map[string]any{
		"authenticated": true,
		"state":         snap.State.String(),
	}
	if snap.User != nil {
		resp["user"] = map[string]any{
			"id":    snap.User.ID,
			"name":  snap.User.Name,
			"email": snap.User.Email,
			"role":  snap.User.Role,
		}
	}
	if snap.Tenant != nil {
		resp["tenant"] = map[string]any{
			"id":             snap.Tenant.ID,
			"name":           snap.Tenant.Name,
			"shopify_domain": snap.Tenant.ShopifyDomain,
		}
	}
	if exp := service.InspectToken(snap.Token).ExpiresAt; !exp.IsZero() {
		resp["expires_at"] = exp.UTC().Format(time.RFC3339)
	}
	WriteJSON(w, http.StatusOK, resp)
}
