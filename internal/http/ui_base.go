package httpx

import (
	"context"
	"html"
	"log/slog"
	"maps"
	"net/http"

	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/http/ui/viewmodel"
	"github.com/shopdash/shopdash-ui/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T            *TemplateRenderer
	DashboardSvc *service.DashboardService
	IsDev        bool // Development mode flag for enhanced error reporting
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request's session.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		return layout
	}
	snap := sess.Snapshot()
	if !snap.IsAuthenticated {
		return layout
	}
	layout.IsAuthenticated = true
	if snap.User != nil {
		layout.User = &viewmodel.User{
			Name:  snap.User.Name,
			Email: snap.User.Email,
			Role:  string(snap.User.Role),
		}
		layout.IsAdmin = snap.User.Role.IsAdmin()
	}
	if snap.Tenant != nil {
		layout.Tenant = &viewmodel.Tenant{
			Name:          snap.Tenant.Name,
			ShopifyDomain: snap.Tenant.ShopifyDomain,
			Connected:     snap.Tenant.HasShopifyToken,
		}
	}
	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
	}

	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	if layout.Tenant != nil {
		data["Tenant"] = layout.Tenant
	}

	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
// Fetch runs against the session's own API client.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, api *shopapi.Client, data map[string]any) error
}

// Page fetches content data, then renders it inside the dashboard chrome.
// The fetch runs before anything is written: a 401 during the fetch tears the
// session down, which clears the credential cookie, and the browser is then
// sent to the login page instead of a half-empty dashboard.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	api, ok := GetAPIFromContext(r.Context())
	if !ok {
		h.forceLogin(w, r)
		return
	}

	content := map[string]any{}
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), api, content); err != nil {
			markPageError(content, err)
		}
	}

	if !IsAuthenticated(r.Context()) {
		h.forceLogin(w, r)
		return
	}

	data := basePageData(r, spec.Meta)
	maps.Copy(data, content)
	h.renderDashboardPage(w, r, data)
}

// forceLogin navigates the whole browser window to the login page.
func (h *UIHandlers) forceLogin(w http.ResponseWriter, r *http.Request) {
	h.logger().InfoContext(r.Context(), "session ended, redirecting to login", "path", r.URL.Path)
	if IsHTMX(r) {
		SetHXRedirect(w, LoginPath)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// renderDashboardPage renders a dashboard page with proper HTMX partial support.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data any) {
	// Handle full page requests first (early return) to reduce nesting
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	// For HTMX requests, render the content plus out-of-band header updates
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	activateNav(w, r.URL.Path)

	layout := extractLayoutInfo(data)

	// Include a <title> element so htmx updates document.title on partial swaps
	safeDocTitle := html.EscapeString(layout.Title)
	if _, err := w.Write([]byte(`<title>` + safeDocTitle + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}

	// Out-of-band update for the header title
	safeTitle := html.EscapeString(layout.PageTitle)
	if _, err := w.Write([]byte(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` + safeTitle + `</h1>`)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}

	if err := h.T.RenderNamed(w, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
		return
	}
}

// renderForm renders a signed-out form page (login, register). Forms answer
// 200 even on validation errors so htmx swaps the re-rendered form in.
func (h *UIHandlers) renderForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.RenderFull(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "form render")
	}
}

func markPageError(data map[string]any, err error) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = apperrors.UserMessage(err, "An unexpected error occurred. Please try again.")
}

func layoutFromProvider(data any) *viewmodel.Layout {
	provider, ok := data.(viewmodel.LayoutProvider)
	if !ok {
		return nil
	}
	return provider.LayoutData()
}

func layoutFromMap(data any) viewmodel.Layout {
	m, mapOK := data.(map[string]any)
	if !mapOK {
		return viewmodel.Layout{}
	}

	layout := viewmodel.Layout{}
	if v, titleOK := m["Title"].(string); titleOK {
		layout.Title = v
	}
	if v, pageTitleOK := m["PageTitle"].(string); pageTitleOK {
		layout.PageTitle = v
	}
	if v, currentPageOK := m["CurrentPage"].(string); currentPageOK {
		layout.CurrentPage = v
	}
	return layout
}

func extractLayoutInfo(data any) viewmodel.Layout {
	if layout := layoutFromProvider(data); layout != nil {
		return *layout
	}
	if layout, ok := data.(viewmodel.Layout); ok {
		return layout
	}
	return layoutFromMap(data)
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	// In dev mode, show detailed error in the response
	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		errHTML := html.EscapeString(err.Error())
		pathHTML := html.EscapeString(r.URL.Path)
		contextHTML := html.EscapeString(context)
		if _, writeErr := w.Write([]byte(`
			<div style="padding: 20px; background: #fee; border: 2px solid #c33; border-radius: 4px; margin: 20px; font-family: monospace;">
				<h2 style="color: #c33; margin-top: 0;">Template Rendering Error</h2>
				<p><strong>Context:</strong> ` + contextHTML + `</p>
				<p><strong>Path:</strong> ` + pathHTML + `</p>
				<p><strong>Error:</strong></p>
				<pre style="background: #fff; padding: 10px; border: 1px solid #ccc; overflow-x: auto;">` + errHTML + `</pre>
			</div>
		`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	// In production, show generic error
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// NotFound renders the error page with a 404.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	data := basePageData(r, PageMeta{Title: "Not Found", PageTitle: "Not Found"})
	data["StatusCode"] = http.StatusNotFound
	data["ErrorMessage"] = "The page you are looking for does not exist."
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("failed to render not found page", "error", err)
	}
}
