package httpx

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	shopdash "github.com/shopdash/shopdash-ui"
	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	"github.com/shopdash/shopdash-ui/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	// API is the template client; SessionMiddleware forks it per request.
	API       *shopapi.Client
	Stores    CredentialStoreFactory
	Dashboard *service.DashboardService
	Session   service.SessionConfig

	CookieDomain string
	CookieSecure bool

	// TemplateFS and StaticFS override the embedded assets (tests).
	TemplateFS fs.FS
	StaticFS   fs.FS

	IsDev  bool         // Development mode flag for hot reloading, etc.
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates the BFF router. Probes and static assets are served
// without a session; everything else runs behind CSRF protection and the
// per-request session.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.API == nil {
		return nil, fmt.Errorf("router: API client is required")
	}
	if services.Stores == nil {
		return nil, fmt.Errorf("router: credential store factory is required")
	}

	uiHandlers, err := setupUIHandlers(services)
	if err != nil {
		return nil, err
	}
	authHandlers := &AuthHandlers{Logger: services.Logger}

	app := http.NewServeMux()
	registerAuthRoutes(app, authHandlers, uiHandlers)
	registerUIRoutes(app, uiHandlers)

	sessionCfg := services.Session
	if sessionCfg.Logger == nil {
		sessionCfg.Logger = services.Logger
	}
	var appHandler http.Handler = app
	appHandler = SessionMiddleware(SessionMiddlewareConfig{
		API:     services.API,
		Stores:  services.Stores,
		Session: sessionCfg,
	})(appHandler)
	appHandler = CSRFProtection(CSRFConfig{
		CookieDomain: services.CookieDomain,
		Secure:       services.CookieSecure,
	})(appHandler)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticHandler(services))
	mux.Handle("/", appHandler)

	return BrowserDetection()(mux), nil
}

func registerAuthRoutes(mux *http.ServeMux, auth *AuthHandlers, ui *UIHandlers) {
	signedOut := RedirectIfAuthenticated(defaultAfterLogin)

	mux.Handle("GET /login", signedOut(http.HandlerFunc(ui.LoginPage)))
	mux.Handle("POST /login", http.HandlerFunc(ui.LoginSubmit))
	mux.Handle("GET /register", signedOut(http.HandlerFunc(ui.RegisterPage)))
	mux.Handle("POST /register", http.HandlerFunc(ui.RegisterSubmit))
	mux.HandleFunc("POST /logout", auth.Logout)
	mux.HandleFunc("GET /auth/status", auth.Status)
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers) {
	requireAuth := RequireAuthBrowser()
	protect := func(fn http.HandlerFunc) http.Handler { return requireAuth(fn) }

	mux.HandleFunc("GET /{$}", h.Root)
	mux.Handle("GET /dashboard", protect(h.Dashboard))
	mux.Handle("GET /dashboard/customers", protect(h.Customers))
	mux.Handle("GET /dashboard/products", protect(h.Products))
	mux.Handle("GET /dashboard/orders", protect(h.Orders))
	mux.Handle("GET /dashboard/sync", protect(h.Sync))
	mux.Handle("POST /dashboard/sync", protect(h.SyncAction))
	mux.Handle("GET /dashboard/sync/logs/{id}", protect(h.SyncLog))
	mux.Handle("GET /dashboard/settings", protect(h.Settings))
	mux.Handle("POST /dashboard/settings", protect(h.SettingsAction))

	// Everything else is a 404 page rather than the mux's plain text.
	mux.HandleFunc("GET /", h.NotFound)
}

// templateFS picks the template source: an explicit override, the disk in
// dev mode so edits show up without a rebuild, or the embedded copy.
func templateFS(services RouterServices) (fs.FS, error) {
	if services.TemplateFS != nil {
		return services.TemplateFS, nil
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot), nil
	}
	sub, err := fs.Sub(shopdash.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return sub, nil
}

// setupUIHandlers creates UI handlers with the template renderer.
func setupUIHandlers(services RouterServices) (*UIHandlers, error) {
	tfs, err := templateFS(services)
	if err != nil {
		return nil, err
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: tfs,
		DevMode:    services.IsDev,
		Logger:     services.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	dashboard := services.Dashboard
	if dashboard == nil {
		dashboard = service.NewDashboardService(service.DashboardServiceOptions{Logger: services.Logger})
	}
	return &UIHandlers{
		T:            tr,
		DashboardSvc: dashboard,
		IsDev:        services.IsDev,
		Logger:       services.Logger,
	}, nil
}

// staticHandler serves /static/* from disk in dev mode and from the embedded
// FS otherwise.
func staticHandler(services RouterServices) http.Handler {
	var fsys http.FileSystem
	switch {
	case services.StaticFS != nil:
		fsys = http.FS(services.StaticFS)
	case services.IsDev:
		fsys = http.Dir(StaticPathFromRoot)
	default:
		sub, err := fs.Sub(shopdash.StaticFS, StaticPathFromRoot)
		if err != nil {
			if services.Logger != nil {
				services.Logger.Error("failed to open embedded static assets", "error", err)
			}
			fsys = http.Dir(StaticPathFromRoot)
		} else {
			fsys = http.FS(sub)
		}
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(fsys)), services.IsDev)
}

// staticWithCacheHeaders wraps a static file handler to add cache headers.
func staticWithCacheHeaders(handler http.Handler, isDev bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}
