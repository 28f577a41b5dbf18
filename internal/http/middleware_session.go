package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	"github.com/shopdash/shopdash-ui/internal/ports"
	"github.com/shopdash/shopdash-ui/internal/service"
)

// LoginPath is the entry point forced navigations land on.
const LoginPath = "/login"

// CredentialStoreFactory binds a credential store to one browser request.
type CredentialStoreFactory func(w http.ResponseWriter, r *http.Request) ports.CredentialStore

// SessionMiddlewareConfig groups dependencies for SessionMiddleware.
type SessionMiddlewareConfig struct {
	// API is the template client; each request works on its own fork.
	API     *shopapi.Client
	Stores  CredentialStoreFactory
	Session service.SessionConfig
}

// SessionMiddleware builds the browser's Session for every request, rehydrates
// it from the credential store and puts it in the request context. The
// Session and its API client live only for the request, so no token is
// shared between browsers.
func SessionMiddleware(cfg SessionMiddlewareConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			api := cfg.API.Fork()
			sess := service.NewSession(service.SessionOptions{
				API:    api,
				Store:  cfg.Stores(w, r),
				Config: cfg.Session,
			})
			sess.Initialize(r.Context())

			ctx := SetSessionInContext(r.Context(), sess, api)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthBrowser gates a handler on Session.IsAuthenticated.
// For JSON requests: returns a 401 JSON response.
// For browser requests: redirects to the login page with a redirect_uri.
func RequireAuthBrowser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsAuthenticated(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}
			if IsBrowserRequest(r) && !wantsJSON(r) {
				redirectToLogin(w, r)
				return
			}
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "authentication_required",
				Err:     errors.New("authentication required"),
			})
		})
	}
}

// RedirectIfAuthenticated sends signed-in browsers away from the login and
// register forms.
func RedirectIfAuthenticated(target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && IsAuthenticated(r.Context()) {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// redirectToLogin redirects browser requests to the login page with the
// current URL as redirect_uri. htmx requests get an Hx-Redirect instead of a
// 3xx so the whole page navigates rather than swapping the login form in.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	loginURL := loginURLFor(redirectPathForRequest(r))
	if IsHTMX(r) {
		SetHXRedirect(w, loginURL)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

func loginURLFor(redirectPath string) string {
	if redirectPath == "" || redirectPath == "/" {
		return LoginPath
	}
	u := url.URL{Path: LoginPath}
	q := url.Values{}
	q.Set("redirect_uri", redirectPath)
	u.RawQuery = q.Encode()
	return u.String()
}

func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
		if referer := safeRedirectFromURL(r.Header.Get("Referer")); referer != "" {
			return referer
		}
	}
	if r.Method != http.MethodGet {
		// A replayed POST after login would resubmit the form.
		return safeRedirectFromURL(r.Header.Get("Referer"))
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return ""
	}

	// For absolute URLs, use just the path/query portion to keep redirects within the app.
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}

	return safeRedirectPath(raw)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") ||
		strings.HasPrefix(candidate, "//") || strings.Contains(candidate, "\\") {
		return "/"
	}
	return candidate
}
