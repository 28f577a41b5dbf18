package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopdash/shopdash-ui/internal/adapters/cookiestore"
	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	"github.com/shopdash/shopdash-ui/internal/ports"
	"github.com/shopdash/shopdash-ui/internal/testutil"
)

// TestCSRFToken is the double-submit token TestServer.Do attaches to every request.
const TestCSRFToken = "test-csrf-token"

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
// This centralizes the common pattern of template guard checks in tests.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// SkipIfNoTemplates checks if templates are available and skips the test if not.
func SkipIfNoTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// CreateUIHandlersForTest creates UIHandlers with a template renderer for testing.
// Returns nil if templates are not available and skips the test.
func CreateUIHandlersForTest(t *testing.T) *UIHandlers {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return nil
	}
	return &UIHandlers{T: tr, Logger: discardLogger()}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestServer is the full BFF router wired to a stub dashboard API with the
// cookie credential store.
type TestServer struct {
	API     *testutil.APIStub
	Handler http.Handler
}

// NewTestServer builds the router against a fresh APIStub.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	SkipIfNoTemplates(t)

	stub := testutil.NewAPIStub(t)
	api, err := shopapi.NewClient(shopapi.Config{BaseURL: stub.URL(), Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new api client: %v", err)
	}
	handler, err := NewRouter(RouterServices{
		API: api,
		Stores: func(w http.ResponseWriter, r *http.Request) ports.CredentialStore {
			return cookiestore.New(cookiestore.Config{}, w, r)
		},
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS(StaticPathFromTest),
		Logger:     discardLogger(),
	})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	return &TestServer{API: stub, Handler: handler}
}

// StubProfile makes token a valid credential for user and tenant.
func (s *TestServer) StubProfile(token string, user domainauth.User, tenant domainauth.Tenant) {
	s.API.Handle(http.MethodGet, "/auth/profile", testutil.RequireBearer(token, func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, domainauth.Profile{User: &user, Tenant: &tenant})
	}))
}

// TestRequest describes one browser request against a TestServer.
type TestRequest struct {
	Method string
	Target string
	// Token is sent as the credential cookie when set.
	Token string
	// Form is sent url-encoded together with the CSRF field.
	Form   url.Values
	HTMX   bool
	Accept string
}

// Do runs req through the router and returns the recorded response.
func (s *TestServer) Do(t *testing.T, req TestRequest) *httptest.ResponseRecorder {
	t.Helper()
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Form != nil {
		form := url.Values{}
		for k, v := range req.Form {
			form[k] = v
		}
		form.Set(DefaultCSRFCookieName, TestCSRFToken)
		body = strings.NewReader(form.Encode())
	}

	r := httptest.NewRequest(method, req.Target, body)
	if req.Form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	accept := req.Accept
	if accept == "" {
		accept = "text/html,application/xhtml+xml"
	}
	r.Header.Set("Accept", accept)
	if req.HTMX {
		r.Header.Set("Hx-Request", "true")
	}
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: TestCSRFToken})
	if req.Token != "" {
		r.AddCookie(&http.Cookie{Name: cookiestore.DefaultName, Value: req.Token})
	}

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, r)
	return rec
}

// ResponseCookie returns the named Set-Cookie from rec, or nil.
func ResponseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
