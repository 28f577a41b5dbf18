package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/http/validation"
)

const (
	appTitle            = "Xeno – Shopify Data Insights"
	defaultAfterLogin   = "/dashboard"
	loginFailedFallback = "Login failed"
	registerFallback    = "Registration failed"
)

func loginMeta() PageMeta {
	return PageMeta{Title: appTitle, PageTitle: "Sign in", CurrentPage: PageLogin}
}

func registerMeta() PageMeta {
	return PageMeta{Title: "Create account – " + appTitle, PageTitle: "Create your account", CurrentPage: PageRegister}
}

// Root sends signed-in browsers to the dashboard and everyone else to the
// login form.
// GET /.
func (h *UIHandlers) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	if IsAuthenticated(r.Context()) {
		http.Redirect(w, r, defaultAfterLogin, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// LoginPage renders the login form.
// GET /login.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, loginMeta()).
		With("RedirectURI", r.URL.Query().Get("redirect_uri")).
		Build()
	h.renderForm(w, r, data)
}

// LoginSubmit signs the browser in. Failures re-render the form with the
// server's message so the user stays on the page.
// POST /login.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form submission.", nil)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	fv := validation.New().
		Validate("email", email, validation.Email("Email")).
		Validate("password", password, validation.Required("Password", 256))
	if !fv.Valid() {
		h.renderLoginError(w, r, errMsgFixBelow, fv.Errors())
		return
	}

	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		h.renderLoginError(w, r, loginFailedFallback, nil)
		return
	}
	if err := sess.Login(r.Context(), email, password); err != nil {
		h.logger().InfoContext(r.Context(), "login rejected", "error", err)
		h.renderLoginError(w, r, apperrors.UserMessage(err, loginFailedFallback), nil)
		return
	}

	h.redirectAfterAuth(w, r, r.PostFormValue("redirect_uri"))
}

func (h *UIHandlers) renderLoginError(w http.ResponseWriter, r *http.Request, msg string, fieldErrs map[string]string) {
	data := NewTemplateData(r, loginMeta()).
		WithError(msg).
		WithFieldErrors(fieldErrs).
		With("Email", r.PostFormValue("email")).
		With("RedirectURI", r.PostFormValue("redirect_uri")).
		Build()
	h.renderForm(w, r, data)
}

// RegisterPage renders the sign-up form.
// GET /register.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, NewTemplateData(r, registerMeta()).Build())
}

// RegisterSubmit creates the account and its tenant, then signs in.
// POST /register.
func (h *UIHandlers) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "Invalid form submission.", nil)
		return
	}
	in := domainauth.RegisterInput{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		Email:         strings.TrimSpace(r.PostFormValue("email")),
		Password:      r.PostFormValue("password"),
		TenantName:    strings.TrimSpace(r.PostFormValue("tenant_name")),
		ShopifyDomain: strings.TrimSpace(r.PostFormValue("shopify_domain")),
	}

	fv := validation.New().
		Validate("name", in.Name, validation.Required("Name", 100)).
		Validate("email", in.Email, validation.Email("Email")).
		Validate("password", in.Password, validation.MinLength("Password", minPasswordLength)).
		Validate("confirm_password", r.PostFormValue("confirm_password"),
			validation.Matches("Passwords do not match.", in.Password)).
		Validate("tenant_name", in.TenantName, validation.Required("Store name", 100)).
		Validate("shopify_domain", in.ShopifyDomain, validation.ShopifyDomain("Shopify domain"))
	if !fv.Valid() {
		h.renderRegisterError(w, r, errMsgFixBelow, fv.Errors())
		return
	}

	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		h.renderRegisterError(w, r, registerFallback, nil)
		return
	}
	if err := sess.Register(r.Context(), in); err != nil {
		h.logger().InfoContext(r.Context(), "registration rejected", "error", err)
		h.renderRegisterError(w, r, apperrors.UserMessage(err, registerFallback), nil)
		return
	}

	h.redirectAfterAuth(w, r, "")
}

func (h *UIHandlers) renderRegisterError(w http.ResponseWriter, r *http.Request, msg string, fieldErrs map[string]string) {
	data := NewTemplateData(r, registerMeta()).
		WithError(msg).
		WithFieldErrors(fieldErrs).
		With("Form", map[string]string{
			"Name":          r.PostFormValue("name"),
			"Email":         r.PostFormValue("email"),
			"TenantName":    r.PostFormValue("tenant_name"),
			"ShopifyDomain": r.PostFormValue("shopify_domain"),
		}).
		Build()
	h.renderForm(w, r, data)
}

// redirectAfterAuth lands a freshly signed-in browser on its original
// destination. The credential cookie is already on the response.
func (h *UIHandlers) redirectAfterAuth(w http.ResponseWriter, r *http.Request, requested string) {
	target := safeRedirectPath(requested)
	if target == "/" || strings.HasPrefix(target, LoginPath) {
		target = defaultAfterLogin
	}
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
