package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across UI handlers and template mapping.
const (
	// Signed-out pages.
	PageLogin    = "login"
	PageRegister = "register"

	// Dashboard pages.
	PageDashboard = "dashboard"
	PageCustomers = "customers"
	PageProducts  = "products"
	PageOrders    = "orders"
	PageSync      = "sync"
	PageSyncLog   = "sync-log"
	PageSettings  = "settings"
)

// Template paths used for loading templates in tests and production.
const (
	// Template directory paths.
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
	StaticPathFromRoot   = "frontend/static"
	StaticPathFromTest   = "../../frontend/static"
)

const (
	// syncHistoryLimit is how many runs the sync page lists.
	syncHistoryLimit = 20
	// minPasswordLength mirrors the API's registration rule.
	minPasswordLength = 6
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageLogin:     "login-content",
	PageRegister:  "register-content",
	PageDashboard: "dashboard-content",
	PageCustomers: "customers-content",
	PageProducts:  "products-content",
	PageOrders:    "orders-content",
	PageSync:      "sync-content",
	PageSyncLog:   "sync-log-content",
	PageSettings:  "settings-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
