package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	"github.com/shopdash/shopdash-ui/internal/domain/model"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/http/validation"
	"github.com/shopdash/shopdash-ui/internal/service"
)

const (
	settingsActionTenant  = "settings"
	settingsActionShopify = "shopify-config"
	settingsActionTest    = "test-shopify"

	settingsUpdated     = "Settings updated successfully!"
	settingsUnreachable = "Error updating settings. Please try again."
)

func settingsMeta() PageMeta {
	return PageMeta{Title: "Settings – " + appTitle, PageTitle: "Settings", CurrentPage: PageSettings}
}

// Settings renders tenant settings and the Shopify connection form.
// GET /dashboard/settings.
func (h *UIHandlers) Settings(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: settingsMeta(), Fetch: loadSettingsPage})
}

// SettingsAction applies one of the settings forms and re-renders the page.
// POST /dashboard/settings (action=settings | shopify-config | test-shopify).
func (h *UIHandlers) SettingsAction(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: settingsMeta(),
		Fetch: func(ctx context.Context, api *shopapi.Client, data map[string]any) error {
			outcome := h.runSettingsAction(ctx, api, r)
			templateDataFrom(data).
				WithFieldErrors(outcome.fieldErrs).
				WithFlash(outcome.message, outcome.ok)
			if !outcome.ok && isTenantSettingsAction(r) {
				// Keep the user's input on a rejected edit.
				data["Form"] = map[string]string{
					"Name":          r.PostFormValue("name"),
					"ShopifyDomain": r.PostFormValue("shopify_domain"),
				}
			}
			return loadSettingsPage(ctx, api, data)
		},
	})
}

type settingsOutcome struct {
	message   string
	ok        bool
	fieldErrs map[string]string
}

func (h *UIHandlers) runSettingsAction(ctx context.Context, api *shopapi.Client, r *http.Request) settingsOutcome {
	switch r.PostFormValue("action") {
	case settingsActionTenant, "":
		req := model.TenantSettingsRequest{
			Name:          r.PostFormValue("name"),
			ShopifyDomain: r.PostFormValue("shopify_domain"),
			IsActive:      r.PostFormValue("is_active") != "",
		}
		req.Normalize()
		fv := validation.New().
			Validate("name", req.Name, validation.Required("Store name", 100)).
			Validate("shopify_domain", req.ShopifyDomain, validation.ShopifyDomain("Shopify domain"))
		if !fv.Valid() {
			return settingsOutcome{message: errMsgFixBelow, fieldErrs: fv.Errors()}
		}
		if _, err := api.UpdateTenantSettings(ctx, req); err != nil {
			h.logger().WarnContext(ctx, "update tenant settings failed", "error", err)
			return settingsOutcome{message: settingsFailureMessage(err)}
		}
		return settingsOutcome{message: settingsUpdated, ok: true}

	case settingsActionShopify:
		req := model.ShopifyConfigRequest{
			ShopifyAccessToken: strings.TrimSpace(r.PostFormValue("shopify_access_token")),
			APIKey:             strings.TrimSpace(r.PostFormValue("api_key")),
		}
		fv := validation.New().
			Validate("shopify_access_token", req.ShopifyAccessToken, validation.Required("Access token", 512)).
			Validate("api_key", req.APIKey, validation.Optional("API key", 512))
		if !fv.Valid() {
			return settingsOutcome{message: errMsgFixBelow, fieldErrs: fv.Errors()}
		}
		if _, err := api.UpdateShopifyConfig(ctx, req); err != nil {
			h.logger().WarnContext(ctx, "update shopify config failed", "error", err)
			return settingsOutcome{message: settingsFailureMessage(err)}
		}
		return settingsOutcome{message: settingsUpdated, ok: true}

	case settingsActionTest:
		res, err := api.TestShopifyConnection(ctx)
		if err != nil {
			return settingsOutcome{message: settingsFailureMessage(err)}
		}
		if !res.Success {
			return settingsOutcome{message: "Error: " + fallbackMessage(res.Message, "connection test failed")}
		}
		msg := "Connection successful!"
		if res.ShopName != "" {
			msg = "Connected to " + res.ShopName + "."
		}
		return settingsOutcome{message: msg, ok: true}

	default:
		return settingsOutcome{message: "Unknown settings action."}
	}
}

func isTenantSettingsAction(r *http.Request) bool {
	action := r.PostFormValue("action")
	return action == settingsActionTenant || action == ""
}

func settingsFailureMessage(err error) string {
	if apperrors.IsTransport(err) {
		return settingsUnreachable
	}
	return "Error: " + apperrors.UserMessage(err, "unexpected error")
}

func fallbackMessage(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}

func loadSettingsPage(ctx context.Context, api *shopapi.Client, data map[string]any) error {
	tenant := service.NewResource[domainauth.Tenant]("tenant").Load(ctx, api.CurrentTenant)
	if tenant.Unauthenticated() {
		return tenant.Err
	}
	data["CurrentTenant"] = tenant
	if _, ok := data["Form"]; !ok && tenant.Loaded() {
		data["Form"] = map[string]string{
			"Name":          tenant.Data.Name,
			"ShopifyDomain": tenant.Data.ShopifyDomain,
		}
	}
	return nil
}
