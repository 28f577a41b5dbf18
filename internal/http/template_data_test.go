package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateDataBuilder(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard/settings", nil)
	meta := PageMeta{Title: "Settings", PageTitle: "Store settings", CurrentPage: PageSettings}

	data := NewTemplateData(r, meta).
		WithError("Store name is required.").
		WithFieldErrors(map[string]string{"tenant_name": "Store name is required."}).
		WithFlash("", true).
		With("Form", map[string]string{"tenant_name": ""}).
		Build()

	assert.Equal(t, "Settings", data["Title"])
	assert.Equal(t, PageSettings, data["CurrentPage"])
	assert.Equal(t, false, data["IsAuthenticated"])
	assert.Equal(t, true, data["Error"])
	assert.Equal(t, "Store name is required.", data["ErrorMessage"])
	assert.Contains(t, data, "Errors")
	assert.Contains(t, data, "Form")
	assert.NotContains(t, data, "Flash", "empty flash is dropped")
	assert.NotContains(t, data, "User")
}

func TestTemplateDataBuilder_FlashAndEmptyErrors(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard/sync", nil)
	data := NewTemplateData(r, PageMeta{CurrentPage: PageSync}).
		WithFieldErrors(nil).
		WithFlash("Sync cancelled.", true).
		Build()

	assert.NotContains(t, data, "Errors")
	assert.Equal(t, "Sync cancelled.", data["Flash"])
	assert.Equal(t, true, data["FlashSuccess"])
}

func TestTemplateDataFrom_WritesIntoFetchMap(t *testing.T) {
	data := map[string]any{"CurrentPage": PageSettings}
	templateDataFrom(data).
		WithFieldErrors(map[string]string{"name": "Store name is required."}).
		WithFlash("Error: Tenant not found", false)

	assert.Equal(t, "Error: Tenant not found", data["Flash"])
	assert.Equal(t, false, data["FlashSuccess"])
	assert.Equal(t, map[string]string{"name": "Store name is required."}, data["Errors"])
	assert.Equal(t, PageSettings, data["CurrentPage"])
}
