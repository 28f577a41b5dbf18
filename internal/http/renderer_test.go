package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_EveryPageHasContent(t *testing.T) {
	tr := RequireTemplateRenderer(t)

	for page, name := range ContentTemplateMap() {
		t.Run(page, func(t *testing.T) {
			assert.NotNil(t, tr.current().Lookup(name), "missing template %s", name)
		})
	}
}

func TestTemplateRenderer_FullLoginPage(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	data := NewTemplateData(r, loginMeta()).Build()

	rec := httptest.NewRecorder()
	require.NoError(t, tr.RenderFull(rec, r, data))

	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, ContainsAll(rec.Body.String(), []string{"<!DOCTYPE html>", "Sign in to your account", "signed-out"}))
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	tr := RequireTemplateRenderer(t)

	rec := httptest.NewRecorder()
	err := tr.RenderNamed(rec, "no-such-template", nil)

	require.Error(t, err)
	assert.Empty(t, rec.Body.String(), "nothing is written on failure")
}

func TestNewTemplateRenderer_RequiresFS(t *testing.T) {
	_, err := NewTemplateRenderer(TemplateRendererConfig{})
	require.Error(t, err)
}

func TestUIHandlers_NotFound(t *testing.T) {
	h := CreateUIHandlersForTest(t)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, ContainsAll(rec.Body.String(), []string{"404", "does not exist", `href="/login"`}))
}

func TestContentTemplateFor_FallsBack(t *testing.T) {
	assert.Equal(t, "orders-content", ContentTemplateFor(PageOrders))
	assert.Equal(t, "dashboard-content", ContentTemplateFor("unknown"))
}
