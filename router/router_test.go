package router_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swc/config"
	"swc/pkg/testutil"
)

func TestHealth(t *testing.T) {
	env := testutil.Setup(t)

	w := testutil.DoRequest(env.Echo, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := testutil.ParseResponse(w)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get(echo.HeaderXRequestID))
}

func TestLandingPage(t *testing.T) {
	env := testutil.Setup(t)
	w := testutil.DoRequest(env.Echo, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get(echo.HeaderContentType), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "Welcome to SWC Platform")
	assert.Regexp(t, `const healthURL = "\\?/health";`, body)
	assert.Contains(t, body, "<li>Echo for the HTTP API</li>")

	env = testutil.Setup(t, func(cfg *config.AppConfig) { cfg.APIBaseURL = "http://api.local:3001/" })
	w = testutil.DoRequest(env.Echo, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Regexp(t, `const healthURL = "http:\\?/\\?/api\.local:3001\\?/health";`, w.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := testutil.Setup(t)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	w := testutil.Serve(env.Echo, req)
	assert.Equal(t, "req-123", w.Header().Get(echo.HeaderXRequestID))
}

func TestTechniqueCRUD(t *testing.T) {
	env := testutil.Setup(t)
	e := env.Echo

	w := testutil.DoRequest(e, http.MethodPost, "/api/v1/techniques", map[string]any{
		"code": "TECH-001", "name": "Half Moon", "category": "Water Harvesting",
		"technical_specs": map[string]any{"diameter": 2},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := testutil.ParseResponse(w)
	id := uint(created["id"].(float64))
	assert.Equal(t, "TECH-001", created["code"])

	w = testutil.DoRequest(e, http.MethodPost, "/api/v1/techniques", map[string]any{"code": "TECH-001", "name": "Again"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = testutil.DoRequest(e, http.MethodPost, "/api/v1/techniques", map[string]any{"code": "TECH-002"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := testutil.ParseResponse(w)["details"].([]any)
	assert.Equal(t, "name", details[0].(map[string]any)["field"])

	w = testutil.DoRequest(e, http.MethodPost, "/api/v1/techniques", `{"code":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(e, http.MethodPatch, fmt.Sprintf("/api/v1/techniques/%d", id), map[string]any{"name": "Half Moon Pits"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Half Moon Pits", testutil.ParseResponse(w)["name"])

	w = testutil.DoRequest(e, http.MethodGet, "/api/v1/techniques?category=Water%20Harvesting", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.ParseList(w), 1)

	w = testutil.DoRequest(e, http.MethodGet, "/api/v1/techniques/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(e, http.MethodDelete, fmt.Sprintf("/api/v1/techniques/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = testutil.DoRequest(e, http.MethodGet, fmt.Sprintf("/api/v1/techniques/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDesignFlowOverHTTP(t *testing.T) {
	env := testutil.Setup(t)
	e := env.Echo
	c := testutil.SeedChain(t, env.App)

	w := testutil.DoRequest(e, http.MethodPost, "/api/v1/sites/999/designs", map[string]any{"code": "DES-X", "name": "X"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = testutil.DoRequest(e, http.MethodGet, "/api/v1/sites/999/designs", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/designs/%d/layers", c.Design.ID), map[string]any{
		"template_id": c.Template.ID,
		"name":        "Bad",
		"parameters":  map[string]any{"diameter": 9, "depth": 0.5, "spacing": 1, "numberOfPits": 4},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "parameters.diameter")

	w = testutil.DoRequest(e, http.MethodGet, fmt.Sprintf("/api/v1/designs/%d", c.Design.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.ParseResponse(w)["layers"], 1)

	w = testutil.DoRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/boqs/%d/items", c.BOQ.ID), map[string]any{
		"design_layer_id": c.Layer.ID, "material_id": c.Material.ID, "quantity": 105,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 5250, testutil.ParseResponse(w)["total_cost"])

	w = testutil.DoRequest(e, http.MethodPost, fmt.Sprintf("/api/v1/boqs/%d/cost-records", c.BOQ.ID), map[string]any{
		"amount": 3000, "date": "2024-01-10", "category": "labor",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.DoRequest(e, http.MethodGet, fmt.Sprintf("/api/v1/boqs/%d/summary", c.BOQ.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := testutil.ParseResponse(w)
	assert.EqualValues(t, 2250, sum["variance"])
	assert.EqualValues(t, 3000, sum["by_category"].(map[string]any)["labor"])

	w = testutil.DoRequest(e, http.MethodGet, fmt.Sprintf("/api/v1/boqs/%d/export", c.BOQ.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get(echo.HeaderContentDisposition), ".xlsx")
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"), "xlsx is a zip archive")

	w = testutil.DoRequest(e, http.MethodDelete, fmt.Sprintf("/api/v1/sites/%d", c.Site.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSiteValidationAndMetrics(t *testing.T) {
	env := testutil.Setup(t)
	e := env.Echo

	w := testutil.DoRequest(e, http.MethodPost, "/api/v1/sites", map[string]any{"name": "Ridge", "slope_class": "CLIFF"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "slope_class")

	w = testutil.DoRequest(e, http.MethodPost, "/api/v1/sites", map[string]any{"name": "Ridge", "slope_class": "STEEP"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	site := testutil.ParseResponse(w)
	sitePath := fmt.Sprintf("/api/v1/sites/%d", uint(site["id"].(float64)))

	w = testutil.DoRequest(e, http.MethodPost, sitePath+"/metrics", map[string]any{
		"name": "Soil Moisture Content", "unit": "%", "value": 35.5, "measured_date": "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.DoRequest(e, http.MethodGet, sitePath+"/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.ParseList(w), 1)

	w = testutil.DoRequest(e, http.MethodPost, sitePath+"/techniques", map[string]any{"technique_id": 77})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUnknownRouteAndMetricsEndpoint(t *testing.T) {
	env := testutil.Setup(t)

	w := testutil.DoRequest(env.Echo, http.MethodGet, "/api/v1/nowhere", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, testutil.ParseResponse(w), "error")

	testutil.DoRequest(env.Echo, http.MethodGet, "/health", nil)
	w = testutil.DoRequest(env.Echo, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `swc_http_requests_total{method="GET",route="/health",status="200"}`)
}
