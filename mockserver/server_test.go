package mockserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/config"
	"backoffice/mockserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    map[string]int    `json:"meta"`
	Errors  map[string]string `json:"errors"`
}

type harness struct {
	t      *testing.T
	srv    *mockserver.Server
	ts     *httptest.Server
	token  string
	config *config.Config
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.App.Env = "test"
	cfg.Server.RateLimit.Enabled = false
	return cfg
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	srv := mockserver.New(cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &harness{t: t, srv: srv, ts: ts, token: srv.Data().IssueToken("+919800000001"), config: cfg}
}

func (h *harness) do(method, path string, body any) (int, envelope) {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.ts.URL+path, reader)
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealth(t *testing.T) {
	h := newHarness(t, nil)
	resp, err := http.Get(h.ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body mockserver.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, 3, body.Records["categories"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	h := newHarness(t, nil)
	h.token = ""
	status, env := h.do(http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Missing bearer token", env.Message)

	h.token = "forged"
	status, _ = h.do(http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOTPLogin(t *testing.T) {
	h := newHarness(t, nil)
	h.token = ""

	status, env := h.do(http.MethodPost, "/auth/verify", map[string]string{"phone_number": "+919811111111", "otp_code": "1234"})
	assert.Equal(t, http.StatusUnprocessableEntity, status, "verify before otp: %s", env.Message)

	status, _ = h.do(http.MethodPost, "/auth/otp", map[string]string{"phone_number": "+919811111111"})
	require.Equal(t, http.StatusOK, status)

	status, env = h.do(http.MethodPost, "/auth/verify", map[string]string{"phone_number": "+919811111111", "otp_code": "9999"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "otp_code")

	status, env = h.do(http.MethodPost, "/auth/verify", map[string]string{"phone_number": "+919811111111", "otp_code": "1234"})
	require.Equal(t, http.StatusOK, status)
	tokens := decode[map[string]string](t, env)
	require.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])

	h.token = tokens["access_token"]
	status, _ = h.do(http.MethodGet, "/api/users/all", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCategoriesSortAndPaginate(t *testing.T) {
	h := newHarness(t, nil)

	status, env := h.do(http.MethodGet, "/api/categories?page=1&limit=2&sort_by=priority&sort_order=DESC", nil)
	require.Equal(t, http.StatusOK, status)
	items := decode[[]map[string]any](t, env)
	require.Len(t, items, 2)
	assert.Equal(t, "Fruits", items[0]["name"])
	assert.Equal(t, "Vegetables", items[1]["name"])
	assert.Equal(t, map[string]int{"page": 1, "limit": 2, "totalItems": 3, "totalPages": 2}, env.Meta)

	_, env = h.do(http.MethodGet, "/api/categories?q=dai", nil)
	items = decode[[]map[string]any](t, env)
	require.Len(t, items, 1)
	assert.Equal(t, "Dairy", items[0]["name"])
}

func TestCategoryValidationAndDelete(t *testing.T) {
	h := newHarness(t, nil)

	status, env := h.do(http.MethodPost, "/api/categories", map[string]any{"name": "", "image": "not a url"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "name")
	assert.Contains(t, env.Errors, "image")

	status, env = h.do(http.MethodPost, "/api/categories", map[string]any{"name": "Bakery", "image": "https://cdn.example.com/b.jpg"})
	require.Equal(t, http.StatusCreated, status)
	created := decode[map[string]any](t, env)

	_, env = h.do(http.MethodGet, "/api/categories?limit=1", nil)
	first := decode[[]map[string]any](t, env)
	assert.Equal(t, created["id"], first[0]["id"], "newest first")

	// Fruits (id 1) still has sub-categories.
	status, _ = h.do(http.MethodDelete, "/api/categories/1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, env = h.do(http.MethodGet, "/api/categories/999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "category 999 not found", env.Message)
}

func TestSubCategoriesByParents(t *testing.T) {
	h := newHarness(t, nil)

	status, env := h.do(http.MethodGet, "/api/sub-categories?parent_ids=1,3", nil)
	require.Equal(t, http.StatusOK, status)
	items := decode[[]map[string]any](t, env)
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it["name"].(string))
	}
	assert.ElementsMatch(t, []string{"milk", "citrus", "apples"}, names)

	status, _ = h.do(http.MethodGet, "/api/sub-categories?parent_ids=x", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOrderStatusMachine(t *testing.T) {
	h := newHarness(t, nil)

	status, env := h.do(http.MethodGet, "/api/orders/all?status=pending", nil)
	require.Equal(t, http.StatusOK, status)
	orders := decode[[]map[string]any](t, env)
	require.Len(t, orders, 1)
	id := int64(orders[0]["id"].(float64))

	path := "/api/orders/" + jsonNumber(id) + "/status"
	status, env = h.do(http.MethodPatch, path, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "cannot move order from pending to delivered", env.Message)

	status, env = h.do(http.MethodPatch, path, map[string]string{"status": "accepted", "comment": "ok"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "accepted", decode[map[string]any](t, env)["status"])

	_, env = h.do(http.MethodGet, "/api/orders/"+jsonNumber(id), nil)
	detail := decode[map[string]any](t, env)
	histories := detail["order_histories"].([]any)
	last := histories[len(histories)-1].(map[string]any)
	assert.Equal(t, "accepted", last["status"])
	assert.Equal(t, "ok", last["comment"])

	status, _ = h.do(http.MethodGet, "/api/orders/all?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOrderFilters(t *testing.T) {
	h := newHarness(t, nil)
	_, env := h.do(http.MethodGet, "/api/orders/all?order_number=ORD-1002", nil)
	orders := decode[[]map[string]any](t, env)
	require.Len(t, orders, 1)
	assert.Equal(t, "accepted", orders[0]["status"])

	_, env = h.do(http.MethodGet, "/api/orders/all?phone_number=%2B919800000001", nil)
	assert.Equal(t, 2, env.Meta["totalItems"])
}

func TestCouponNormalizationAndUniqueness(t *testing.T) {
	h := newHarness(t, nil)
	body := map[string]any{
		"offer_code":     "FLAT20",
		"discount_type":  "fixed",
		"discount_value": 20,
		"start_date":     "2026-01-01T00:00:00Z",
		"end_date":       "2026-02-01T00:00:00Z",
		"is_active":      true,
	}
	status, env := h.do(http.MethodPost, "/api/coupons", body)
	require.Equal(t, http.StatusCreated, status, env.Message)
	created := decode[map[string]any](t, env)
	assert.Equal(t, 20.0, created["min_discount_value"])
	assert.Equal(t, 20.0, created["max_discount_value"])

	body["offer_code"] = "flat50"
	status, env = h.do(http.MethodPost, "/api/coupons", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "offer_code")
}

func TestDefaultVariantCannotBeDeleted(t *testing.T) {
	h := newHarness(t, nil)
	_, env := h.do(http.MethodGet, "/api/products?q=apple", nil)
	products := decode[[]map[string]any](t, env)
	require.Len(t, products, 1)
	defaultID := int64(products[0]["default_variant_id"].(float64))

	status, env := h.do(http.MethodDelete, "/api/variants/"+jsonNumber(defaultID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Message, "default variant")
}

func TestConfigurationPatch(t *testing.T) {
	h := newHarness(t, nil)
	_, env := h.do(http.MethodGet, "/api/configurations", nil)
	current := decode[map[string]any](t, env)

	status, env := h.do(http.MethodPatch, "/api/configurations/"+jsonNumber(int64(current["id"].(float64))), map[string]any{"store_status": "closed"})
	require.Equal(t, http.StatusOK, status)
	updated := decode[map[string]any](t, env)
	assert.Equal(t, "closed", updated["store_status"])
	assert.Equal(t, current["name"], updated["name"])

	status, _ = h.do(http.MethodPatch, "/api/configurations/999", map[string]any{"store_status": "closed"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUploadAndServeAsset(t *testing.T) {
	h := newHarness(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "banner.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, h.ts.URL+"/assets/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+h.token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	url := decode[map[string]string](t, env)["url"]
	require.Contains(t, url, "/assets/files/")

	got, err := http.Get(url)
	require.NoError(t, err)
	defer got.Body.Close()
	content, _ := io.ReadAll(got.Body)
	assert.Equal(t, "png-bytes", string(content))
}

func TestCORSPreflight(t *testing.T) {
	h := newHarness(t, nil)
	req, err := http.NewRequest(http.MethodOptions, h.ts.URL+"/api/categories", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", resp.Header.Get("Access-Control-Max-Age"))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RateLimit.Enabled = true
	cfg.Server.RateLimit.Rate = 0.001
	cfg.Server.RateLimit.Burst = 2
	h := newHarness(t, cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		status, _ := h.do(http.MethodGet, "/api/users/all", nil)
		codes = append(codes, status)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
