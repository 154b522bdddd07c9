package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/viralforge/marketplace/internal/adapters/http"
	"github.com/viralforge/marketplace/internal/adapters/memory"
	"github.com/viralforge/marketplace/internal/adapters/security"
	"github.com/viralforge/marketplace/internal/application"
	"github.com/viralforge/marketplace/internal/reports"
)

type fixture struct {
	server   *httptest.Server
	verifier *security.JWTVerifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	service := application.NewService(application.Dependencies{
		Users:    store.Users(),
		Products: store.Products(),
		Orders:   store.Orders(),
		Outbox:   memory.NewOutboxRepository(),
	})
	reportsSvc := reports.NewService(reports.Config{Upstream: "in-process"}, service, nil)
	verifier, err := security.NewJWTVerifier("test-secret")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := httpadapter.NewHandler(logger, service, reportsSvc, verifier)
	server := httptest.NewServer(handler.NewRouter())
	t.Cleanup(server.Close)
	return &fixture{server: server, verifier: verifier}
}

func (f *fixture) token(t *testing.T, identity string) string {
	t.Helper()
	token, err := f.verifier.Sign(identity, time.Hour)
	if err != nil {
		t.Fatalf("sign token for %s: %v", identity, err)
	}
	return token
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) (int, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, f.server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, decoded
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	status, resp := f.do(t, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK || !resp.Success {
		t.Fatalf("healthz: %d %+v", status, resp)
	}
	status, resp = f.do(t, http.MethodGet, "/readyz", "", nil)
	if status != http.StatusOK || !resp.Success {
		t.Fatalf("readyz: %d %+v", status, resp)
	}
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	status, resp := f.do(t, http.MethodPost, "/v1/users", "", map[string]string{"role": "buyer"})
	if status != http.StatusUnauthorized || resp.Error == nil || resp.Error.Code != "UNAUTHORIZED" {
		t.Fatalf("expected 401 without token, got %d %+v", status, resp)
	}
	status, _ = f.do(t, http.MethodPost, "/v1/users", "not-a-token", map[string]string{"role": "buyer"})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", status)
	}
}

func TestMarketplaceFlow(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seller := f.token(t, "seller")
	buyer := f.token(t, "buyer")

	if status, _ := f.do(t, http.MethodPost, "/v1/users", seller, map[string]string{"role": "seller"}); status != http.StatusCreated {
		t.Fatalf("register seller: %d", status)
	}
	if status, _ := f.do(t, http.MethodPost, "/v1/users", buyer, map[string]string{"role": "buyer"}); status != http.StatusCreated {
		t.Fatalf("register buyer: %d", status)
	}
	status, resp := f.do(t, http.MethodPost, "/v1/users", seller, map[string]string{"role": "seller"})
	if status != http.StatusConflict || resp.Error.Code != "CONFLICT" {
		t.Fatalf("expected duplicate registration conflict, got %d %+v", status, resp)
	}

	status, resp = f.do(t, http.MethodPost, "/v1/products", seller, map[string]any{
		"name": "poster", "price": 1200, "quantity": 5, "category": "art",
	})
	if status != http.StatusCreated {
		t.Fatalf("publish: %d %+v", status, resp)
	}
	var published struct {
		ProductID uint32 `json:"product_id"`
	}
	if err := json.Unmarshal(resp.Data, &published); err != nil {
		t.Fatalf("decode publish response: %v", err)
	}

	if status, resp = f.do(t, http.MethodPost, "/v1/products", buyer, map[string]any{"name": "x", "quantity": 1}); status != http.StatusForbidden || resp.Error.Code != "FORBIDDEN" {
		t.Fatalf("expected buyer publish forbidden, got %d %+v", status, resp)
	}

	status, resp = f.do(t, http.MethodPost, "/v1/orders", buyer, map[string]any{
		"product_id": published.ProductID, "quantity": 3,
	})
	if status != http.StatusCreated {
		t.Fatalf("create order: %d %+v", status, resp)
	}
	var created struct {
		OrderID uint32 `json:"order_id"`
	}
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("decode order response: %v", err)
	}

	if status, resp = f.do(t, http.MethodPost, "/v1/orders", buyer, map[string]any{"product_id": published.ProductID, "quantity": 99}); status != http.StatusConflict {
		t.Fatalf("expected insufficient stock conflict, got %d %+v", status, resp)
	}

	orderPath := fmt.Sprintf("/v1/orders/%d", created.OrderID)
	if status, resp = f.do(t, http.MethodPost, orderPath+"/receive", buyer, nil); status != http.StatusConflict {
		t.Fatalf("expected receive before ship conflict, got %d %+v", status, resp)
	}
	if status, _ = f.do(t, http.MethodPost, orderPath+"/ship", seller, nil); status != http.StatusOK {
		t.Fatalf("ship: %d", status)
	}
	if status, _ = f.do(t, http.MethodPost, orderPath+"/receive", buyer, nil); status != http.StatusOK {
		t.Fatalf("receive: %d", status)
	}

	if status, _ = f.do(t, http.MethodPost, orderPath+"/rate-seller", buyer, map[string]any{"rating": 5}); status != http.StatusOK {
		t.Fatalf("rate seller: %d", status)
	}
	if status, resp = f.do(t, http.MethodPost, orderPath+"/rate-seller", buyer, map[string]any{"rating": 4}); status != http.StatusConflict {
		t.Fatalf("expected already rated conflict, got %d %+v", status, resp)
	}
	if status, resp = f.do(t, http.MethodPost, orderPath+"/rate-buyer", seller, map[string]any{"rating": 9}); status != http.StatusBadRequest {
		t.Fatalf("expected invalid rating 400, got %d %+v", status, resp)
	}
	if status, _ = f.do(t, http.MethodPost, orderPath+"/rate-buyer", seller, map[string]any{"rating": 4}); status != http.StatusOK {
		t.Fatalf("rate buyer: %d", status)
	}

	status, resp = f.do(t, http.MethodGet, "/v1/users/seller", "", nil)
	if status != http.StatusOK {
		t.Fatalf("get seller: %d", status)
	}
	var sellerView struct {
		SellerReputation uint32 `json:"seller_reputation"`
	}
	if err := json.Unmarshal(resp.Data, &sellerView); err != nil {
		t.Fatalf("decode seller view: %v", err)
	}
	if sellerView.SellerReputation != 5 {
		t.Fatalf("expected seller reputation 5, got %d", sellerView.SellerReputation)
	}

	status, resp = f.do(t, http.MethodGet, "/v1/market/products", "", nil)
	if status != http.StatusOK {
		t.Fatalf("market products: %d", status)
	}
	var productViews []struct {
		Quantity uint32 `json:"quantity"`
	}
	if err := json.Unmarshal(resp.Data, &productViews); err != nil {
		t.Fatalf("decode product snapshot: %v", err)
	}
	if len(productViews) != 1 || productViews[0].Quantity != 2 {
		t.Fatalf("expected one product with stock 2, got %+v", productViews)
	}

	status, resp = f.do(t, http.MethodGet, "/v1/reports/top-sellers", "", nil)
	if status != http.StatusOK {
		t.Fatalf("top sellers report: %d", status)
	}
	var top []struct {
		Identity string `json:"identity"`
	}
	if err := json.Unmarshal(resp.Data, &top); err != nil {
		t.Fatalf("decode top sellers: %v", err)
	}
	if len(top) != 1 || top[0].Identity != "seller" {
		t.Fatalf("expected seller at top, got %+v", top)
	}

	status, resp = f.do(t, http.MethodGet, "/v1/reports/users/buyer/order-count", "", nil)
	if status != http.StatusOK {
		t.Fatalf("order count report: %d", status)
	}
	var count struct {
		TotalOrders uint32 `json:"total_orders"`
	}
	if err := json.Unmarshal(resp.Data, &count); err != nil {
		t.Fatalf("decode order count: %v", err)
	}
	if count.TotalOrders != 1 {
		t.Fatalf("expected 1 order for buyer, got %d", count.TotalOrders)
	}

	if status, resp = f.do(t, http.MethodGet, "/v1/users/ghost", "", nil); status != http.StatusNotFound || resp.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected 404 for unknown user, got %d %+v", status, resp)
	}
	if status, resp = f.do(t, http.MethodPost, "/v1/orders/abc/ship", seller, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad order id, got %d %+v", status, resp)
	}
}
