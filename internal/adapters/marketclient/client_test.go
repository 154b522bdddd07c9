package marketclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/viralforge/marketplace/internal/adapters/marketclient"
	"github.com/viralforge/marketplace/internal/domain"
)

func TestClientReadsSnapshots(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/market/users":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"identity":"alice","role":"both","buyer_reputation":3,"seller_reputation":7}]}`))
		case "/v1/market/products":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":0,"name":"poster","price":1200,"quantity":2,"seller":"alice"}]}`))
		case "/v1/market/orders":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":0,"buyer":"bob","seller":"alice","product_id":0,"quantity":3,"status":"received"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"no route"}}`))
		}
	}))
	t.Cleanup(server.Close)

	client := marketclient.New(server.URL)
	ctx := context.Background()

	users, err := client.AllUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("all users: %d %v", len(users), err)
	}
	if users[0].Identity != "alice" || users[0].Role != domain.RoleBoth || users[0].SellerReputation != 7 {
		t.Fatalf("unexpected user: %+v", users[0])
	}

	products, err := client.AllProducts(ctx)
	if err != nil || len(products) != 1 || products[0].Name != "poster" {
		t.Fatalf("all products: %+v %v", products, err)
	}

	orders, err := client.AllOrders(ctx)
	if err != nil || len(orders) != 1 {
		t.Fatalf("all orders: %d %v", len(orders), err)
	}
	if orders[0].Status != domain.OrderStatusReceived || orders[0].Buyer != "bob" {
		t.Fatalf("unexpected order: %+v", orders[0])
	}
}

func TestClientUpstreamErrors(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"SERVICE_UNAVAILABLE","message":"down"}}`))
	}))
	t.Cleanup(server.Close)

	client := marketclient.New(server.URL)
	if _, err := client.AllUsers(context.Background()); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	unreachable := marketclient.New("http://127.0.0.1:1")
	if _, err := unreachable.AllUsers(context.Background()); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable for refused connection, got %v", err)
	}
}
