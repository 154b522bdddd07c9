// Package marketclient implements the market read port against a remote
// marketplace engine, so the reporting service can run as its own process
// and aggregate over the engine's snapshot endpoints.
package marketclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/viralforge/marketplace/internal/domain"
	"github.com/viralforge/marketplace/internal/ports"
)

type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.MarketReadPort = (*Client)(nil)

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		if env.Error != nil {
			return fmt.Errorf("%w: upstream returned %s", domain.ErrStorageUnavailable, env.Error.Code)
		}
		return fmt.Errorf("%w: upstream returned status %d", domain.ErrStorageUnavailable, resp.StatusCode)
	}
	return json.Unmarshal(env.Data, out)
}

type userDTO struct {
	Identity         string `json:"identity"`
	Role             string `json:"role"`
	BuyerReputation  uint32 `json:"buyer_reputation"`
	SellerReputation uint32 `json:"seller_reputation"`
}

func (c *Client) AllUsers(ctx context.Context) ([]domain.User, error) {
	var dtos []userDTO
	if err := c.get(ctx, "/v1/market/users", &dtos); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dtos))
	for _, d := range dtos {
		users = append(users, domain.User{
			Identity:         d.Identity,
			Role:             domain.Role(d.Role),
			BuyerReputation:  d.BuyerReputation,
			SellerReputation: d.SellerReputation,
		})
	}
	return users, nil
}

type productDTO struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       uint64 `json:"price"`
	Quantity    uint32 `json:"quantity"`
	Category    string `json:"category"`
	Seller      string `json:"seller"`
}

func (c *Client) AllProducts(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO
	if err := c.get(ctx, "/v1/market/products", &dtos); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, domain.Product{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
			Quantity:    d.Quantity,
			Category:    d.Category,
			Seller:      d.Seller,
		})
	}
	return products, nil
}

type orderDTO struct {
	ID                  uint32 `json:"id"`
	Buyer               string `json:"buyer"`
	Seller              string `json:"seller"`
	ProductID           uint32 `json:"product_id"`
	Quantity            uint32 `json:"quantity"`
	Status              string `json:"status"`
	BuyerRated          bool   `json:"buyer_rated"`
	SellerRated         bool   `json:"seller_rated"`
	BuyerRequestsCancel bool   `json:"buyer_requests_cancel"`
	SellerAcceptsCancel bool   `json:"seller_accepts_cancel"`
}

func (c *Client) AllOrders(ctx context.Context) ([]domain.Order, error) {
	var dtos []orderDTO
	if err := c.get(ctx, "/v1/market/orders", &dtos); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, domain.Order{
			ID:                  d.ID,
			Buyer:               d.Buyer,
			Seller:              d.Seller,
			ProductID:           d.ProductID,
			Quantity:            d.Quantity,
			Status:              domain.OrderStatus(d.Status),
			BuyerRated:          d.BuyerRated,
			SellerRated:         d.SellerRated,
			BuyerRequestsCancel: d.BuyerRequestsCancel,
			SellerAcceptsCancel: d.SellerAcceptsCancel,
		})
	}
	return orders, nil
}
