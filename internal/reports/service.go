// Package reports is the read-only reporting layer. It owns no state of its
// own: every query pulls a full snapshot through the injected market read
// port and aggregates in memory.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/viralforge/marketplace/internal/domain"
	"github.com/viralforge/marketplace/internal/ports"
)

const DefaultTopN = 5

type Config struct {
	// Upstream describes where the read port points (in-process or a remote
	// marketplace address). Informational, returned by Upstream().
	Upstream string
	CacheTTL time.Duration
}

type Service struct {
	cfg   Config
	port  ports.MarketReadPort
	cache ports.Cache
}

func NewService(cfg Config, port ports.MarketReadPort, cache ports.Cache) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	return &Service{cfg: cfg, port: port, cache: cache}
}

// Upstream returns the configured read-port target.
func (s *Service) Upstream() string { return s.cfg.Upstream }

// TopSellers returns up to n users with a selling role, sorted descending by
// seller reputation. The sort is stable, so equal-reputation users keep
// snapshot order.
func (s *Service) TopSellers(ctx context.Context, n int) ([]domain.User, error) {
	var out []domain.User
	err := s.cached(ctx, fmt.Sprintf("reports:top_sellers:%d", n), &out, func() (any, error) {
		users, err := s.port.AllUsers(ctx)
		if err != nil {
			return nil, err
		}
		return topUsers(users, n, domain.Role.CanSell, func(u domain.User) uint32 { return u.SellerReputation }), nil
	})
	return out, err
}

// TopBuyers returns up to n users with a buying role, sorted descending by
// buyer reputation.
func (s *Service) TopBuyers(ctx context.Context, n int) ([]domain.User, error) {
	var out []domain.User
	err := s.cached(ctx, fmt.Sprintf("reports:top_buyers:%d", n), &out, func() (any, error) {
		users, err := s.port.AllUsers(ctx)
		if err != nil {
			return nil, err
		}
		return topUsers(users, n, domain.Role.CanBuy, func(u domain.User) uint32 { return u.BuyerReputation }), nil
	})
	return out, err
}

func topUsers(users []domain.User, n int, keep func(domain.Role) bool, score func(domain.User) uint32) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if keep(u.Role) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return score(out[i]) > score(out[j]) })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ProductSales is one row of the top-products report.
type ProductSales struct {
	Name          string `json:"name"`
	TotalQuantity uint32 `json:"total_quantity"`
}

// TopProductsSold sums quantities of Received orders per product, resolves
// product names from the product snapshot, and returns the n best-selling
// products in descending order.
func (s *Service) TopProductsSold(ctx context.Context, n int) ([]ProductSales, error) {
	var out []ProductSales
	err := s.cached(ctx, fmt.Sprintf("reports:top_products:%d", n), &out, func() (any, error) {
		products, err := s.port.AllProducts(ctx)
		if err != nil {
			return nil, err
		}
		orders, err := s.port.AllOrders(ctx)
		if err != nil {
			return nil, err
		}
		return topProducts(products, orders, n), nil
	})
	return out, err
}

func topProducts(products []domain.Product, orders []domain.Order, n int) []ProductSales {
	names := make(map[uint32]string, len(products))
	for _, p := range products {
		if _, ok := names[p.ID]; !ok {
			names[p.ID] = p.Name
		}
	}
	totals := make(map[uint32]uint32)
	var ids []uint32
	for _, o := range orders {
		if o.Status != domain.OrderStatusReceived {
			continue
		}
		if _, ok := names[o.ProductID]; !ok {
			continue
		}
		if _, ok := totals[o.ProductID]; !ok {
			ids = append(ids, o.ProductID)
		}
		totals[o.ProductID] = domain.SaturatingAddStock(totals[o.ProductID], o.Quantity)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]ProductSales, 0, len(ids))
	for _, id := range ids {
		out = append(out, ProductSales{Name: names[id], TotalQuantity: totals[id]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalQuantity > out[j].TotalQuantity })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TotalOrdersFor counts orders where the identity appears as buyer or seller.
// One order contributes at most one to the count.
func (s *Service) TotalOrdersFor(ctx context.Context, identity string) (uint32, error) {
	orders, err := s.port.AllOrders(ctx)
	if err != nil {
		return 0, err
	}
	var total uint32
	for _, o := range orders {
		if o.Buyer == identity || o.Seller == identity {
			total++
		}
	}
	return total, nil
}

// cached wraps a snapshot computation with a short-TTL cache. Reports are
// pure functions over point-in-time snapshots, so bounded staleness is safe.
// Cache errors fall through to a fresh computation.
func (s *Service) cached(ctx context.Context, key string, out any, compute func() (any, error)) error {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			if err := json.Unmarshal([]byte(raw), out); err == nil {
				return nil
			}
		}
	}
	value, err := compute()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, string(raw), s.cfg.CacheTTL)
	}
	return json.Unmarshal(raw, out)
}
