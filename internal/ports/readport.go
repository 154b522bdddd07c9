package ports

import (
	"context"

	"github.com/viralforge/marketplace/internal/domain"
)

// MarketReadPort is the reporting layer's only view of the marketplace.
// Every call returns a complete point-in-time snapshot; a failed snapshot
// fails the whole query. The aggregator does not care whether the port is
// backed by the in-process store or a remote marketplace deployment.
type MarketReadPort interface {
	AllUsers(ctx context.Context) ([]domain.User, error)
	AllProducts(ctx context.Context) ([]domain.Product, error)
	AllOrders(ctx context.Context) ([]domain.Order, error)
}
