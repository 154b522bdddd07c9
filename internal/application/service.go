package application

import (
	"sync"
	"time"

	"github.com/viralforge/marketplace/internal/ports"
)

type Config struct {
	ServiceName string
}

// Service is the marketplace engine. Every public operation resolves the
// caller, validates against the stores, then mutates; mu serializes the
// mutating operations so each one runs as a single isolated transaction
// against the stores.
type Service struct {
	cfg      Config
	users    ports.UserRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
	outbox   ports.OutboxRepository
	nowFn    func() time.Time

	mu sync.Mutex
}

type Dependencies struct {
	Config   Config
	Users    ports.UserRepository
	Products ports.ProductRepository
	Orders   ports.OrderRepository
	Outbox   ports.OutboxRepository
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "marketplace"
	}
	return &Service{
		cfg:      cfg,
		users:    deps.Users,
		products: deps.Products,
		orders:   deps.Orders,
		outbox:   deps.Outbox,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}
