package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/marketplace/internal/domain"
)

type userModel struct {
	Identity         string    `gorm:"column:identity;primaryKey"`
	Role             string    `gorm:"column:role"`
	BuyerReputation  int64     `gorm:"column:buyer_reputation"`
	SellerReputation int64     `gorm:"column:seller_reputation"`
	RegisteredSeq    int64     `gorm:"column:registered_seq;autoIncrement"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func (m userModel) toDomain() domain.User {
	return domain.User{
		Identity:         m.Identity,
		Role:             domain.Role(m.Role),
		BuyerReputation:  uint32(m.BuyerReputation),
		SellerReputation: uint32(m.SellerReputation),
	}
}

type productModel struct {
	ProductID   int64     `gorm:"column:product_id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Price       uint64    `gorm:"column:price"`
	Quantity    int64     `gorm:"column:quantity"`
	Category    string    `gorm:"column:category"`
	Seller      string    `gorm:"column:seller"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (productModel) TableName() string { return "products" }

func (m productModel) toDomain() domain.Product {
	return domain.Product{
		ID:          uint32(m.ProductID),
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    uint32(m.Quantity),
		Category:    m.Category,
		Seller:      m.Seller,
	}
}

func toProductModel(p domain.Product) productModel {
	return productModel{
		ProductID:   int64(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    int64(p.Quantity),
		Category:    p.Category,
		Seller:      p.Seller,
	}
}

type orderModel struct {
	OrderID             int64     `gorm:"column:order_id;primaryKey"`
	Buyer               string    `gorm:"column:buyer"`
	Seller              string    `gorm:"column:seller"`
	ProductID           int64     `gorm:"column:product_id"`
	Quantity            int64     `gorm:"column:quantity"`
	Status              string    `gorm:"column:status"`
	BuyerRated          bool      `gorm:"column:buyer_rated"`
	SellerRated         bool      `gorm:"column:seller_rated"`
	BuyerRequestsCancel bool      `gorm:"column:buyer_requests_cancel"`
	SellerAcceptsCancel bool      `gorm:"column:seller_accepts_cancel"`
	CreatedAt           time.Time `gorm:"column:created_at"`
}

func (orderModel) TableName() string { return "orders" }

func (m orderModel) toDomain() domain.Order {
	return domain.Order{
		ID:                  uint32(m.OrderID),
		Buyer:               m.Buyer,
		Seller:              m.Seller,
		ProductID:           uint32(m.ProductID),
		Quantity:            uint32(m.Quantity),
		Status:              domain.OrderStatus(m.Status),
		BuyerRated:          m.BuyerRated,
		SellerRated:         m.SellerRated,
		BuyerRequestsCancel: m.BuyerRequestsCancel,
		SellerAcceptsCancel: m.SellerAcceptsCancel,
	}
}

func toOrderModel(o domain.Order) orderModel {
	return orderModel{
		OrderID:             int64(o.ID),
		Buyer:               o.Buyer,
		Seller:              o.Seller,
		ProductID:           int64(o.ProductID),
		Quantity:            int64(o.Quantity),
		Status:              string(o.Status),
		BuyerRated:          o.BuyerRated,
		SellerRated:         o.SellerRated,
		BuyerRequestsCancel: o.BuyerRequestsCancel,
		SellerAcceptsCancel: o.SellerAcceptsCancel,
	}
}

type outboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	RetryCount   int        `gorm:"column:retry_count"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	LastError    *string    `gorm:"column:last_error"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
	FirstSeenAt  time.Time  `gorm:"column:first_seen_at"`
}

func (outboxModel) TableName() string { return "outbox" }
