package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/viralforge/marketplace/internal/domain"
	"github.com/viralforge/marketplace/internal/ports"
)

const maxSequentialID = int64(^uint32(0)) - 1

type Repositories struct {
	Users    ports.UserRepository
	Products ports.ProductRepository
	Orders   ports.OrderRepository
	Outbox   ports.OutboxRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    &userRepository{db: db},
		Products: &productRepository{db: db},
		Orders:   &orderRepository{db: db},
		Outbox:   &outboxRepository{db: db},
	}
}

// nextSequentialID claims the next id for an entity, refusing to wrap past
// the uint32 ceiling.
func nextSequentialID(ctx context.Context, db *gorm.DB, entity string) (uint32, error) {
	var next int64 = -1
	err := db.WithContext(ctx).Raw(
		`UPDATE id_sequences SET next_id = next_id + 1
		 WHERE entity = ? AND next_id <= ? RETURNING next_id - 1`,
		entity, maxSequentialID,
	).Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", entity, err)
	}
	if next < 0 {
		return 0, domain.ErrInternal
	}
	return uint32(next), nil
}

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user domain.User) error {
	row := userModel{
		Identity:         user.Identity,
		Role:             string(user.Role),
		BuyerReputation:  int64(user.BuyerReputation),
		SellerReputation: int64(user.SellerReputation),
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyRegistered
	}
	return err
}

func (r *userRepository) Get(ctx context.Context, identity string) (domain.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).Where("identity = ?", identity).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.ErrNotRegistered
	}
	if err != nil {
		return domain.User{}, err
	}
	return row.toDomain(), nil
}

func (r *userRepository) Exists(ctx context.Context, identity string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Where("identity = ?", identity).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(ctx context.Context, user domain.User) error {
	result := r.db.WithContext(ctx).Model(&userModel{}).Where("identity = ?", user.Identity).Updates(map[string]any{
		"role":              string(user.Role),
		"buyer_reputation":  int64(user.BuyerReputation),
		"seller_reputation": int64(user.SellerReputation),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotRegistered
	}
	return nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("registered_seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) NextID(ctx context.Context) (uint32, error) {
	return nextSequentialID(ctx, r.db, "product")
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) error {
	row := toProductModel(product)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *productRepository) Get(ctx context.Context, id uint32) (domain.Product, error) {
	var row productModel
	err := r.db.WithContext(ctx).Where("product_id = ?", int64(id)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

func (r *productRepository) Update(ctx context.Context, product domain.Product) error {
	row := toProductModel(product)
	result := r.db.WithContext(ctx).Model(&productModel{}).Where("product_id = ?", row.ProductID).Updates(map[string]any{
		"quantity": row.Quantity,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	var rows []productModel
	if err := r.db.WithContext(ctx).Order("product_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *productRepository) Count(ctx context.Context) (uint32, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(`SELECT next_id FROM id_sequences WHERE entity = 'product'`).Scan(&next).Error
	return uint32(next), err
}

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) NextID(ctx context.Context) (uint32, error) {
	return nextSequentialID(ctx, r.db, "order")
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) error {
	row := toOrderModel(order)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *orderRepository) Get(ctx context.Context, id uint32) (domain.Order, error) {
	var row orderModel
	err := r.db.WithContext(ctx).Where("order_id = ?", int64(id)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return row.toDomain(), nil
}

func (r *orderRepository) Update(ctx context.Context, order domain.Order) error {
	row := toOrderModel(order)
	result := r.db.WithContext(ctx).Model(&orderModel{}).Where("order_id = ?", row.OrderID).Updates(map[string]any{
		"status":                row.Status,
		"buyer_rated":           row.BuyerRated,
		"seller_rated":          row.SellerRated,
		"buyer_requests_cancel": row.BuyerRequestsCancel,
		"seller_accepts_cancel": row.SellerAcceptsCancel,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	var rows []orderModel
	if err := r.db.WithContext(ctx).Order("order_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *orderRepository) Count(ctx context.Context) (uint32, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(`SELECT next_id FROM id_sequences WHERE entity = 'order'`).Scan(&next).Error
	return uint32(next), err
}
