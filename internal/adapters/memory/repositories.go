package memory

import (
	"context"

	"github.com/viralforge/marketplace/internal/domain"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.Identity]; ok {
		return domain.ErrAlreadyRegistered
	}
	r.store.users[user.Identity] = user
	r.store.userOrder = append(r.store.userOrder, user.Identity)
	return nil
}

func (r *UserRepository) Get(_ context.Context, identity string) (domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	user, ok := r.store.users[identity]
	if !ok {
		return domain.User{}, domain.ErrNotRegistered
	}
	return user, nil
}

func (r *UserRepository) Exists(_ context.Context, identity string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.users[identity]
	return ok, nil
}

func (r *UserRepository) Update(_ context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.Identity]; !ok {
		return domain.ErrNotRegistered
	}
	r.store.users[user.Identity] = user
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	return r.store.AllUsers(ctx)
}

type ProductRepository struct {
	store *Store
}

func (r *ProductRepository) NextID(_ context.Context) (uint32, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.nextProductID == ^uint32(0) {
		return 0, domain.ErrInternal
	}
	id := r.store.nextProductID
	r.store.nextProductID++
	return id, nil
}

func (r *ProductRepository) Create(_ context.Context, product domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products[product.ID] = product
	return nil
}

func (r *ProductRepository) Get(_ context.Context, id uint32) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	product, ok := r.store.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *ProductRepository) Update(_ context.Context, product domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.store.products[product.ID] = product
	return nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	return r.store.AllProducts(ctx)
}

func (r *ProductRepository) Count(_ context.Context) (uint32, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.nextProductID, nil
}

type OrderRepository struct {
	store *Store
}

func (r *OrderRepository) NextID(_ context.Context) (uint32, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.nextOrderID == ^uint32(0) {
		return 0, domain.ErrInternal
	}
	id := r.store.nextOrderID
	r.store.nextOrderID++
	return id, nil
}

func (r *OrderRepository) Create(_ context.Context, order domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[order.ID] = order
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id uint32) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *OrderRepository) Update(_ context.Context, order domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	r.store.orders[order.ID] = order
	return nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.store.AllOrders(ctx)
}

func (r *OrderRepository) Count(_ context.Context) (uint32, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.nextOrderID, nil
}
