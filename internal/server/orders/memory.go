package orders

import (
	"context"
	"sort"
	"sync"
	"time"

	"shopgate/internal/common"
	"shopgate/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[string]*models.Order)}
}

func (r *MemoryRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return common.ErrAlreadyExists
	}
	cp := cloneOrder(order)
	r.orders[order.ID] = cp
	return nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Order, 0)
	for _, order := range r.orders {
		if order.OwnerID == ownerID {
			result = append(result, cloneOrder(order))
		}
	}
	// newest first, matching the portal's order list
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok || order.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *MemoryRepository) GetByNumber(ctx context.Context, ownerID, number string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.OwnerID == ownerID && order.Number == number {
			return cloneOrder(order), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, ownerID, id, status string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok || order.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return cloneOrder(order), nil
}

func (r *MemoryRepository) MarkOutForDelivery(ctx context.Context, ownerID, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok || order.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	order.OutForDelivery = true
	order.UpdatedAt = time.Now()
	return cloneOrder(order), nil
}

func cloneOrder(order *models.Order) *models.Order {
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	return &cp
}
