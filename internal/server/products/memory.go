package products

import (
	"context"
	"sort"
	"sync"

	"shopgate/internal/common"
	"shopgate/internal/server/models"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	products map[string]*models.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[string]*models.Product)}
}

func (r *MemoryRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; ok {
		return common.ErrAlreadyExists
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Product, 0)
	for _, product := range r.products {
		if product.OwnerID == ownerID {
			cp := *product
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok || product.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	cp := *product
	return &cp, nil
}

func (r *MemoryRepository) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok || existing.OwnerID != product.OwnerID {
		return common.ErrNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok || product.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(r.products, id)
	return nil
}
