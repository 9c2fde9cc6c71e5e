package owners

import (
	"context"
	"sync"

	"shopgate/internal/common"
	"shopgate/internal/server/models"
)

// MemoryRepository keeps owners in a map. Used by tests and by the dev
// server when no database DSN is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*models.Owner
	byMail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*models.Owner),
		byMail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, owner *models.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byMail[owner.Email]; ok {
		return common.ErrAlreadyExists
	}
	cp := *owner
	r.byID[owner.ID] = &cp
	r.byMail[owner.Email] = owner.ID
	return nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byMail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *owner
	return &cp, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	owner.Status = status
	return nil
}

func (r *MemoryRepository) UpdateOnboarding(ctx context.Context, id string, fields map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	owner.Onboarding = fields
	return nil
}
