package repository

import (
	"context"
	"sync"

	"uni-match/internal/domain"
)

// Implementaciones en memoria. Son el backend por defecto cuando no hay
// DATABASE_URL configurada, igual que la version anterior del sistema caia
// a colecciones mock cuando su backend no estaba configurado. Tambien las
// usan los tests.

// MemoryAccountRepository guarda cuentas en un mapa protegido por mutex.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[string]domain.Account),
	}
}

func (r *MemoryAccountRepository) Get(_ context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryAccountRepository) Upsert(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.ID] = account
	return nil
}

// MemoryProfileRepository guarda perfiles preservando el orden de insercion,
// para que List sea deterministico (el orden de entrada es el tie-break del
// ranking de matches).
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
	order    []string
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		profiles: make(map[string]domain.Profile),
	}
}

func (r *MemoryProfileRepository) Create(_ context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[profile.ID]; !exists {
		r.order = append(r.order, profile.ID)
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *MemoryProfileRepository) GetByID(_ context.Context, id string) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return domain.Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryProfileRepository) GetByEmail(_ context.Context, email string) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if r.profiles[id].Email == email {
			return r.profiles[id], nil
		}
	}
	return domain.Profile{}, ErrNotFound
}

func (r *MemoryProfileRepository) List(_ context.Context) ([]domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out, nil
}

func (r *MemoryProfileRepository) Update(_ context.Context, id string, update domain.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return ErrNotFound
	}
	r.profiles[id] = update.Apply(p)
	return nil
}
