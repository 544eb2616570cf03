package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/akielkucki/digitalmarketplace/internal/model"
	"github.com/akielkucki/digitalmarketplace/pkg/apierror"
)

// MemoryUserRepository is an in-memory stand-in for the Postgres user
// repository, used by tests. It mirrors the conflict semantics of the
// users_email_key constraint.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string

	// FailWith, when set, makes every call return this error. Lets tests
	// exercise the persistence-failure paths.
	FailWith error
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    map[string]model.User{},
		byEmail: map[string]string{},
	}
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (model.User, error) {
	if r.FailWith != nil {
		return model.User{}, r.FailWith
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return model.User{}, apierror.NotFound("user not found", email)
	}
	return r.byID[id], nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (model.User, error) {
	if r.FailWith != nil {
		return model.User{}, r.FailWith
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return model.User{}, apierror.NotFound("user not found", id)
	}
	return user, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, u model.User) (model.User, error) {
	if r.FailWith != nil {
		return model.User{}, r.FailWith
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return model.User{}, apierror.Conflict("user with this email already exists", u.Email)
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *MemoryUserRepository) List(_ context.Context, page int, limit int) ([]model.User, int, error) {
	if r.FailWith != nil {
		return nil, 0, r.FailWith
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]model.User, 0, len(r.byID))
	for _, u := range r.byID {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return strings.Compare(all[i].Email, all[j].Email) < 0
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return []model.User{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// Delete removes a user, letting tests simulate a user vanishing between
// token issuance and lookup.
func (r *MemoryUserRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}
