package repository

import (
	"context"
	"sync"

	"github.com/akielkucki/digitalmarketplace/internal/model"
)

// MemoryAuditRepository collects audit entries in memory for tests.
type MemoryAuditRepository struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

func NewMemoryAuditRepository() *MemoryAuditRepository {
	return &MemoryAuditRepository{}
}

func (r *MemoryAuditRepository) Log(_ context.Context, entry model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *MemoryAuditRepository) Query(_ context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]model.AuditEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if query.Action != "" && e.Action != query.Action {
			continue
		}
		if query.Status != "" && e.Status != query.Status {
			continue
		}
		if query.Email != "" && e.Actor.Email != query.Email {
			continue
		}
		matched = append(matched, e)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	page := query.Page
	if page < 1 {
		page = 1
	}

	total := len(matched)
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	meta := model.Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}

	start := (page - 1) * limit
	if start >= total {
		return []model.AuditEntry{}, meta, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], meta, nil
}
