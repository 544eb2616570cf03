package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/akielkucki/digitalmarketplace/internal/model"
)

// AuditRecorder is the sink for auth audit entries.
type AuditRecorder interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

// AuditService records signup/login/logout outcomes. Recording is
// best-effort: a failed write is logged but never fails the request that
// triggered it.
type AuditService struct {
	repo AuditRecorder
}

func NewAuditService(repo AuditRecorder) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Record(ctx context.Context, action string, actor model.AuditActor, cause error) {
	entry := model.AuditEntry{
		Action:     action,
		OccurredAt: time.Now().UTC(),
		Actor:      actor,
		Status:     model.AuditStatusSuccess,
	}
	if cause != nil {
		entry.Status = model.AuditStatusFailure
		entry.Error = cause.Error()
	}

	if err := s.repo.Log(ctx, entry); err != nil {
		slog.Error("audit entry dropped", "action", action, "error", err)
	}
}

func (s *AuditService) List(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	return s.repo.Query(ctx, query)
}
