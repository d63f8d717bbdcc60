package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/coolvent/fieldops/internal/domain"
)

// Actor identifies who performed a mutation. PreviewedRole is set when the
// action happened inside a role preview; the true identity still owns the
// action.
type Actor struct {
	Session       domain.Session
	PreviewedRole domain.Role
	RequestID     string
}

// AuditRecorder writes the audit trail for mutating operations.
type AuditRecorder struct {
	auditRepo AuditRepository
}

// NewAuditRecorder creates a new audit recorder.
func NewAuditRecorder(auditRepo AuditRepository) *AuditRecorder {
	return &AuditRecorder{auditRepo: auditRepo}
}

// Record writes one audit entry. Audit failures are logged, not surfaced:
// a mutation that succeeded stays succeeded.
func (r *AuditRecorder) Record(ctx context.Context, actor Actor, action, resourceType, resourceID string) {
	entry := &domain.AuditLog{
		ID:            uuid.NewString(),
		ActorID:       actor.Session.UserID,
		ActorRole:     actor.Session.Role,
		PreviewedRole: actor.PreviewedRole,
		Action:        action,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		RequestID:     actor.RequestID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := r.auditRepo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("action", action).
			Str("resource_type", resourceType).
			Str("resource_id", resourceID).
			Msg("failed to write audit entry")
	}
}

// ListAudit lists audit entries with filtering.
func (r *AuditRecorder) ListAudit(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)
	return r.auditRepo.List(ctx, filter)
}
