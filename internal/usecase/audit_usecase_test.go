package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
	"github.com/coolvent/fieldops/internal/usecase/mocks"
)

func TestAuditRecorder_Record(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)
	recorder := usecase.NewAuditRecorder(repo)

	actor := usecase.Actor{
		Session: domain.Session{
			IsAuthenticated: true,
			UserID:          "admin-1",
			Username:        "admin@coolvent.example",
			Role:            domain.RoleAdmin,
		},
		PreviewedRole: domain.RoleCSR,
		RequestID:     "req-42",
	}

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.AuditLog) error {
			if entry.ActorID != "admin-1" {
				t.Errorf("actor ID = %q, want true identity admin-1", entry.ActorID)
			}
			if entry.ActorRole != domain.RoleAdmin {
				t.Errorf("actor role = %s, want admin", entry.ActorRole)
			}
			if entry.PreviewedRole != domain.RoleCSR {
				t.Errorf("previewed role = %s, want csr", entry.PreviewedRole)
			}
			if entry.Action != "customer.update" || entry.ResourceID != "cust-9" {
				t.Errorf("action/resource = %s/%s", entry.Action, entry.ResourceID)
			}
			if entry.ID == "" || entry.RequestID != "req-42" {
				t.Errorf("entry missing ID or request ID: %+v", entry)
			}
			return nil
		})

	recorder.Record(context.Background(), actor, "customer.update", "customer", "cust-9")
}

func TestAuditRecorder_RecordSwallowsRepoErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)
	recorder := usecase.NewAuditRecorder(repo)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))

	// Must not panic or surface the failure.
	recorder.Record(context.Background(), usecase.Actor{}, "invoice.issue", "invoice", "inv-1")
}

func TestAuditRecorder_ListAudit_ClampsPagination(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)
	recorder := usecase.NewAuditRecorder(repo)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
			if filter.Limit != usecase.MaxPageSize {
				t.Errorf("limit = %d, want clamped to %d", filter.Limit, usecase.MaxPageSize)
			}
			return nil, nil
		})

	if _, err := recorder.ListAudit(context.Background(), domain.AuditFilter{Limit: 10_000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
