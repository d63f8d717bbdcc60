package usecase

import (
	"context"

	"github.com/coolvent/fieldops/internal/domain"
)

// PreviewUseCase manages the admin-only role preview. The override is held
// outside the session and changes what renders, never who acts.
type PreviewUseCase struct {
	previews PreviewStore
}

// NewPreviewUseCase creates a new preview use case.
func NewPreviewUseCase(previews PreviewStore) *PreviewUseCase {
	return &PreviewUseCase{previews: previews}
}

// Set opens a preview as the given role. Only a true admin session may set
// one; under any other role the call fails and the effective role is
// unchanged. A request already inside a preview frame cannot open another.
func (uc *PreviewUseCase) Set(ctx context.Context, session domain.Session, sessionToken string, role domain.Role, inPreviewFrame bool) error {
	if !session.IsAuthenticated {
		return domain.ErrUnauthorized
	}
	if !session.Role.CanPreview() {
		return domain.ErrRoleNotAllowed
	}
	if inPreviewFrame {
		return domain.ErrRoleNotAllowed
	}
	if !role.IsValid() {
		return domain.ErrUnknownRole
	}

	return uc.previews.Set(ctx, sessionToken, role, PreviewTTL)
}

// Clear closes the preview. Clearing an absent preview is not an error, and
// the effective role returns to the true session role exactly.
func (uc *PreviewUseCase) Clear(ctx context.Context, sessionToken string) error {
	return uc.previews.Clear(ctx, sessionToken)
}

// Active returns the current override for a session, or "" when none is set
// or the true session may not preview.
func (uc *PreviewUseCase) Active(ctx context.Context, session domain.Session, sessionToken string) domain.Role {
	if !session.IsAuthenticated || !session.Role.CanPreview() {
		return ""
	}

	role, err := uc.previews.Get(ctx, sessionToken)
	if err != nil {
		return ""
	}
	if !role.IsValid() {
		return ""
	}
	return role
}
