package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coolvent/fieldops/internal/adapter/http/dto"
	mw "github.com/coolvent/fieldops/internal/adapter/http/middleware"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// UserCreatorService creates users on behalf of an authenticated caller.
type UserCreatorService interface {
	AddUser(ctx context.Context, caller domain.Session, input usecase.CreateUserInput) (*domain.User, error)
}

// UserService is the user management surface the handler depends on.
type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, input usecase.UpdateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error)
	ListTechnicians(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// UserHandler handles user management HTTP requests.
type UserHandler struct {
	creator UserCreatorService
	userUC  UserService
	audit   *usecase.AuditRecorder
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(creator UserCreatorService, userUC UserService, audit *usecase.AuditRecorder) *UserHandler {
	return &UserHandler{
		creator: creator,
		userUC:  userUC,
		audit:   audit,
	}
}

// Create adds a staff user. Capability is checked against the caller's true
// session role; a preview never grants this.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	caller := mw.SessionFromContext(r.Context())
	user, err := h.creator.AddUser(r.Context(), caller, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create user", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "user.create", "user", user.ID)
	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Get retrieves a user by ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	user, err := h.userUC.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// Update modifies a user's profile, role or active flag.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.UpdateUser(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update user", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "user.update", "user", user.ID)
	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// List lists users with pagination.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	users, err := h.userUC.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UsersFromDomain(users))
}

// ListTechnicians lists active technicians available for dispatch.
func (h *UserHandler) ListTechnicians(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	techs, err := h.userUC.ListTechnicians(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list technicians", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UsersFromDomain(techs))
}
