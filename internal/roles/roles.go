// Package roles serves the read-only role reference list consumed when
// assigning roles to accounts.
package roles

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdeck/opsdeck/internal/platform/httpx"
)

// RoleDefinition names an assignable role.
type RoleDefinition struct {
	RoleName string `json:"roleName"`
}

// Repository holds the static role reference list.
type Repository struct {
	roles []RoleDefinition
}

// NewRepository constructs a repository from role names.
func NewRepository(names []string) *Repository {
	defs := make([]RoleDefinition, 0, len(names))
	for _, n := range names {
		defs = append(defs, RoleDefinition{RoleName: n})
	}
	return &Repository{roles: defs}
}

// List returns the reference list.
func (r *Repository) List(ctx context.Context) ([]RoleDefinition, error) {
	out := make([]RoleDefinition, len(r.roles))
	copy(out, r.roles)
	return out, nil
}

// Handler serves the role reference list.
type Handler struct {
	logger *slog.Logger
	repo   *Repository
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, repo *Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers role routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	defs, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list roles", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, defs)
}
