package requests

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/opsdeck/opsdeck/internal/platform/httpx"
	"github.com/opsdeck/opsdeck/internal/rbac"
	"github.com/opsdeck/opsdeck/internal/shared"
)

// Handler manages permission request endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	rbac     rbac.Middleware
	audit    *shared.AuditLogger
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware, audit *shared.AuditLogger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		rbac:     rbac,
		audit:    audit,
	}
}

// MountRoutes registers permission request routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.CapRequestsSubmit, rbac.CapRequestsDecide))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.CapRequestsDecide))
		r.Put("/{id}", h.decide)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list requests", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create request", slog.Int64("id", req.ID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.recordAudit(r, "create", created.ID)
	httpx.JSON(w, http.StatusOK, created)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request id")
		return
	}
	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	updated, err := h.service.Decide(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("decide request", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.recordAudit(r, "decide", updated.ID)
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) recordAudit(r *http.Request, action string, id int64) {
	if h.audit == nil {
		return
	}
	actor := ""
	if p := rbac.PrincipalFromContext(r.Context()); p != nil {
		actor = p.Handle
	}
	if err := h.audit.Record(shared.AuditLog{
		Actor:    actor,
		Action:   action,
		Entity:   "permission_request",
		EntityID: strconv.FormatInt(id, 10),
	}); err != nil {
		h.logger.Warn("audit record", slog.Any("error", err))
	}
}
