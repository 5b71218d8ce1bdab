package sales

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

// Handler manages sales endpoints.
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

// MountRoutes registers sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.CapSalesManage))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list sales", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	sale, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create sale", slog.Int64("id", req.ID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.recordAudit(r, "create", sale.ID)
	httpx.JSON(w, http.StatusOK, sale)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid sale id")
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	sale, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update sale", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.recordAudit(r, "update", sale.ID)
	httpx.JSON(w, http.StatusOK, sale)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid sale id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete sale", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.recordAudit(r, "delete", id)
	httpx.JSON(w, http.StatusOK, struct{}{})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (UpsertSaleRequest, bool) {
	var req UpsertSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return req, false
	}
	if req.Date.IsZero() {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date is required")
		return req, false
	}
	return req, true
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
		Entity:   "sale",
		EntityID: strconv.FormatInt(id, 10),
	}); err != nil {
		h.logger.Warn("audit record", slog.Any("error", err))
	}
}
