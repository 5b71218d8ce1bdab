package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/opsdeck/opsdeck/internal/accounts"
	"github.com/opsdeck/opsdeck/internal/platform/httpx"
)

// Handler manages authentication endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers authentication routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/authenticate", h.authenticate)
	r.Post("/register", h.register)
	r.Post("/logout", h.logout)
}

type authenticateRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type authenticateResponse struct {
	IsAuthenticated bool    `json:"isAuthenticated"`
	Role            *string `json:"role"`
	Token           string  `json:"token,omitempty"`
}

// authenticate never fails the request: bad credentials, malformed payloads
// and disabled accounts all answer 200 with isAuthenticated false.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSON(w, http.StatusOK, authenticateResponse{})
		return
	}
	principal, token, err := h.service.Authenticate(r.Context(), req.UserID, req.Password)
	if err != nil {
		h.logger.Debug("authenticate rejected", slog.String("userId", req.UserID), slog.Any("error", err))
		httpx.JSON(w, http.StatusOK, authenticateResponse{})
		return
	}
	role := string(principal.Role)
	httpx.JSON(w, http.StatusOK, authenticateResponse{IsAuthenticated: true, Role: &role, Token: token})
}

type registerResponse struct {
	IsRegistered bool   `json:"isRegistered"`
	Message      string `json:"message,omitempty"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req accounts.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Register(r.Context(), req); err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			httpx.JSON(w, http.StatusOK, registerResponse{Message: "User ID already taken"})
			return
		}
		h.logger.Error("register account", slog.String("userId", req.UserID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, registerResponse{IsRegistered: true})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
		return
	}
	if err := h.service.Logout(r.Context(), token); err != nil {
		h.logger.Warn("logout", slog.Any("error", err))
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
		return
	}
	httpx.JSON(w, http.StatusOK, struct{}{})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
