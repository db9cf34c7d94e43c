// AngelaMos | 2026
// handler.go

package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/bakery-backoffice/internal/core"
	"github.com/carterperez-dev/bakery-backoffice/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/accounts", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.GetMe)
		r.Put("/me", h.UpdateMe)
	})
}

// RegisterStaffRoutes exposes the employee/manager lookups used by the back
// office; both kinds are provisioned administratively, so reads are gated to
// managers.
func (h *Handler) RegisterStaffRoutes(
	r chi.Router,
	authenticator, managerOnly func(http.Handler) http.Handler,
) {
	r.Route("/staff", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(managerOnly)

		r.Get("/employees/{accountID}", h.GetEmployee)
		r.Get("/managers/{accountID}", h.GetManager)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requesterID(r)
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	view, err := h.service.GetCustomer(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requesterID(r)
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	view, err := h.service.UpdateProfile(r.Context(), accountID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid account id")
		return
	}

	view, err := h.service.GetEmployee(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "employee")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) GetManager(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid account id")
		return
	}

	view, err := h.service.GetManager(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "manager")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, view)
}

func requesterID(r *http.Request) (int64, bool) {
	sub := middleware.GetUserID(r.Context())
	if sub == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}
