// AngelaMos | 2026
// handler.go

package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/bakery-backoffice/internal/core"
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

// RegisterRoutes wires the public storefront reads.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", h.ListGrouped)
		r.Get("/menu", h.ListMenu)
		r.Get("/search", h.Search)
		r.Get("/products/{sku}", h.GetDetails)
	})
}

// RegisterStaffRoutes wires inventory reads and catalog writes, gated to
// employees and managers.
func (h *Handler) RegisterStaffRoutes(
	r chi.Router,
	authenticator, staffOnly func(http.Handler) http.Handler,
) {
	r.Route("/catalog/stock", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(staffOnly)

		r.Get("/", h.ListStock)
		r.Post("/products", h.AddProduct)
		r.Put("/products/{sku}", h.UpdateProduct)
		r.Delete("/products/{sku}", h.DeleteProduct)
	})
}

func (h *Handler) ListGrouped(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListGrouped(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, groups)
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenu(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}

func (h *Handler) ListStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListStock(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}

func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	view, err := h.service.GetDetails(r.Context(), sku)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.AddProduct(r.Context(), req); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("product"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, map[string]string{"id": req.SKU})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	view, err := h.service.Update(r.Context(), sku, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	if err := h.service.DeleteProduct(r.Context(), sku); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
