package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cpinopacheco/sistema-inventario-BD/api/responses"
	"github.com/cpinopacheco/sistema-inventario-BD/api/validators"
	productsvc "github.com/cpinopacheco/sistema-inventario-BD/internal/products"
	pkgerrors "github.com/cpinopacheco/sistema-inventario-BD/pkg/errors"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
)

type productRequest struct {
	Nombre      string  `json:"nombre" validate:"required"`
	Cantidad    int     `json:"cantidad" validate:"gte=0"`
	Descripcion *string `json:"descripcion,omitempty"`
	CategoriaID int     `json:"categoria_id" validate:"required"`
}

type adjustQuantityRequest struct {
	Cambio *int `json:"cambio" validate:"required"`
}

// ListProducts serves the filtered product listing.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		filters := productsvc.ListFilters{
			Search:   r.URL.Query().Get("busqueda"),
			LowStock: r.URL.Query().Get("stockBajo") == "true",
		}
		if raw := r.URL.Query().Get("categoria"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "categoría inválida"))
				return
			}
			filters.CategoryID = &id
		}

		rows, err := svc.ListProducts(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// CreateProduct handles product creation, including ID allocation.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			Nombre:      payload.Nombre,
			Cantidad:    payload.Cantidad,
			Descripcion: payload.Descripcion,
			CategoriaID: payload.CategoriaID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// GetProduct fetches one product by its ID.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// UpdateProduct replaces the mutable fields of an existing product.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), productsvc.UpdateProductInput{
			Nombre:      payload.Nombre,
			Cantidad:    payload.Cantidad,
			Descripcion: payload.Descripcion,
			CategoriaID: payload.CategoriaID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// DeleteProduct removes a product.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "producto eliminado correctamente"})
	}
}

// AdjustProductQuantity applies a signed stock change to a product.
func AdjustProductQuantity(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload adjustQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.AdjustQuantity(r.Context(), chi.URLParam(r, "id"), *payload.Cambio)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
