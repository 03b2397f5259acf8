package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	productsvc "github.com/cpinopacheco/sistema-inventario-BD/internal/products"
	pkgerrors "github.com/cpinopacheco/sistema-inventario-BD/pkg/errors"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
)

type stubProductService struct {
	createFn func(context.Context, productsvc.CreateProductInput) (*productsvc.ProductDTO, error)
	getFn    func(context.Context, string) (*productsvc.ProductDTO, error)
	listFn   func(context.Context, productsvc.ListFilters) ([]productsvc.ProductDTO, error)
	updateFn func(context.Context, string, productsvc.UpdateProductInput) (*productsvc.ProductDTO, error)
	deleteFn func(context.Context, string) error
	adjustFn func(context.Context, string, int) (*productsvc.ProductDTO, error)
}

func (s *stubProductService) CreateProduct(ctx context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) GetProduct(ctx context.Context, id string) (*productsvc.ProductDTO, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) ListProducts(ctx context.Context, filters productsvc.ListFilters) ([]productsvc.ProductDTO, error) {
	return s.listFn(ctx, filters)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id string, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProductService) AdjustQuantity(ctx context.Context, id string, change int) (*productsvc.ProductDTO, error) {
	return s.adjustFn(ctx, id, change)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateProduct(t *testing.T) {
	logg := testLogger()

	t.Run("success returns 201 with hydrated product", func(t *testing.T) {
		stub := &stubProductService{
			createFn: func(_ context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
				if input.Nombre != "Mouse" || input.Cantidad != 5 || input.CategoriaID != 1 {
					t.Fatalf("unexpected input: %+v", input)
				}
				return &productsvc.ProductDTO{ID: "P001", Nombre: "Mouse", Cantidad: 5, CategoriaID: 1, Categoria: "Electrónica"}, nil
			},
		}

		body := `{"nombre":"Mouse","cantidad":5,"categoria_id":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/productos", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		var envelope struct {
			Data productsvc.ProductDTO `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if envelope.Data.ID != "P001" || envelope.Data.Categoria != "Electrónica" {
			t.Fatalf("unexpected payload: %+v", envelope.Data)
		}
	})

	t.Run("missing name rejected", func(t *testing.T) {
		stub := &stubProductService{
			createFn: func(context.Context, productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
				t.Fatal("service should not be called")
				return nil, nil
			},
		}

		body := `{"cantidad":5,"categoria_id":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/productos", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		stub := &stubProductService{
			createFn: func(context.Context, productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
				t.Fatal("service should not be called")
				return nil, nil
			},
		}

		body := `{"nombre":"Mouse","cantidad":-1,"categoria_id":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/productos", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetProductNotFound(t *testing.T) {
	stub := &stubProductService{
		getFn: func(_ context.Context, id string) (*productsvc.ProductDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/productos/P999", nil)
	req = withRouteParam(req, "id", "P999")
	rec := httptest.NewRecorder()
	GetProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
	if envelope.Error.Message != "producto no encontrado" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestListProductsParsesFilters(t *testing.T) {
	var seen productsvc.ListFilters
	stub := &stubProductService{
		listFn: func(_ context.Context, filters productsvc.ListFilters) ([]productsvc.ProductDTO, error) {
			seen = filters
			return []productsvc.ProductDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/productos?categoria=2&busqueda=mouse&stockBajo=true", nil)
	rec := httptest.NewRecorder()
	ListProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen.CategoryID == nil || *seen.CategoryID != 2 {
		t.Fatalf("expected category filter 2, got %v", seen.CategoryID)
	}
	if seen.Search != "mouse" || !seen.LowStock {
		t.Fatalf("unexpected filters: %+v", seen)
	}

	t.Run("invalid category id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/productos?categoria=abc", nil)
		rec := httptest.NewRecorder()
		ListProducts(stub, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAdjustProductQuantity(t *testing.T) {
	logg := testLogger()

	t.Run("zero change is a valid payload", func(t *testing.T) {
		var seenChange int
		stub := &stubProductService{
			adjustFn: func(_ context.Context, id string, change int) (*productsvc.ProductDTO, error) {
				seenChange = change
				return &productsvc.ProductDTO{ID: id, Cantidad: 5}, nil
			},
		}

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/productos/P001/cantidad", strings.NewReader(`{"cambio":0}`))
		req = withRouteParam(req, "id", "P001")
		rec := httptest.NewRecorder()
		AdjustProductQuantity(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if seenChange != 0 {
			t.Fatalf("expected change 0, got %d", seenChange)
		}
	})

	t.Run("missing cambio rejected", func(t *testing.T) {
		stub := &stubProductService{
			adjustFn: func(context.Context, string, int) (*productsvc.ProductDTO, error) {
				t.Fatal("service should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/productos/P001/cantidad", strings.NewReader(`{}`))
		req = withRouteParam(req, "id", "P001")
		rec := httptest.NewRecorder()
		AdjustProductQuantity(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		stub := &stubProductService{
			adjustFn: func(context.Context, string, int) (*productsvc.ProductDTO, error) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
			},
		}

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/productos/P999/cantidad", strings.NewReader(`{"cambio":-3}`))
		req = withRouteParam(req, "id", "P999")
		rec := httptest.NewRecorder()
		AdjustProductQuantity(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	var deleted string
	stub := &stubProductService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/productos/P001", nil)
	req = withRouteParam(req, "id", "P001")
	rec := httptest.NewRecorder()
	DeleteProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "P001" {
		t.Fatalf("expected P001 deleted, got %q", deleted)
	}
}
