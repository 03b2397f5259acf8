package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db/models"
	pkgerrors "github.com/cpinopacheco/sistema-inventario-BD/pkg/errors"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"
)

const (
	allocatorMaxRetries = 3
	allocatorBackoff    = 5 * time.Millisecond
)

// Service exposes inventory product operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id string) (*ProductDTO, error)
	ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id string) error
	AdjustQuantity(ctx context.Context, id string, change int) (*ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Nombre      string
	Cantidad    int
	Descripcion *string
	CategoriaID int
}

// UpdateProductInput holds the full replacement payload for a product.
type UpdateProductInput struct {
	Nombre      string
	Cantidad    int
	Descripcion *string
	CategoriaID int
}

// insertFunc performs the product insert inside the allocation transaction.
type insertFunc func(ctx context.Context, repo *Repository, product *models.Product) error

// StatsInvalidator drops cached inventory aggregates after a write.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context)
}

// service implements the product service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	log      *logger.Logger
	stats    StatsInvalidator
	insert   insertFunc
}

// NewService constructs a product service instance. stats may be nil when no
// aggregate cache is configured.
func NewService(repo *Repository, dbClient *db.Client, log *logger.Logger, stats StatsInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		log:      log,
		stats:    stats,
		insert:   defaultInsert,
	}, nil
}

func defaultInsert(ctx context.Context, repo *Repository, product *models.Product) error {
	return repo.Create(ctx, product)
}

// CreateProduct allocates the next sequential product ID and inserts the row.
// A duplicate-key rejection from a concurrent insert re-runs the allocation.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input.Nombre, input.Cantidad, input.CategoriaID); err != nil {
		return nil, err
	}

	var createdID string
	backoff := retry.WithMaxRetries(allocatorMaxRetries, retry.NewConstant(allocatorBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
			txRepo := s.repo.WithTx(tx)

			id, err := nextProductID(ctx, txRepo)
			if err != nil {
				return err
			}

			product := &models.Product{
				ID:          id,
				Name:        input.Nombre,
				Quantity:    input.Cantidad,
				Description: input.Descripcion,
				CategoryID:  input.CategoriaID,
			}
			if err := s.insert(ctx, txRepo, product); err != nil {
				if db.IsUniqueViolation(err, "productos_pkey") {
					s.log.Warn(s.log.WithProductID(ctx, id), "product id collision, reallocating")
					return retry.RetryableError(err)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
			}
			createdID = id
			return nil
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	s.invalidateStats(ctx)
	return s.loadRecord(ctx, createdID)
}

// nextProductID computes the next sequential ID. The candidate is re-checked
// for existence; on a hit the next number up is used instead, matching the
// historical allocation order.
func nextProductID(ctx context.Context, repo *Repository) (string, error) {
	ids, err := repo.ListIDs(ctx)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product ids")
	}

	id, err := chooseProductID(maxProductNumber(ids), func(candidate string) (bool, error) {
		return repo.ExistsByID(ctx, candidate)
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product id")
	}
	return id, nil
}

// GetProduct fetches a product joined with its category name.
func (s *service) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	return s.loadRecord(ctx, id)
}

// ListProducts lists hydrated products ordered by ID.
func (s *service) ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	records, err := s.repo.ListRecords(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	dtos := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, *newProductDTO(record))
	}
	return dtos, nil
}

// UpdateProduct replaces the mutable fields of an existing product.
func (s *service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input.Nombre, input.Cantidad, input.CategoriaID); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	product.Name = input.Nombre
	product.Quantity = input.Cantidad
	product.Description = input.Descripcion
	product.CategoryID = input.CategoriaID

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	s.invalidateStats(ctx)
	return s.loadRecord(ctx, id)
}

// DeleteProduct removes a product row.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
	}

	s.invalidateStats(ctx)
	return nil
}

// AdjustQuantity applies a signed stock change, clamping the result at zero.
// Over-decrements succeed and leave the quantity at zero.
func (s *service) AdjustQuantity(ctx context.Context, id string, change int) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	next := product.Quantity + change
	if next < 0 {
		next = 0
	}

	if err := s.repo.UpdateQuantity(ctx, id, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update quantity")
	}

	s.invalidateStats(ctx)
	return s.loadRecord(ctx, id)
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	s.stats.InvalidateStats(ctx)
}

func (s *service) loadRecord(ctx context.Context, id string) (*ProductDTO, error) {
	record, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto no encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return newProductDTO(*record), nil
}

func validateProductInput(nombre string, cantidad, categoriaID int) error {
	if strings.TrimSpace(nombre) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "el nombre del producto es obligatorio")
	}
	if cantidad < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "la cantidad no puede ser negativa")
	}
	if categoriaID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "la categoría es obligatoria")
	}
	return nil
}
