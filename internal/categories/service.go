package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db/models"
	pkgerrors "github.com/cpinopacheco/sistema-inventario-BD/pkg/errors"
	"gorm.io/gorm"
)

// CategoryDTO is the API representation of a category.
type CategoryDTO struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// Service exposes category management operations.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	GetCategory(ctx context.Context, id int) (*CategoryDTO, error)
	CreateCategory(ctx context.Context, nombre string) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id int, nombre string) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id int) error
}

// StatsInvalidator drops cached inventory aggregates after a write.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context)
}

// service implements the category service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	stats    StatsInvalidator
}

// NewService constructs a category service instance. stats may be nil when no
// aggregate cache is configured.
func NewService(repo *Repository, dbClient *db.Client, stats StatsInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, stats: stats}, nil
}

// ListCategories returns all categories ordered by name.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}

	dtos := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, CategoryDTO{ID: row.ID, Nombre: row.Name})
	}
	return dtos, nil
}

// GetCategory fetches a single category by ID.
func (s *service) GetCategory(ctx context.Context, id int) (*CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "categoría no encontrada")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return &CategoryDTO{ID: category.ID, Nombre: category.Name}, nil
}

// CreateCategory inserts a new category. Duplicate names are rejected by an
// explicit pre-check before the insert.
func (s *service) CreateCategory(ctx context.Context, nombre string) (*CategoryDTO, error) {
	if strings.TrimSpace(nombre) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el nombre de la categoría es obligatorio")
	}

	taken, err := s.repo.NameExists(ctx, nombre, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check category name")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "ya existe una categoría con ese nombre")
	}

	category := &models.Category{Name: nombre}
	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "categorias_nombre_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "ya existe una categoría con ese nombre")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}

	s.invalidateStats(ctx)
	return &CategoryDTO{ID: category.ID, Nombre: category.Name}, nil
}

// UpdateCategory renames a category. The duplicate pre-check excludes the
// category being renamed, so saving an unchanged name succeeds.
func (s *service) UpdateCategory(ctx context.Context, id int, nombre string) (*CategoryDTO, error) {
	if strings.TrimSpace(nombre) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el nombre de la categoría es obligatorio")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "categoría no encontrada")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}

	taken, err := s.repo.NameExists(ctx, nombre, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check category name")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "ya existe otra categoría con ese nombre")
	}

	if err := s.repo.UpdateName(ctx, id, nombre); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}

	s.invalidateStats(ctx)
	return &CategoryDTO{ID: id, Nombre: nombre}, nil
}

// DeleteCategory removes a category. Deletion is refused while products still
// reference it; the count check and delete run in one transaction.
func (s *service) DeleteCategory(ctx context.Context, id int) error {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		count, err := txRepo.CountProducts(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count category products")
		}
		if count > 0 {
			return pkgerrors.New(pkgerrors.CodeValidation,
				"no se puede eliminar la categoría porque tiene productos asociados")
		}

		affected, err := txRepo.Delete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "categoría no encontrada")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	s.stats.InvalidateStats(ctx)
}
