package category

import (
	"context"

	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together category persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns all categories ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Order("nombre").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads a single category row.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// NameExists reports whether a category with the given name exists. A
// non-zero excludeID leaves that row out of the check, for renames.
func (r *Repository) NameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("nombre = ?", name)
	if excludeID != 0 {
		qb = qb.Where("id != ?", excludeID)
	}

	var count int64
	if err := qb.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountProducts counts the products referencing the category.
func (r *Repository) CountProducts(ctx context.Context, categoryID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("categoria_id = ?", categoryID).
		Count(&count).
		Error
	return count, err
}

// Create inserts a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// UpdateName renames an existing category.
func (r *Repository) UpdateName(ctx context.Context, id int, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Update("nombre", name).
		Error
}

// Delete removes a category row and reports how many rows went away.
func (r *Repository) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	return res.RowsAffected, res.Error
}
