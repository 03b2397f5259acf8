package product

import (
	"context"
	"strings"
	"time"

	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db/models"
	"gorm.io/gorm"
)

// ListFilters narrows the product listing.
type ListFilters struct {
	CategoryID *int
	Search     string
	LowStock   bool
}

// LowStockThreshold marks the quantity at or below which a product counts as
// low on stock.
const LowStockThreshold = 10

const hydratedSelect = `
p.id AS id,
p.nombre AS name,
p.cantidad AS quantity,
p.descripcion AS description,
p.categoria_id AS category_id,
p.fecha_creacion AS created_at,
c.nombre AS category_name
`

// productRecord is a product row joined with its category name.
type productRecord struct {
	ID           string
	Name         string
	Quantity     int
	Description  *string
	CategoryID   int
	CreatedAt    time.Time
	CategoryName string
}

// Repository wires together product persistence helpers.
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

// FindByID loads the bare product row.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetRecord loads a product joined with its category name.
func (r *Repository) GetRecord(ctx context.Context, id string) (*productRecord, error) {
	var record productRecord
	err := r.db.WithContext(ctx).
		Table("productos p").
		Select(hydratedSelect).
		Joins("JOIN categorias c ON c.id = p.categoria_id").
		Where("p.id = ?", id).
		Take(&record).
		Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecords lists hydrated products ordered by ID, applying the filters.
func (r *Repository) ListRecords(ctx context.Context, filters ListFilters) ([]productRecord, error) {
	qb := r.db.WithContext(ctx).
		Table("productos p").
		Select(hydratedSelect).
		Joins("JOIN categorias c ON c.id = p.categoria_id")

	if filters.CategoryID != nil {
		qb = qb.Where("c.id = ?", *filters.CategoryID)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filters.Search)) + "%"
		qb = qb.Where(
			"(LOWER(p.nombre) LIKE ? OR LOWER(p.id) LIKE ? OR LOWER(c.nombre) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	if filters.LowStock {
		qb = qb.Where("p.cantidad <= ?", LowStockThreshold)
	}

	var records []productRecord
	if err := qb.Order("p.id").Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListIDs returns every allocator-shaped product ID.
func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id LIKE ?", idPrefix+"%").
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ExistsByID reports whether a product row with the given ID exists.
func (r *Repository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update rewrites the mutable columns of an existing product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"nombre":       product.Name,
			"cantidad":     product.Quantity,
			"descripcion":  product.Description,
			"categoria_id": product.CategoryID,
		}).
		Error
}

// UpdateQuantity writes the stored quantity for a product.
func (r *Repository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("cantidad", quantity).
		Error
}

// Delete removes a product row and reports how many rows went away.
func (r *Repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return res.RowsAffected, res.Error
}
