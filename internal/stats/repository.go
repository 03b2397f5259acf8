package stats

import (
	"context"

	product "github.com/cpinopacheco/sistema-inventario-BD/internal/products"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db/models"
	"gorm.io/gorm"
)

const perCategoryQuery = `
SELECT c.nombre AS nombre, COUNT(p.id) AS cantidad
FROM categorias c
LEFT JOIN productos p ON c.id = p.categoria_id
GROUP BY c.nombre
ORDER BY cantidad DESC
`

// Repository computes inventory aggregates.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Totals loads the product count, stock sum, and low-stock count.
func (r *Repository) Totals(ctx context.Context) (totalProducts, totalStock, lowStock int64, err error) {
	qb := r.db.WithContext(ctx).Model(&models.Product{})

	if err = qb.Count(&totalProducts).Error; err != nil {
		return 0, 0, 0, err
	}

	var sum struct{ Total int64 }
	err = r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("COALESCE(SUM(cantidad), 0) AS total").
		Scan(&sum).
		Error
	if err != nil {
		return 0, 0, 0, err
	}
	totalStock = sum.Total

	err = r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("cantidad <= ?", product.LowStockThreshold).
		Count(&lowStock).
		Error
	if err != nil {
		return 0, 0, 0, err
	}

	return totalProducts, totalStock, lowStock, nil
}

// PerCategory counts products per category, empty categories included,
// ordered by count descending.
func (r *Repository) PerCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	if err := r.db.WithContext(ctx).Raw(perCategoryQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
