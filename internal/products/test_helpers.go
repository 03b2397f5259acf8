package product

import (
	"io"
	"testing"

	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db/models"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categorias := `
CREATE TABLE IF NOT EXISTS categorias (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL UNIQUE
);`
	productos := `
CREATE TABLE IF NOT EXISTS productos (
  id TEXT PRIMARY KEY,
  nombre TEXT NOT NULL,
  cantidad INTEGER NOT NULL DEFAULT 0,
  descripcion TEXT,
  categoria_id INTEGER NOT NULL,
  fecha_creacion DATETIME
);`
	require.NoError(t, conn.Exec(categorias).Error)
	require.NoError(t, conn.Exec(productos).Error)

	// The shared in-memory store survives between tests in this package.
	require.NoError(t, conn.Exec(`DELETE FROM productos`).Error)
	require.NoError(t, conn.Exec(`DELETE FROM categorias`).Error)

	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	return newTestServiceWithStats(t, conn, nil)
}

func newTestServiceWithStats(t *testing.T, conn *gorm.DB, stats StatsInvalidator) Service {
	t.Helper()

	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), log, stats)
	require.NoError(t, err)
	return svc
}

func newTestServiceWithInsert(t *testing.T, conn *gorm.DB, insert insertFunc) *service {
	t.Helper()

	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return &service{
		repo:     NewRepository(conn),
		dbClient: db.NewWithConn(conn),
		log:      log,
		insert:   insert,
	}
}

func mustCreateTestCategory(t *testing.T, conn *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	require.NoError(t, conn.Create(category).Error)
	return category
}

func mustCreateTestProduct(t *testing.T, conn *gorm.DB, id, name string, quantity, categoryID int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:         id,
		Name:       name,
		Quantity:   quantity,
		CategoryID: categoryID,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}
