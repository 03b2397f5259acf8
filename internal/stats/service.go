package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/cpinopacheco/sistema-inventario-BD/pkg/errors"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
)

const cacheKeySuffix = "estadisticas"

// CategoryCount is one per-category entry of the statistics payload.
type CategoryCount struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}

// StatsDTO is the aggregate statistics payload.
type StatsDTO struct {
	TotalProductos int             `json:"totalProductos"`
	TotalStock     int             `json:"totalStock"`
	StockBajo      int             `json:"stockBajo"`
	PorCategoria   []CategoryCount `json:"porCategoria"`
}

// Cache is the short-TTL aggregate cache surface. Satisfied by pkg/redis.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Service exposes the inventory statistics read path. InvalidateStats is
// called by the product and category services after every write so cached
// aggregates never outlive a mutation.
type Service interface {
	GetStats(ctx context.Context) (*StatsDTO, error)
	InvalidateStats(ctx context.Context)
}

// service implements the statistics service. The cache is optional; without
// one every request recomputes the aggregates.
type service struct {
	repo     *Repository
	cache    Cache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewService constructs a statistics service instance. cache may be nil.
func NewService(repo *Repository, cache Cache, cacheTTL time.Duration, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stats repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, log: log}, nil
}

// GetStats returns inventory aggregates, served from cache when fresh.
func (s *service) GetStats(ctx context.Context) (*StatsDTO, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	totalProducts, totalStock, lowStock, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load inventory totals")
	}

	perCategory, err := s.repo.PerCategory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load per-category counts")
	}
	if perCategory == nil {
		perCategory = []CategoryCount{}
	}

	dto := &StatsDTO{
		TotalProductos: int(totalProducts),
		TotalStock:     int(totalStock),
		StockBajo:      int(lowStock),
		PorCategoria:   perCategory,
	}

	s.toCache(ctx, dto)
	return dto, nil
}

// InvalidateStats drops the cached aggregates. Best effort; the next GetStats
// recomputes from the database either way once the TTL expires.
func (s *service) InvalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.CacheKey(cacheKeySuffix)); err != nil {
		s.log.Warn(ctx, "failed to invalidate cached statistics")
	}
}

func (s *service) fromCache(ctx context.Context) *StatsDTO {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, s.cache.CacheKey(cacheKeySuffix))
	if err != nil {
		return nil
	}

	var dto StatsDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		s.log.Warn(ctx, "discarding malformed cached statistics")
		return nil
	}
	return &dto
}

func (s *service) toCache(ctx context.Context, dto *StatsDTO) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey(cacheKeySuffix), string(raw), s.cacheTTL); err != nil {
		s.log.Warn(ctx, "failed to cache statistics")
	}
}
