package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openfleet/eldsim/internal/domain/routing"
	"github.com/openfleet/eldsim/internal/domain/shared"
)

// GormRouteCacheRepository implements routing.RouteCache on a gorm database.
// Entries older than the TTL read as misses; a zero TTL never expires.
type GormRouteCacheRepository struct {
	db    *gorm.DB
	clock shared.Clock
	ttl   time.Duration
}

// NewGormRouteCacheRepository creates a repository. A nil clock uses the
// real clock.
func NewGormRouteCacheRepository(db *gorm.DB, clock shared.Clock, ttl time.Duration) *GormRouteCacheRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormRouteCacheRepository{db: db, clock: clock, ttl: ttl}
}

// Get returns the cached route for key, or a miss when absent or stale.
func (r *GormRouteCacheRepository) Get(ctx context.Context, key string) (*routing.Route, bool, error) {
	var model RouteCacheModel
	err := r.db.WithContext(ctx).Where("cache_key = ?", key).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read route cache: %w", err)
	}

	if r.ttl > 0 && r.clock.Now().Sub(model.UpdatedAt) > r.ttl {
		return nil, false, nil
	}

	var route routing.Route
	if err := json.Unmarshal(model.Payload, &route); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached route: %w", err)
	}
	return &route, true, nil
}

// Put upserts the route under key.
func (r *GormRouteCacheRepository) Put(ctx context.Context, key string, route *routing.Route) error {
	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("failed to encode route for cache: %w", err)
	}

	now := r.clock.Now()
	model := RouteCacheModel{
		CacheKey:   key,
		Payload:    payload,
		TotalMiles: route.TotalMiles,
		TotalHours: route.TotalHours,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "total_miles", "total_hours", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to write route cache: %w", err)
	}
	return nil
}
