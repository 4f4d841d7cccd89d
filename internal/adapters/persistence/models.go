package persistence

import "time"

// RouteCacheModel stores a normalized route response keyed by its rounded
// endpoint coordinates. The payload is the canonical route JSON.
type RouteCacheModel struct {
	ID         uint   `gorm:"primaryKey"`
	CacheKey   string `gorm:"uniqueIndex;size:64;not null"`
	Payload    []byte `gorm:"not null"`
	TotalMiles float64
	TotalHours float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (RouteCacheModel) TableName() string {
	return "route_cache"
}
