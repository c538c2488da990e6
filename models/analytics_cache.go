// models/analytics_cache.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsCacheEntry is a key/value row caching computed dashboard and
// report payloads. Entries past ExpiresAt are treated as misses.
type AnalyticsCacheEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Key       string    `gorm:"uniqueIndex;not null"`
	Value     string    `gorm:"type:text"`
	ExpiresAt time.Time `gorm:"index"`

	gorm.Model
}

func (e *AnalyticsCacheEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
