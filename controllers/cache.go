// controllers/cache.go
package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// getCachedAnalytics loads a cached payload into out if present and fresh
func getCachedAnalytics(key string, out interface{}) bool {
	var entry models.AnalyticsCacheEntry
	err := config.DB.Where("key = ?", key).First(&entry).Error
	if err != nil {
		return false
	}
	if time.Now().After(entry.ExpiresAt) {
		return false
	}
	return json.Unmarshal([]byte(entry.Value), out) == nil
}

// setCachedAnalytics stores a payload under key with a TTL
func setCachedAnalytics(key string, payload interface{}, ttl time.Duration) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	var entry models.AnalyticsCacheEntry
	err = config.DB.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.AnalyticsCacheEntry{
			Key:       key,
			Value:     string(data),
			ExpiresAt: time.Now().Add(ttl),
		}
		config.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
		return
	}
	if err != nil {
		return
	}

	config.DB.Model(&entry).Updates(map[string]interface{}{
		"value":      string(data),
		"expires_at": time.Now().Add(ttl),
	})
}
