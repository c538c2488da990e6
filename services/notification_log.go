// services/notification_log.go
package services

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"groompro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fields the log store will accept in an update. Everything else on a log
// entry is immutable once written.
var allowedLogUpdateFields = map[string]bool{
	"status":        true,
	"error_message": true,
	"message_id":    true,
	"retry_count":   true,
	"sent_at":       true,
	"delivered_at":  true,
	"clicked_at":    true,
}

type logUpdate struct {
	id     uuid.UUID
	fields map[string]interface{}
}

// NotificationLogStore wraps the notifications log table. Delivery-event
// backfill goes through a bounded async queue so provider callbacks never
// block on the database; dropped writes are counted rather than silently
// swallowed.
type NotificationLogStore struct {
	db      *gorm.DB
	updates chan logUpdate
	dropped atomic.Int64
	once    sync.Once
	done    chan struct{}
}

func NewNotificationLogStore(db *gorm.DB) *NotificationLogStore {
	s := &NotificationLogStore{
		db:      db,
		updates: make(chan logUpdate, 256),
		done:    make(chan struct{}),
	}
	go s.runUpdater()
	return s
}

func (s *NotificationLogStore) runUpdater() {
	for {
		select {
		case u := <-s.updates:
			if err := s.Update(u.id, u.fields); err != nil {
				s.dropped.Add(1)
				log.Printf("Failed async log update for %s: %v", u.id, err)
			}
		case <-s.done:
			return
		}
	}
}

func (s *NotificationLogStore) Create(entry *models.NotificationLog) error {
	return s.db.Create(entry).Error
}

// Update applies a restricted set of fields to an existing entry
func (s *NotificationLogStore) Update(id uuid.UUID, fields map[string]interface{}) error {
	filtered := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if allowedLogUpdateFields[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return errors.New("no updatable fields provided")
	}
	return s.db.Model(&models.NotificationLog{}).Where("id = ?", id).Updates(filtered).Error
}

// EnqueueUpdate queues an update without blocking the caller. If the queue
// is full the write is dropped and counted.
func (s *NotificationLogStore) EnqueueUpdate(id uuid.UUID, fields map[string]interface{}) {
	select {
	case s.updates <- logUpdate{id: id, fields: fields}:
	default:
		s.dropped.Add(1)
	}
}

// DroppedUpdates reports how many async updates were lost
func (s *NotificationLogStore) DroppedUpdates() int64 {
	return s.dropped.Load()
}

func (s *NotificationLogStore) Get(id uuid.UUID) (*models.NotificationLog, error) {
	var entry models.NotificationLog
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// NotificationLogFilter narrows a log query. Zero values mean "any".
type NotificationLogFilter struct {
	Type       string
	Channel    string
	Status     string
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
	IsTest     *bool
	Limit      int
	Offset     int
}

// Query returns matching entries newest-first plus the total match count
func (s *NotificationLogStore) Query(f NotificationLogFilter) ([]models.NotificationLog, int64, error) {
	q := s.db.Model(&models.NotificationLog{})

	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Channel != "" {
		q = q.Where("channel = ?", f.Channel)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	if f.IsTest != nil {
		q = q.Where("is_test = ?", *f.IsTest)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var entries []models.NotificationLog
	err := q.Order("created_at DESC").Limit(limit).Offset(f.Offset).Find(&entries).Error
	return entries, total, err
}

// Close stops the async updater
func (s *NotificationLogStore) Close() {
	s.once.Do(func() { close(s.done) })
}
