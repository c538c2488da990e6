// models/campaign_send.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignSend is the durable record of one reminder dispatch attempt for a
// (customer, pet) pair. Rows are created once per dispatch and updated only
// to attach a booking id when the reminder converts. Never deleted.
type CampaignSend struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	PetID      uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	TrackingID   string `gorm:"uniqueIndex;not null"`
	AttemptCount int    `gorm:"default:1"`

	SentAt    time.Time  `gorm:"index"`
	BookingID *uuid.UUID `gorm:"type:uuid;index"`

	gorm.Model
}

func (s *CampaignSend) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
