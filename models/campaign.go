package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CampaignDraft     = "draft"
	CampaignScheduled = "scheduled"
	CampaignSent      = "sent"
)

type Campaign struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"not null"`

	Channel string `gorm:"type:varchar(20);not null"` // email, sms
	Subject string
	Body    string `gorm:"type:text;not null"`
	Status  string `gorm:"type:varchar(20);default:'draft'"`

	ScheduledFor *time.Time
	SentAt       *time.Time
	SentCount    int `gorm:"default:0"`

	gorm.Model
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
