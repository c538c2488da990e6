package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Type     string    `gorm:"type:varchar(30);not null"` // reminder, report_card, booking_confirmation
	Channel  string    `gorm:"type:varchar(20);not null"` // email, sms
	Subject  string
	Message  string `gorm:"type:text;not null"`
	IsActive bool
	gorm.Model
}

func (t *NotificationTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
