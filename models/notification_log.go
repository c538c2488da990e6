// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"

	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// NotificationLog is the append-only record of every attempted send.
// Entries are immutable once written except for delivery/click timestamp
// backfill and status updates from the provider.
type NotificationLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`

	Type      string `gorm:"type:varchar(30);index"` // reminder, campaign, report_card
	Channel   string `gorm:"type:varchar(20);index"` // email, sms
	Recipient string `gorm:"not null"`
	Status    string `gorm:"type:varchar(20);default:'pending';index"`

	MessageID    string `gorm:"index"` // provider message id
	TrackingID   string `gorm:"index"`
	Body         string `gorm:"type:text"`
	ErrorMessage string `gorm:"type:text"`
	RetryCount   int    `gorm:"default:0"`
	IsTest       bool   `gorm:"default:false"`

	SentAt      *time.Time
	DeliveredAt *time.Time
	ClickedAt   *time.Time

	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
