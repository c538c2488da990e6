package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingSettings is a single-row table holding booking configuration
type BookingSettings struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	BufferMinutes         int   `gorm:"default:15"`
	MaxAppointmentsPerDay int   `gorm:"default:20"`
	LeadTimeHours         int   `gorm:"default:24"`
	WorkingHours          JSONB `gorm:"type:jsonb;default:'{}'"`

	gorm.Model
}

func (s *BookingSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

type BlockedDate struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	Date   time.Time `gorm:"index;not null"`
	Reason string

	// Recurring closures repeat every year on the same month/day
	Recurring bool `gorm:"default:false"`

	gorm.Model
}

func (b *BlockedDate) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// LoyaltySettings is a single-row table holding loyalty program configuration
type LoyaltySettings struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	PointsPerDollar     float64 `gorm:"type:decimal(5,2);default:1.0"`
	RedeemRate          float64 `gorm:"type:decimal(5,2);default:0.01"` // dollars per point
	ReferralBonusPoints int     `gorm:"default:100"`
	IsActive            bool

	gorm.Model
}

func (l *LoyaltySettings) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
