package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Breed is static reference data, edited rarely by admins
type Breed struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"uniqueIndex;not null"`

	GroomingFrequencyWeeks int    `gorm:"not null"`
	CustomReminderMessage  string `gorm:"type:text"`

	gorm.Model
}

func (b *Breed) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
