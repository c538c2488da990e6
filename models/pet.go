package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	BreedID    *uuid.UUID `gorm:"type:uuid;index"`

	Name      string `gorm:"not null"`
	SizeClass string `gorm:"type:varchar(20);default:'medium'"` // small, medium, large, giant
	Notes     string

	// Pets are deactivated when retired, never hard-deleted
	IsActive bool

	Customer Customer `gorm:"foreignKey:CustomerID"`
	Breed    *Breed   `gorm:"foreignKey:BreedID"`

	gorm.Model
}

func (p *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
