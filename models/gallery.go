package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryImage struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Title    string    `gorm:"not null"`
	URL      string    `gorm:"not null"`
	Category string    `gorm:"default:'General'"`

	SortOrder int `gorm:"default:0"`
	IsActive  bool

	gorm.Model
}

func (g *GalleryImage) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}

type Banner struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Title    string    `gorm:"not null"`
	ImageURL string    `gorm:"not null"`
	LinkURL  string

	StartsAt *time.Time
	EndsAt   *time.Time
	IsActive bool

	gorm.Model
}

func (b *Banner) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
