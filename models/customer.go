package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Name  string `gorm:"not null"`
	Phone string `gorm:"index"`
	Email string `gorm:"index"`
	Notes string

	// Email reminders are opt-out, SMS is opt-in. No column defaults on the
	// flags: gorm omits zero-value fields with a default tag on insert, which
	// would turn a deliberate opt-out back into opted-in.
	EmailPromotional bool
	SMSPromotional   bool

	ReferralCode  string     `gorm:"uniqueIndex"`
	ReferredByID  *uuid.UUID `gorm:"type:uuid;index"`
	LoyaltyPoints int        `gorm:"default:0"`

	IsActive bool

	Pets []Pet `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// HasContactChannel reports whether any notification channel could reach
// this customer at all (either address present and permitted)
func (c *Customer) HasContactChannel() bool {
	return (c.Email != "" && c.EmailPromotional) || (c.Phone != "" && c.SMSPromotional)
}
