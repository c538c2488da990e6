package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentPending    = "pending"
	AppointmentConfirmed  = "confirmed"
	AppointmentCheckedIn  = "checked_in"
	AppointmentInProgress = "in_progress"
	AppointmentCompleted  = "completed"
	AppointmentCancelled  = "cancelled"
)

// ActiveAppointmentStatuses are the non-terminal statuses that indicate a
// booking is still in motion
var ActiveAppointmentStatuses = []string{
	AppointmentPending,
	AppointmentConfirmed,
	AppointmentCheckedIn,
	AppointmentInProgress,
}

type Appointment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	PetID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	GroomerID  *uuid.UUID `gorm:"type:uuid;index"`

	ScheduledAt time.Time `gorm:"index;not null"`
	Status      string    `gorm:"type:varchar(20);default:'pending';index"`
	TotalPrice  float64   `gorm:"type:decimal(10,2);default:0.0"`
	Notes       string

	Pet      Pet      `gorm:"foreignKey:PetID"`
	Customer Customer `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentPending, AppointmentConfirmed, AppointmentCheckedIn,
		AppointmentInProgress, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}
