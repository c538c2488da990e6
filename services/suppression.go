// services/suppression.go
package services

import (
	"time"

	"groompro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// MaxAttemptsPerWindow caps reminder sends per (customer, pet) pair
	// within the rolling attempt window
	MaxAttemptsPerWindow = 2
	AttemptWindowDays    = 30
	NearTermWindowDays   = 14
)

// Suppression reasons, surfaced in logs and run output
const (
	SuppressUpcomingAppointment = "upcoming appointment on the books"
	SuppressNearTermAppointment = "appointment within 14 days"
	SuppressAttemptLimit        = "attempt limit reached in last 30 days"
	SuppressNoChannel           = "no promotional channel enabled"
)

type SuppressionRules struct {
	db *gorm.DB
}

func NewSuppressionRules(db *gorm.DB) *SuppressionRules {
	return &SuppressionRules{db: db}
}

// Check runs the suppression rules in order and short-circuits on the first
// hit. An empty reason means the candidate survives. The first two checks
// overlap on purpose: they use different status sets and windows, and both
// must be evaluated.
func (r *SuppressionRules) Check(now time.Time, cand Candidate) (string, error) {
	// 1. Any future appointment still in motion for this pet+customer
	var upcoming int64
	err := r.db.Model(&models.Appointment{}).
		Where("pet_id = ? AND customer_id = ? AND scheduled_at >= ? AND status IN ?",
			cand.PetID, cand.CustomerID, now,
			[]string{models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCheckedIn}).
		Count(&upcoming).Error
	if err != nil {
		return "", err
	}
	if upcoming > 0 {
		return SuppressUpcomingAppointment, nil
	}

	// 2. Any non-terminal appointment for this pet in the next 14 days
	var nearTerm int64
	err = r.db.Model(&models.Appointment{}).
		Where("pet_id = ? AND scheduled_at BETWEEN ? AND ? AND status IN ?",
			cand.PetID, now, now.AddDate(0, 0, NearTermWindowDays),
			models.ActiveAppointmentStatuses).
		Count(&nearTerm).Error
	if err != nil {
		return "", err
	}
	if nearTerm > 0 {
		return SuppressNearTermAppointment, nil
	}

	// 3. Attempt count within the rolling window
	attempts, err := r.PriorAttempts(cand.CustomerID, cand.PetID, now)
	if err != nil {
		return "", err
	}
	if attempts >= MaxAttemptsPerWindow {
		return SuppressAttemptLimit, nil
	}

	// 4. No permitted channel at all
	if !cand.EmailPromotional && !cand.SMSPromotional {
		return SuppressNoChannel, nil
	}

	return "", nil
}

// PriorAttempts counts reminder send records for the (customer, pet) pair
// within the rolling attempt window
func (r *SuppressionRules) PriorAttempts(customerID, petID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.CampaignSend{}).
		Where("customer_id = ? AND pet_id = ? AND sent_at > ?",
			customerID, petID, now.AddDate(0, 0, -AttemptWindowDays)).
		Count(&count).Error
	return count, err
}
