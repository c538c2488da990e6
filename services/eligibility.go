// services/eligibility.go
package services

import (
	"time"

	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Candidate is a pet due for a grooming reminder on the target date,
// joined with everything the dispatcher needs to act on it.
type Candidate struct {
	PetID   uuid.UUID
	PetName string

	CustomerID       uuid.UUID
	CustomerName     string
	Email            string
	Phone            string
	EmailPromotional bool
	SMSPromotional   bool

	BreedName              string
	CustomReminderMessage  string
	GroomingFrequencyWeeks int

	LastCompletedAt time.Time
}

// NextDue is the pet's computed next grooming due date (date-only)
func (c Candidate) NextDue() time.Time {
	return utils.BeginningOfDay(c.LastCompletedAt.AddDate(0, 0, c.GroomingFrequencyWeeks*7))
}

type EligibilityEvaluator struct {
	db *gorm.DB
}

func NewEligibilityEvaluator(db *gorm.DB) *EligibilityEvaluator {
	return &EligibilityEvaluator{db: db}
}

// DueCandidates returns every active pet whose next grooming due date falls
// exactly on today+7 days, compared date-only. Pets without a breed, without
// a completed appointment, or belonging to an inactive customer are excluded.
// One bulk query joins each pet to its most recent completed appointment
// (ties on scheduled_at broken by highest id); the per-pet due-date math
// happens in Go.
func (e *EligibilityEvaluator) DueCandidates(today time.Time) ([]Candidate, error) {
	target := utils.BeginningOfDay(today.AddDate(0, 0, 7))

	var rows []Candidate
	err := e.db.Raw(`
		SELECT p.id AS pet_id, p.name AS pet_name,
		       c.id AS customer_id, c.name AS customer_name, c.email, c.phone,
		       c.email_promotional, c.sms_promotional,
		       b.name AS breed_name, b.custom_reminder_message, b.grooming_frequency_weeks,
		       a.scheduled_at AS last_completed_at
		FROM pets p
		JOIN customers c ON c.id = p.customer_id AND c.is_active = ? AND c.deleted_at IS NULL
		JOIN breeds b ON b.id = p.breed_id AND b.deleted_at IS NULL
		JOIN appointments a ON a.id = (
			SELECT a2.id FROM appointments a2
			WHERE a2.pet_id = p.id AND a2.status = ? AND a2.deleted_at IS NULL
			ORDER BY a2.scheduled_at DESC, a2.id DESC
			LIMIT 1
		)
		WHERE p.is_active = ? AND p.breed_id IS NOT NULL AND p.deleted_at IS NULL
	`, true, models.AppointmentCompleted, true).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		if utils.SameDay(target, row.NextDue()) {
			candidates = append(candidates, row)
		}
	}
	return candidates, nil
}
