// services/suppression_test.go
package services

import (
	"testing"
	"time"

	"groompro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func candidateFor(customer models.Customer, pet models.Pet) Candidate {
	return Candidate{
		PetID:            pet.ID,
		PetName:          pet.Name,
		CustomerID:       customer.ID,
		Email:            customer.Email,
		Phone:            customer.Phone,
		EmailPromotional: customer.EmailPromotional,
		SMSPromotional:   customer.SMSPromotional,
	}
}

func seedSend(t *testing.T, db *gorm.DB, customer models.Customer, pet models.Pet, sentAt time.Time) {
	t.Helper()
	send := models.CampaignSend{
		PetID:      pet.ID,
		CustomerID: customer.ID,
		TrackingID: "trk-" + pet.Name + sentAt.Format("20060102150405.000"),
		SentAt:     sentAt,
	}
	require.NoError(t, db.Create(&send).Error)
}

func TestCheckSuppressesUpcomingAppointment(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Golden Retriever", 8)
	pet := seedPet(t, db, customer, breed, "Max")

	// Already booked five days out, no reminder needed
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, 5), models.AppointmentConfirmed)

	reason, err := NewSuppressionRules(db).Check(testToday, candidateFor(customer, pet))
	require.NoError(t, err)
	assert.Equal(t, SuppressUpcomingAppointment, reason)
}

func TestCheckSuppressesFarFutureBooking(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Poodle", 4)
	pet := seedPet(t, db, customer, breed, "Bella")

	// The first rule has no window; a booking two months out still counts
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, 60), models.AppointmentPending)

	reason, err := NewSuppressionRules(db).Check(testToday, candidateFor(customer, pet))
	require.NoError(t, err)
	assert.Equal(t, SuppressUpcomingAppointment, reason)
}

func TestCheckSuppressesNearTermInProgress(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Shih Tzu", 4)
	pet := seedPet(t, db, customer, breed, "Luna")

	// in_progress is not in the first rule's status set, so this exercises
	// the 14-day rule on its own
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, 3), models.AppointmentInProgress)

	reason, err := NewSuppressionRules(db).Check(testToday, candidateFor(customer, pet))
	require.NoError(t, err)
	assert.Equal(t, SuppressNearTermAppointment, reason)
}

func TestCheckIgnoresCancelledAndPastAppointments(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Siberian Husky", 12)
	pet := seedPet(t, db, customer, breed, "Cooper")

	seedAppointment(t, db, pet, testToday.AddDate(0, 0, 2), models.AppointmentCancelled)
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, -10), models.AppointmentCompleted)

	reason, err := NewSuppressionRules(db).Check(testToday, candidateFor(customer, pet))
	require.NoError(t, err)
	assert.Empty(t, reason)
}

func TestCheckSuppressesAttemptLimit(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Cocker Spaniel", 6)
	pet := seedPet(t, db, customer, breed, "Daisy")

	seedSend(t, db, customer, pet, testToday.AddDate(0, 0, -20))
	seedSend(t, db, customer, pet, testToday.AddDate(0, 0, -5))

	rules := NewSuppressionRules(db)
	reason, err := rules.Check(testToday, candidateFor(customer, pet))
	require.NoError(t, err)
	assert.Equal(t, SuppressAttemptLimit, reason)

	attempts, err := rules.PriorAttempts(customer.ID, pet.ID, testToday)
	require.NoError(t, err)
	assert.EqualValues(t, 2, attempts)
}

func TestCheckAttemptLimitWindowRollsOff(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Miniature Schnauzer", 6)
	pet := seedPet(t, db, customer, breed, "Milo")

	// One send inside the window, one aged out of it
	seedSend(t, db, customer, pet, testToday.AddDate(0, 0, -35))
	seedSend(t, db, customer, pet, testToday.AddDate(0, 0, -10))

	reason, err := NewSuppressionRules(db).Check(testToday, candidateFor(customer, pet))
	require.NoError(t, err)
	assert.Empty(t, reason)
}

func TestCheckAttemptLimitScopedToPet(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Poodle", 4)
	pet := seedPet(t, db, customer, breed, "Bella")
	other := seedPet(t, db, customer, breed, "Rosie")

	// Sends for a sibling pet never count against this one
	seedSend(t, db, customer, other, testToday.AddDate(0, 0, -10))
	seedSend(t, db, customer, other, testToday.AddDate(0, 0, -4))

	reason, err := NewSuppressionRules(db).Check(testToday, candidateFor(customer, pet))
	require.NoError(t, err)
	assert.Empty(t, reason)
}

func TestCheckSuppressesWhenNoChannelEnabled(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, false, false)
	breed := seedBreed(t, db, "Golden Retriever", 8)
	pet := seedPet(t, db, customer, breed, "Max")

	reason, err := NewSuppressionRules(db).Check(testToday, candidateFor(customer, pet))
	require.NoError(t, err)
	assert.Equal(t, SuppressNoChannel, reason)
}

func TestCheckRuleOrderShortCircuits(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, false, false)
	breed := seedBreed(t, db, "Poodle", 4)
	pet := seedPet(t, db, customer, breed, "Charlie")

	// Both the upcoming-appointment rule and the no-channel rule apply;
	// the earlier one must win.
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, 4), models.AppointmentConfirmed)

	reason, err := NewSuppressionRules(db).Check(testToday, candidateFor(customer, pet))
	require.NoError(t, err)
	assert.Equal(t, SuppressUpcomingAppointment, reason)
}
