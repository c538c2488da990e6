// services/eligibility_test.go
package services

import (
	"testing"
	"time"

	"groompro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueCandidatesExactlySevenDaysOut(t *testing.T) {
	db := openTestDB(t)
	customer, pet := seedDuePet(t, db, "Golden Retriever", 8, true, false)

	candidates, err := NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	cand := candidates[0]
	assert.Equal(t, pet.ID, cand.PetID)
	assert.Equal(t, "Max", cand.PetName)
	assert.Equal(t, customer.ID, cand.CustomerID)
	assert.Equal(t, customer.Email, cand.Email)
	assert.Equal(t, "Golden Retriever", cand.BreedName)
	assert.Equal(t, 8, cand.GroomingFrequencyWeeks)
	assert.True(t, cand.EmailPromotional)
	assert.False(t, cand.SMSPromotional)

	wantDue := testToday.AddDate(0, 0, 7)
	assert.Equal(t, wantDue.Year(), cand.NextDue().Year())
	assert.Equal(t, wantDue.YearDay(), cand.NextDue().YearDay())
}

func TestDueCandidatesOffByOneDayExcluded(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Poodle", 4)

	early := seedPet(t, db, customer, breed, "Bella")
	seedAppointment(t, db, early, testToday.AddDate(0, 0, -20), models.AppointmentCompleted)

	late := seedPet(t, db, customer, breed, "Charlie")
	seedAppointment(t, db, late, testToday.AddDate(0, 0, -22), models.AppointmentCompleted)

	candidates, err := NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDueCandidatesIgnoresTimeOfDay(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Shih Tzu", 4)
	pet := seedPet(t, db, customer, breed, "Luna")

	// Completed late in the evening 21 days back; the date math must not
	// care about the hour.
	completed := testToday.AddDate(0, 0, -21).Add(14*time.Hour + 30*time.Minute)
	seedAppointment(t, db, pet, completed, models.AppointmentCompleted)

	candidates, err := NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, pet.ID, candidates[0].PetID)
}

func TestDueCandidatesUsesMostRecentCompletedGroom(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Golden Retriever", 8)
	pet := seedPet(t, db, customer, breed, "Cooper")

	// The older groom would make the pet due today+7, but the recent one
	// resets the clock.
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, -49), models.AppointmentCompleted)
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, -10), models.AppointmentCompleted)

	candidates, err := NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDueCandidatesRequiresCompletedStatus(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Poodle", 4)
	pet := seedPet(t, db, customer, breed, "Daisy")

	// Cancelled visits never reset or start the reminder clock
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, -21), models.AppointmentCancelled)

	candidates, err := NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDueCandidatesExcludesPetsWithoutBreed(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)

	pet := models.Pet{CustomerID: customer.ID, Name: "Milo", IsActive: true}
	require.NoError(t, db.Create(&pet).Error)
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, -49), models.AppointmentCompleted)

	candidates, err := NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDueCandidatesExcludesInactive(t *testing.T) {
	db := openTestDB(t)

	_, pet := seedDuePet(t, db, "Golden Retriever", 8, true, false)
	require.NoError(t, db.Model(&models.Pet{}).Where("id = ?", pet.ID).
		Update("is_active", false).Error)

	candidates, err := NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	// Reactivate the pet, deactivate the owner instead
	require.NoError(t, db.Model(&models.Pet{}).Where("id = ?", pet.ID).
		Update("is_active", true).Error)
	require.NoError(t, db.Model(&models.Customer{}).Where("id = ?", pet.CustomerID).
		Update("is_active", false).Error)

	candidates, err = NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDueCandidatesExcludesPetCreatedInactive(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, false)
	breed := seedBreed(t, db, "Golden Retriever", 8)

	// A pet retired at creation time must stay inactive after the insert
	pet := models.Pet{CustomerID: customer.ID, BreedID: &breed.ID, Name: "Buddy", IsActive: false}
	require.NoError(t, db.Create(&pet).Error)
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, -49), models.AppointmentCompleted)

	var stored models.Pet
	require.NoError(t, db.First(&stored, "id = ?", pet.ID).Error)
	assert.False(t, stored.IsActive)

	candidates, err := NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDueCandidatesPicksOnePetAmongMany(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db, true, true)
	golden := seedBreed(t, db, "Golden Retriever", 8)
	husky := seedBreed(t, db, "Siberian Husky", 12)

	due := seedPet(t, db, customer, golden, "Max")
	seedAppointment(t, db, due, testToday.AddDate(0, 0, -49), models.AppointmentCompleted)

	notDue := seedPet(t, db, customer, husky, "Rosie")
	seedAppointment(t, db, notDue, testToday.AddDate(0, 0, -30), models.AppointmentCompleted)

	candidates, err := NewEligibilityEvaluator(db).DueCandidates(testToday)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, due.ID, candidates[0].PetID)
}

func TestNextDue(t *testing.T) {
	cand := Candidate{
		GroomingFrequencyWeeks: 6,
		LastCompletedAt:        time.Date(2025, 4, 1, 16, 45, 0, 0, time.UTC),
	}
	assert.Equal(t, time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC), cand.NextDue())
}
