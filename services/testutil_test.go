// services/testutil_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"groompro-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Fixed clock for reminder tests. A Monday at 9 AM, matching the cron slot.
var testToday = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Pet{},
		&models.Breed{},
		&models.Appointment{},
		&models.CampaignSend{},
		&models.NotificationLog{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, emailPromo, smsPromo bool) models.Customer {
	t.Helper()

	customer := models.Customer{
		Name:             "Jordan Blake",
		Email:            "jordan@example.com",
		Phone:            "+15550001111",
		EmailPromotional: emailPromo,
		SMSPromotional:   smsPromo,
		IsActive:         true,
		ReferralCode:     uuid.NewString(),
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedBreed(t *testing.T, db *gorm.DB, name string, weeks int) models.Breed {
	t.Helper()

	breed := models.Breed{Name: name, GroomingFrequencyWeeks: weeks}
	require.NoError(t, db.Create(&breed).Error)
	return breed
}

func seedPet(t *testing.T, db *gorm.DB, customer models.Customer, breed models.Breed, name string) models.Pet {
	t.Helper()

	pet := models.Pet{
		CustomerID: customer.ID,
		BreedID:    &breed.ID,
		Name:       name,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&pet).Error)
	return pet
}

func seedAppointment(t *testing.T, db *gorm.DB, pet models.Pet, scheduledAt time.Time, status string) models.Appointment {
	t.Helper()

	appt := models.Appointment{
		PetID:       pet.ID,
		CustomerID:  pet.CustomerID,
		ScheduledAt: scheduledAt,
		Status:      status,
		TotalPrice:  85,
	}
	require.NoError(t, db.Create(&appt).Error)
	return appt
}

// seedDuePet creates a customer, breed, pet and a completed groom timed so
// the pet's next due date lands exactly seven days after testToday.
func seedDuePet(t *testing.T, db *gorm.DB, breedName string, weeks int, emailPromo, smsPromo bool) (models.Customer, models.Pet) {
	t.Helper()

	customer := seedCustomer(t, db, emailPromo, smsPromo)
	breed := seedBreed(t, db, breedName, weeks)
	pet := seedPet(t, db, customer, breed, "Max")
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, 7-weeks*7), models.AppointmentCompleted)
	return customer, pet
}

func newTestReminderService(t *testing.T, db *gorm.DB) (*ReminderService, *MockEmailSender, *MockSMSSender) {
	t.Helper()

	email := &MockEmailSender{}
	sms := &MockSMSSender{}
	logs := NewNotificationLogStore(db)
	t.Cleanup(logs.Close)

	svc := NewReminderService(db, email, sms, logs)
	svc.baseURL = "https://book.example.com"
	svc.now = func() time.Time { return testToday }
	return svc, email, sms
}
