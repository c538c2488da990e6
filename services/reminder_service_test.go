// services/reminder_service_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"groompro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDailyRemindersEmailOnly(t *testing.T) {
	db := openTestDB(t)
	customer, pet := seedDuePet(t, db, "Golden Retriever", 8, true, false)
	svc, email, sms := newTestReminderService(t, db)

	result := svc.RunDailyReminders()

	assert.Equal(t, 1, result.EligibleCount)
	assert.Equal(t, 1, result.SentCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Empty(t, result.Errors)

	require.Len(t, email.Messages(), 1)
	assert.Empty(t, sms.Messages())

	msg := email.Messages()[0]
	assert.Equal(t, customer.Email, msg.To)
	assert.Contains(t, msg.Subject, "Max")
	assert.Contains(t, msg.Body, "Max")
	assert.Contains(t, msg.Body, "golden coat")
	assert.Contains(t, msg.Body, fmt.Sprintf("petId=%s", pet.ID))

	var send models.CampaignSend
	require.NoError(t, db.First(&send).Error)
	assert.Equal(t, pet.ID, send.PetID)
	assert.Equal(t, customer.ID, send.CustomerID)
	assert.Equal(t, 1, send.AttemptCount)
	assert.Nil(t, send.BookingID)
	assert.Contains(t, msg.Body, "ref="+send.TrackingID)

	var logs []models.NotificationLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ChannelEmail, logs[0].Channel)
	assert.Equal(t, models.NotificationSent, logs[0].Status)
	assert.Equal(t, send.TrackingID, logs[0].TrackingID)
	assert.NotEmpty(t, logs[0].MessageID)
	assert.NotNil(t, logs[0].SentAt)
}

func TestRunDailyRemindersBothChannels(t *testing.T) {
	db := openTestDB(t)
	customer, _ := seedDuePet(t, db, "Poodle", 4, true, true)
	svc, email, sms := newTestReminderService(t, db)

	result := svc.RunDailyReminders()

	assert.Equal(t, 1, result.SentCount)
	require.Len(t, email.Messages(), 1)
	require.Len(t, sms.Messages(), 1)
	assert.Equal(t, customer.Phone, sms.Messages()[0].To)

	// Two channel attempts, still one dispatch record
	var sendCount int64
	require.NoError(t, db.Model(&models.CampaignSend{}).Count(&sendCount).Error)
	assert.EqualValues(t, 1, sendCount)

	var logCount int64
	require.NoError(t, db.Model(&models.NotificationLog{}).Count(&logCount).Error)
	assert.EqualValues(t, 2, logCount)
}

func TestRunDailyRemindersSkipsWithoutSideEffects(t *testing.T) {
	db := openTestDB(t)
	_, pet := seedDuePet(t, db, "Golden Retriever", 8, true, false)
	seedAppointment(t, db, pet, testToday.AddDate(0, 0, 5), models.AppointmentConfirmed)
	svc, email, sms := newTestReminderService(t, db)

	result := svc.RunDailyReminders()

	assert.Equal(t, 1, result.EligibleCount)
	assert.Equal(t, 0, result.SentCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Empty(t, result.Errors)

	assert.Empty(t, email.Messages())
	assert.Empty(t, sms.Messages())

	var sendCount, logCount int64
	require.NoError(t, db.Model(&models.CampaignSend{}).Count(&sendCount).Error)
	require.NoError(t, db.Model(&models.NotificationLog{}).Count(&logCount).Error)
	assert.Zero(t, sendCount)
	assert.Zero(t, logCount)
}

func TestRunDailyRemindersHonorsStoredOptOut(t *testing.T) {
	db := openTestDB(t)
	customer, _ := seedDuePet(t, db, "Golden Retriever", 8, false, false)

	// The opt-out must survive the round trip through the database
	var stored models.Customer
	require.NoError(t, db.First(&stored, "id = ?", customer.ID).Error)
	assert.False(t, stored.EmailPromotional)
	assert.False(t, stored.SMSPromotional)

	svc, email, sms := newTestReminderService(t, db)
	result := svc.RunDailyReminders()

	assert.Equal(t, 1, result.EligibleCount)
	assert.Equal(t, 0, result.SentCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Empty(t, email.Messages())
	assert.Empty(t, sms.Messages())

	var logCount int64
	require.NoError(t, db.Model(&models.NotificationLog{}).Count(&logCount).Error)
	assert.Zero(t, logCount)
}

func TestRunDailyRemindersSMSTimeoutLoggedAsFailed(t *testing.T) {
	db := openTestDB(t)
	seedDuePet(t, db, "Poodle", 4, false, true)
	svc, email, sms := newTestReminderService(t, db)
	sms.Err = fmt.Errorf("Post \"https://api.twilio.com\": context deadline exceeded")

	result := svc.RunDailyReminders()

	assert.Equal(t, 1, result.SentCount)
	assert.Empty(t, result.Errors)
	assert.Empty(t, email.Messages())

	var entry models.NotificationLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, models.ChannelSMS, entry.Channel)
	assert.Equal(t, models.NotificationFailed, entry.Status)
	assert.Contains(t, entry.ErrorMessage, "deadline exceeded")
	assert.Nil(t, entry.SentAt)
}

func TestRunDailyRemindersAttemptLimitAcrossRuns(t *testing.T) {
	db := openTestDB(t)
	seedDuePet(t, db, "Golden Retriever", 8, true, false)
	svc, email, _ := newTestReminderService(t, db)

	first := svc.RunDailyReminders()
	assert.Equal(t, 1, first.SentCount)

	second := svc.RunDailyReminders()
	assert.Equal(t, 1, second.SentCount)

	third := svc.RunDailyReminders()
	assert.Equal(t, 0, third.SentCount)
	assert.Equal(t, 1, third.SkippedCount)

	assert.Len(t, email.Messages(), 2)

	var sends []models.CampaignSend
	require.NoError(t, db.Order("attempt_count").Find(&sends).Error)
	require.Len(t, sends, 2)
	assert.Equal(t, 1, sends[0].AttemptCount)
	assert.Equal(t, 2, sends[1].AttemptCount)
	assert.NotEqual(t, sends[0].TrackingID, sends[1].TrackingID)
}

func TestRunDailyRemindersChannelFailureStillConsumesAttempt(t *testing.T) {
	db := openTestDB(t)
	seedDuePet(t, db, "Golden Retriever", 8, true, false)
	svc, email, _ := newTestReminderService(t, db)
	email.Err = fmt.Errorf("smtp: connection refused")

	result := svc.RunDailyReminders()

	// The dispatch is recorded even though the only channel failed
	assert.Equal(t, 1, result.SentCount)
	assert.Empty(t, result.Errors)

	var send models.CampaignSend
	require.NoError(t, db.First(&send).Error)
	assert.Equal(t, 1, send.AttemptCount)

	var entry models.NotificationLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, models.NotificationFailed, entry.Status)
	assert.Contains(t, entry.ErrorMessage, "connection refused")
	assert.Nil(t, entry.SentAt)
}

func TestRunDailyRemindersIsolatesPerPetFailures(t *testing.T) {
	db := openTestDB(t)

	// First pet can only be reached over SMS; wiring no SMS sender makes
	// its dispatch blow up.
	smsOnly := seedCustomer(t, db, false, true)
	breed := seedBreed(t, db, "Golden Retriever", 8)
	broken := seedPet(t, db, smsOnly, breed, "Rosie")
	seedAppointment(t, db, broken, testToday.AddDate(0, 0, -49), models.AppointmentCompleted)

	emailCustomer := models.Customer{
		Name:             "Sam Reyes",
		Email:            "sam@example.com",
		EmailPromotional: true,
		IsActive:         true,
		ReferralCode:     "REF-SAM",
	}
	require.NoError(t, db.Create(&emailCustomer).Error)
	healthy := seedPet(t, db, emailCustomer, breed, "Max")
	seedAppointment(t, db, healthy, testToday.AddDate(0, 0, -49), models.AppointmentCompleted)

	email := &MockEmailSender{}
	logs := NewNotificationLogStore(db)
	t.Cleanup(logs.Close)
	svc := NewReminderService(db, email, nil, logs)
	svc.now = func() time.Time { return testToday }

	result := svc.RunDailyReminders()

	assert.Equal(t, 2, result.EligibleCount)
	assert.Equal(t, 1, result.SentCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Rosie")
	assert.Contains(t, result.Errors[0], "panic")

	// The healthy pet's reminder went out despite the neighbour's crash
	require.Len(t, email.Messages(), 1)
	assert.Equal(t, "sam@example.com", email.Messages()[0].To)
}

func TestBookingLink(t *testing.T) {
	db := openTestDB(t)
	svc, _, _ := newTestReminderService(t, db)

	_, pet := seedDuePet(t, db, "Poodle", 4, true, false)
	link := svc.BookingLink(pet.ID, "trk-123")
	assert.Equal(t, fmt.Sprintf("https://book.example.com/book?petId=%s&ref=trk-123", pet.ID), link)
}
