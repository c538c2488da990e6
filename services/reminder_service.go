// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"groompro-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// RunResult is the aggregate outcome of one daily reminder run, consumed by
// the scheduler and operational tooling.
type RunResult struct {
	EligibleCount int      `json:"eligibleCount"`
	SentCount     int      `json:"sentCount"`
	SkippedCount  int      `json:"skippedCount"`
	Errors        []string `json:"errors"`
}

// ReminderService orchestrates the daily breed-based grooming reminder run:
// evaluation, suppression, channel selection, send, and logging.
type ReminderService struct {
	db        *gorm.DB
	evaluator *EligibilityEvaluator
	rules     *SuppressionRules
	logs      *NotificationLogStore
	email     EmailSender
	sms       SMSSender
	baseURL   string

	now func() time.Time
}

func NewReminderService(db *gorm.DB, email EmailSender, sms SMSSender, logs *NotificationLogStore) *ReminderService {
	baseURL := os.Getenv("BOOKING_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	return &ReminderService{
		db:        db,
		evaluator: NewEligibilityEvaluator(db),
		rules:     NewSuppressionRules(db),
		logs:      logs,
		email:     email,
		sms:       sms,
		baseURL:   baseURL,
		now:       time.Now,
	}
}

// NewReminderServiceFromEnv wires the channel adapters chosen by
// NOTIFY_PROVIDER at startup
func NewReminderServiceFromEnv(db *gorm.DB) *ReminderService {
	return NewReminderService(db, NewEmailSenderFromEnv(), NewSMSSenderFromEnv(), NewNotificationLogStore(db))
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		result := s.RunDailyReminders()
		log.Printf("[REMINDER] daily run: eligible=%d sent=%d skipped=%d errors=%d",
			result.EligibleCount, result.SentCount, result.SkippedCount, len(result.Errors))
		for _, e := range result.Errors {
			log.Printf("[REMINDER] error: %s", e)
		}
	})

	c.Start()
	log.Println("Reminder scheduler started")
}

// RunDailyReminders performs one full reminder run. Nothing escapes as a
// panic or error; all failure is captured in the returned RunResult.
func (s *ReminderService) RunDailyReminders() RunResult {
	now := s.now()
	result := RunResult{Errors: []string{}}

	candidates, err := s.evaluator.DueCandidates(now)
	if err != nil {
		result.Errors = append(result.Errors, "fetch candidates: "+err.Error())
		return result
	}
	result.EligibleCount = len(candidates)

	for _, cand := range candidates {
		if err := s.processCandidate(now, cand, &result); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("pet %s (%s): %v", cand.PetName, cand.PetID, err))
		}
	}

	return result
}

// processCandidate handles a single pet. A panic here must never abort the
// run, so it is recovered into the returned error.
func (s *ReminderService) processCandidate(now time.Time, cand Candidate, result *RunResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	reason, err := s.rules.Check(now, cand)
	if err != nil {
		return err
	}
	if reason != "" {
		result.SkippedCount++
		log.Printf("Skipping reminder for pet %s: %s", cand.PetName, reason)
		return nil
	}

	attempts, err := s.rules.PriorAttempts(cand.CustomerID, cand.PetID, now)
	if err != nil {
		return err
	}

	trackingID := uuid.NewString()
	bookingLink := s.BookingLink(cand.PetID, trackingID)

	// Email is opt-out, SMS is opt-in. Each channel attempt logs its own
	// outcome; a failure on one never blocks the other.
	if cand.Email != "" && cand.EmailPromotional {
		s.sendEmail(cand, trackingID, bookingLink)
	}
	if cand.Phone != "" && cand.SMSPromotional {
		s.sendSMS(cand, trackingID, bookingLink)
	}

	// One send record per dispatch, regardless of channel outcomes. This
	// consumes one of the two allowed attempts even when every channel
	// failed; see DESIGN.md.
	send := models.CampaignSend{
		PetID:        cand.PetID,
		CustomerID:   cand.CustomerID,
		TrackingID:   trackingID,
		AttemptCount: int(attempts) + 1,
		SentAt:       now,
	}
	if err := s.db.Create(&send).Error; err != nil {
		return fmt.Errorf("record send: %w", err)
	}

	result.SentCount++
	return nil
}

// BookingLink builds the deep link that correlates a later booking back to
// this reminder
func (s *ReminderService) BookingLink(petID uuid.UUID, trackingID string) string {
	return fmt.Sprintf("%s/book?petId=%s&ref=%s", s.baseURL, petID, trackingID)
}

func (s *ReminderService) sendEmail(cand Candidate, trackingID, bookingLink string) {
	body := RenderMessage(
		ResolveReminderMessage(cand.BreedName, cand.CustomReminderMessage, models.ChannelEmail),
		cand.PetName, bookingLink)
	subject := fmt.Sprintf("Time for %s's next groom", cand.PetName)

	entry := models.NotificationLog{
		CustomerID: &cand.CustomerID,
		Type:       "reminder",
		Channel:    models.ChannelEmail,
		Recipient:  cand.Email,
		TrackingID: trackingID,
		Body:       body,
		Status:     models.NotificationPending,
	}

	messageID, err := s.email.Send(cand.Email, subject, body)
	if err != nil {
		log.Printf("Failed to email %s: %v", cand.Email, err)
		entry.Status = models.NotificationFailed
		entry.ErrorMessage = err.Error()
	} else {
		entry.Status = models.NotificationSent
		entry.MessageID = messageID
		sentAt := time.Now()
		entry.SentAt = &sentAt
	}

	if err := s.logs.Create(&entry); err != nil {
		log.Printf("Failed to log email reminder for customer %s: %v", cand.CustomerID, err)
	}
}

func (s *ReminderService) sendSMS(cand Candidate, trackingID, bookingLink string) {
	body := RenderMessage(
		ResolveReminderMessage(cand.BreedName, cand.CustomReminderMessage, models.ChannelSMS),
		cand.PetName, bookingLink)

	entry := models.NotificationLog{
		CustomerID: &cand.CustomerID,
		Type:       "reminder",
		Channel:    models.ChannelSMS,
		Recipient:  cand.Phone,
		TrackingID: trackingID,
		Body:       body,
		Status:     models.NotificationPending,
	}

	messageID, err := s.sms.Send(cand.Phone, body)
	if err != nil {
		log.Printf("Failed to text %s: %v", cand.Phone, err)
		entry.Status = models.NotificationFailed
		entry.ErrorMessage = err.Error()
	} else {
		entry.Status = models.NotificationSent
		entry.MessageID = messageID
		sentAt := time.Now()
		entry.SentAt = &sentAt
	}

	if err := s.logs.Create(&entry); err != nil {
		log.Printf("Failed to log SMS reminder for customer %s: %v", cand.CustomerID, err)
	}
}
