// services/conversion.go
package services

import (
	"errors"
	"time"

	"groompro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversionWindowDays bounds how far back a booking can be credited to a
// reminder send
const ConversionWindowDays = 30

type ConversionLinker struct {
	db *gorm.DB
}

func NewConversionLinker(db *gorm.DB) *ConversionLinker {
	return &ConversionLinker{db: db}
}

// LinkBooking attaches a booking to the reminder send that produced it.
// When the booking carries a tracking token the match is exact; otherwise
// the most recent un-converted send for the customer within the lookback
// window is credited. Finding nothing to link is not an error.
func (l *ConversionLinker) LinkBooking(customerID, bookingID uuid.UUID, trackingID string, now time.Time) (bool, error) {
	var send models.CampaignSend

	q := l.db.Where("booking_id IS NULL")
	if trackingID != "" {
		q = q.Where("tracking_id = ?", trackingID)
	} else {
		q = q.Where("customer_id = ? AND sent_at > ?",
			customerID, now.AddDate(0, 0, -ConversionWindowDays)).
			Order("sent_at DESC")
	}

	if err := q.First(&send).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := l.db.Model(&send).Update("booking_id", bookingID).Error; err != nil {
		return false, err
	}
	return true, nil
}
