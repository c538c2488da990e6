// services/messages_test.go
package services

import (
	"testing"

	"groompro-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveReminderMessageCustomWins(t *testing.T) {
	custom := "Our salon misses [PetName]! Book at [BookingLink]"
	assert.Equal(t, custom, ResolveReminderMessage("Golden Retriever", custom, models.ChannelEmail))
	assert.Equal(t, custom, ResolveReminderMessage("Unknown Breed", custom, models.ChannelSMS))
}

func TestResolveReminderMessageExactMatch(t *testing.T) {
	msg := ResolveReminderMessage("Golden Retriever", "", models.ChannelEmail)
	assert.Contains(t, msg, "golden coat")

	// Case and surrounding whitespace must not matter
	assert.Equal(t, msg, ResolveReminderMessage("  GOLDEN retriever ", "", models.ChannelEmail))
}

func TestResolveReminderMessageSubstringMatch(t *testing.T) {
	assert.Contains(t, ResolveReminderMessage("Standard Poodle", "", models.ChannelEmail), "curls")
	assert.Contains(t, ResolveReminderMessage("Goldendoodle", "", models.ChannelEmail), "Doodle coats")
	assert.Contains(t, ResolveReminderMessage("Yorkshire Terrier", "", models.ChannelEmail), "wiry coat")
	assert.Contains(t, ResolveReminderMessage("Miniature Schnauzer", "", models.ChannelEmail), "beard")
}

func TestResolveReminderMessageDefaultFallback(t *testing.T) {
	msg := ResolveReminderMessage("Great Dane", "", models.ChannelEmail)
	assert.Contains(t, msg, "It's been a while")
	assert.Contains(t, msg, "[PetName]")
	assert.Contains(t, msg, "[BookingLink]")
}

func TestResolveReminderMessagePerChannel(t *testing.T) {
	email := ResolveReminderMessage("Siberian Husky", "", models.ChannelEmail)
	sms := ResolveReminderMessage("Siberian Husky", "", models.ChannelSMS)
	assert.NotEqual(t, email, sms)
	assert.Less(t, len(sms), len(email))
}

func TestRenderMessage(t *testing.T) {
	out := RenderMessage("Hi! [PetName] is due. Book: [BookingLink]", "Max", "https://book.example.com/book?ref=abc")
	assert.Equal(t, "Hi! Max is due. Book: https://book.example.com/book?ref=abc", out)
	assert.NotContains(t, out, "[PetName]")
	assert.NotContains(t, out, "[BookingLink]")
}
