// services/messages.go
package services

import (
	"sort"
	"strings"

	"groompro-backend/models"
)

type breedMessage struct {
	Email string
	SMS   string
}

// Built-in per-breed wording, keyed by lowercase breed keyword. Matched
// exact name first, then substring containment with the longest key first.
var breedMessages = map[string]breedMessage{
	"golden retriever": {
		Email: "Hi! [PetName]'s golden coat is due for a full groom to keep shedding under control and that feathering silky. Book here: [BookingLink]",
		SMS:   "[PetName]'s golden coat is due for a groom! Book: [BookingLink]",
	},
	"poodle": {
		Email: "Hi! [PetName]'s curls grow fast and can mat without regular trims. It's time to book the next clip: [BookingLink]",
		SMS:   "[PetName]'s curls need a trim! Book: [BookingLink]",
	},
	"doodle": {
		Email: "Hi! Doodle coats mat quickly between grooms, and [PetName] is due. Keep that fleece tangle-free: [BookingLink]",
		SMS:   "[PetName]'s doodle coat is due for a groom! Book: [BookingLink]",
	},
	"shih tzu": {
		Email: "Hi! [PetName]'s long coat needs regular care to stay comfortable. Time to book the next groom: [BookingLink]",
		SMS:   "[PetName] is due for a groom! Book: [BookingLink]",
	},
	"husky": {
		Email: "Hi! Blowing-coat season or not, [PetName]'s double coat is due for a de-shed treatment. Book here: [BookingLink]",
		SMS:   "[PetName]'s double coat is due for a de-shed! Book: [BookingLink]",
	},
	"terrier": {
		Email: "Hi! [PetName]'s wiry coat is due for hand-stripping or a tidy-up trim. Book the next visit: [BookingLink]",
		SMS:   "[PetName]'s coat is due for a tidy-up! Book: [BookingLink]",
	},
	"spaniel": {
		Email: "Hi! [PetName]'s feathered ears and coat are due for a trim before tangles set in. Book here: [BookingLink]",
		SMS:   "[PetName] is due for a trim! Book: [BookingLink]",
	},
	"schnauzer": {
		Email: "Hi! [PetName]'s beard and skirt are due for a shape-up. Book the next groom: [BookingLink]",
		SMS:   "[PetName] is due for a shape-up! Book: [BookingLink]",
	},
}

var defaultMessage = breedMessage{
	Email: "Hi! It's been a while since [PetName]'s last groom, and it's time for the next one. Book your visit here: [BookingLink]",
	SMS:   "[PetName] is due for a groom! Book: [BookingLink]",
}

// ResolveReminderMessage picks the wording for a breed and channel. A
// breed-level custom message always wins; otherwise the keyword table is
// consulted, most specific match first, falling back to the generic default.
func ResolveReminderMessage(breedName, customMessage, channel string) string {
	if customMessage != "" {
		return customMessage
	}

	name := strings.ToLower(strings.TrimSpace(breedName))
	if msg, ok := breedMessages[name]; ok {
		return messageForChannel(msg, channel)
	}

	keys := make([]string, 0, len(breedMessages))
	for k := range breedMessages {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		if strings.Contains(name, k) {
			return messageForChannel(breedMessages[k], channel)
		}
	}

	return messageForChannel(defaultMessage, channel)
}

func messageForChannel(msg breedMessage, channel string) string {
	if channel == models.ChannelSMS {
		return msg.SMS
	}
	return msg.Email
}

// RenderMessage fills in the template placeholders
func RenderMessage(message, petName, bookingLink string) string {
	message = strings.ReplaceAll(message, "[PetName]", petName)
	message = strings.ReplaceAll(message, "[BookingLink]", bookingLink)
	return message
}
