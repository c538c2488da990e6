package main

import (
	"fmt"
	"log"
	"time"

	"groompro-backend/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// seedDemoData populates the database with a realistic demo fleet
func seedDemoData(db *gorm.DB) error {
	gofakeit.Seed(time.Now().UnixNano())

	breeds := []models.Breed{
		{Name: "Golden Retriever", GroomingFrequencyWeeks: 8},
		{Name: "Poodle", GroomingFrequencyWeeks: 4},
		{Name: "Labradoodle", GroomingFrequencyWeeks: 6},
		{Name: "Shih Tzu", GroomingFrequencyWeeks: 4},
		{Name: "Siberian Husky", GroomingFrequencyWeeks: 12},
		{Name: "Yorkshire Terrier", GroomingFrequencyWeeks: 6},
		{Name: "Cocker Spaniel", GroomingFrequencyWeeks: 6},
		{Name: "Miniature Schnauzer", GroomingFrequencyWeeks: 6},
	}
	for i := range breeds {
		if err := db.Where("name = ?", breeds[i].Name).FirstOrCreate(&breeds[i]).Error; err != nil {
			return fmt.Errorf("seed breed %s: %w", breeds[i].Name, err)
		}
	}

	sizes := []string{"small", "medium", "large", "giant"}
	petNames := []string{"Max", "Bella", "Charlie", "Luna", "Cooper", "Daisy", "Milo", "Rosie"}

	log.Println("seeding 50 customers with pets and appointment history")
	for i := 0; i < 50; i++ {
		customer := models.Customer{
			Name:             gofakeit.Name(),
			Phone:            "+1" + gofakeit.Numerify("##########"),
			Email:            gofakeit.Email(),
			EmailPromotional: true,
			SMSPromotional:   gofakeit.Bool(),
			IsActive:         true,
		}
		customer.ReferralCode = fmt.Sprintf("SEED-%s", gofakeit.LetterN(6))
		if err := db.Create(&customer).Error; err != nil {
			return fmt.Errorf("seed customer: %w", err)
		}

		petCount := gofakeit.Number(1, 2)
		for j := 0; j < petCount; j++ {
			breed := breeds[gofakeit.Number(0, len(breeds)-1)]
			pet := models.Pet{
				CustomerID: customer.ID,
				BreedID:    &breed.ID,
				Name:       petNames[gofakeit.Number(0, len(petNames)-1)],
				SizeClass:  sizes[gofakeit.Number(0, len(sizes)-1)],
				IsActive:   true,
			}
			if err := db.Create(&pet).Error; err != nil {
				return fmt.Errorf("seed pet: %w", err)
			}

			// A completed groom some weeks back, so reminders have history
			weeksAgo := gofakeit.Number(1, breed.GroomingFrequencyWeeks)
			appointment := models.Appointment{
				PetID:       pet.ID,
				CustomerID:  customer.ID,
				ScheduledAt: time.Now().AddDate(0, 0, -7*weeksAgo),
				Status:      models.AppointmentCompleted,
				TotalPrice:  gofakeit.Price(45, 160),
			}
			if err := db.Create(&appointment).Error; err != nil {
				return fmt.Errorf("seed appointment: %w", err)
			}
		}
	}

	return nil
}
