package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/routes"
	"groompro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Pet{},
		&models.Breed{},
		&models.Appointment{},
		&models.Campaign{},
		&models.CampaignSend{},
		&models.NotificationLog{},
		&models.GalleryImage{},
		&models.Banner{},
		&models.BookingSettings{},
		&models.BlockedDate{},
		&models.LoyaltySettings{},
		&models.NotificationTemplate{},
		&models.AnalyticsCacheEntry{},
	)
}

func main() {
	seed := flag.Bool("seed", false, "seed demo data and exit")
	flag.Parse()

	if *seed {
		if err := seedDemoData(config.DB); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		log.Println("seed complete")
		return
	}

	reminderService := services.NewReminderServiceFromEnv(config.DB)
	reminderService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
