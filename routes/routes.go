package routes

import (
	"groompro-backend/config"
	"groompro-backend/controllers"
	"groompro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://admin.groompro.digital",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Pet routes
		pets := api.Group("/pets")
		{
			pets.POST("", controllers.CreatePet)
			pets.GET("", controllers.GetPets)
			pets.GET("/:id", controllers.GetPet)
			pets.PUT("/:id", controllers.UpdatePet)
			pets.DELETE("/:id", controllers.DeletePet)
		}

		// Breed routes
		breeds := api.Group("/breeds")
		{
			breeds.POST("", controllers.CreateBreed)
			breeds.GET("", controllers.GetBreeds)
			breeds.GET("/:id", controllers.GetBreed)
			breeds.PUT("/:id", controllers.UpdateBreed)
			breeds.DELETE("/:id", controllers.DeleteBreed)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.PATCH("/:id/status", controllers.UpdateAppointmentStatus)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Campaign routes
		campaigns := api.Group("/campaigns")
		{
			campaigns.POST("", controllers.CreateCampaign)
			campaigns.GET("", controllers.GetCampaigns)
			campaigns.PUT("/:id", controllers.UpdateCampaign)
			campaigns.DELETE("/:id", controllers.DeleteCampaign)
			campaigns.POST("/:id/send", controllers.SendCampaign)
		}

		// Gallery and banner routes
		gallery := api.Group("/gallery")
		{
			gallery.POST("", controllers.CreateGalleryImage)
			gallery.GET("", controllers.GetGalleryImages)
			gallery.PUT("/:id", controllers.UpdateGalleryImage)
			gallery.DELETE("/:id", controllers.DeleteGalleryImage)
		}
		banners := api.Group("/banners")
		{
			banners.POST("", controllers.CreateBanner)
			banners.GET("", controllers.GetBanners)
			banners.PUT("/:id", controllers.UpdateBanner)
			banners.DELETE("/:id", controllers.DeleteBanner)
		}

		// Template routes
		templates := api.Group("/templates")
		{
			templates.POST("", controllers.CreateTemplate)
			templates.GET("", controllers.GetTemplates)
			templates.GET("/:id", controllers.GetTemplate)
			templates.PUT("/:id", controllers.UpdateTemplate)
			templates.DELETE("/:id", controllers.DeleteTemplate)
		}

		// Notification log routes
		notifications := api.Group("/notifications")
		{
			notifications.GET("", controllers.GetNotifications)
			notifications.GET("/:id", controllers.GetNotification)
			notifications.POST("/:id/retry", controllers.RetryNotification)
		}

		// Reminder engine routes
		reminders := api.Group("/reminders")
		{
			reminders.POST("/run", controllers.RunReminders)
			reminders.GET("/sends", controllers.GetReminderSends)
			reminders.POST("/link", controllers.LinkBooking)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("/booking", controllers.GetBookingSettings)
			settings.PUT("/booking", controllers.UpdateBookingSettings)
			settings.GET("/blocked-dates", controllers.GetBlockedDates)
			settings.POST("/blocked-dates", controllers.CreateBlockedDate)
			settings.DELETE("/blocked-dates/:id", controllers.DeleteBlockedDate)
			settings.GET("/loyalty", controllers.GetLoyaltySettings)
			settings.PUT("/loyalty", controllers.UpdateLoyaltySettings)
		}

		// Staff commission routes (owner only)
		staff := api.Group("/staff", utils.RequireOwner())
		{
			staff.GET("", controllers.GetStaff)
			staff.PUT("/:id/commission", controllers.UpdateCommission)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
