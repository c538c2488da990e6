package controllers

import (
	"fmt"
	"net/http"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"

	"github.com/gin-gonic/gin"
)

const dashboardCacheTTL = 15 * time.Minute

type DashboardOverview struct {
	TotalCustomers       int64                 `json:"totalCustomers"`
	TotalPets            int64                 `json:"totalPets"`
	MonthlyRevenue       float64               `json:"monthlyRevenue"`
	AppointmentsToday    int64                 `json:"appointmentsToday"`
	UpcomingAppointments []UpcomingAppointment `json:"upcomingAppointments"`
	RecentReminderRuns   []ReminderRunSnapshot `json:"recentReminderRuns"`
}

type UpcomingAppointment struct {
	PetName      string `json:"petName"`
	CustomerName string `json:"customerName"`
	When         string `json:"when"` // e.g. "Today", "Tomorrow", "3 days"
	Status       string `json:"status"`
}

type ReminderRunSnapshot struct {
	Date    string `json:"date"`
	Sent    int64  `json:"sent"`
	Failed  int64  `json:"failed"`
	Clicked int64  `json:"clicked"`
}

func GetDashboardOverview(c *gin.Context) {
	var overview DashboardOverview
	if getCachedAnalytics("dashboard_overview", &overview) {
		c.JSON(http.StatusOK, overview)
		return
	}

	now := time.Now()

	config.DB.Model(&models.Customer{}).Where("is_active = ?", true).Count(&overview.TotalCustomers)
	config.DB.Model(&models.Pet{}).Where("is_active = ?", true).Count(&overview.TotalPets)

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	config.DB.Model(&models.Appointment{}).
		Where("status = ? AND scheduled_at >= ?", models.AppointmentCompleted, firstOfMonth).
		Select("COALESCE(SUM(total_price), 0)").Scan(&overview.MonthlyRevenue)

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	config.DB.Model(&models.Appointment{}).
		Where("scheduled_at BETWEEN ? AND ? AND status IN ?",
			startOfDay, startOfDay.AddDate(0, 0, 1), models.ActiveAppointmentStatuses).
		Count(&overview.AppointmentsToday)

	// Next 7 days of booked appointments
	type upcomingRow struct {
		PetName      string
		CustomerName string
		ScheduledAt  time.Time
		Status       string
	}
	var rows []upcomingRow
	config.DB.Raw(`
		SELECT p.name AS pet_name, c.name AS customer_name, a.scheduled_at, a.status
		FROM appointments a
		JOIN pets p ON p.id = a.pet_id
		JOIN customers c ON c.id = a.customer_id
		WHERE a.scheduled_at BETWEEN ? AND ? AND a.status IN ? AND a.deleted_at IS NULL
		ORDER BY a.scheduled_at
		LIMIT 10
	`, now, now.AddDate(0, 0, 7), models.ActiveAppointmentStatuses).Scan(&rows)

	for _, r := range rows {
		days := int(r.ScheduledAt.Sub(startOfDay).Hours() / 24)
		var label string
		switch days {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		default:
			label = fmt.Sprintf("%d days", days)
		}
		overview.UpcomingAppointments = append(overview.UpcomingAppointments, UpcomingAppointment{
			PetName:      r.PetName,
			CustomerName: r.CustomerName,
			When:         label,
			Status:       r.Status,
		})
	}

	// Reminder outcomes for the last 7 days, by day
	for i := 0; i < 7; i++ {
		day := startOfDay.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)

		snapshot := ReminderRunSnapshot{Date: day.Format("2006-01-02")}
		config.DB.Model(&models.NotificationLog{}).
			Where("type = ? AND status = ? AND created_at BETWEEN ? AND ?",
				"reminder", models.NotificationSent, day, next).
			Count(&snapshot.Sent)
		config.DB.Model(&models.NotificationLog{}).
			Where("type = ? AND status = ? AND created_at BETWEEN ? AND ?",
				"reminder", models.NotificationFailed, day, next).
			Count(&snapshot.Failed)
		config.DB.Model(&models.NotificationLog{}).
			Where("type = ? AND clicked_at IS NOT NULL AND created_at BETWEEN ? AND ?",
				"reminder", day, next).
			Count(&snapshot.Clicked)

		if snapshot.Sent > 0 || snapshot.Failed > 0 || snapshot.Clicked > 0 {
			overview.RecentReminderRuns = append(overview.RecentReminderRuns, snapshot)
		}
	}

	setCachedAnalytics("dashboard_overview", overview, dashboardCacheTTL)

	c.JSON(http.StatusOK, overview)
}
