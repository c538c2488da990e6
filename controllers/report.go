// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"groompro-backend/config"
	"groompro-backend/models"
	"groompro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const reportCacheTTL = 30 * time.Minute

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64             `json:"currentMonthRevenue"`
	MonthGrowth           float64             `json:"monthGrowth"`
	CurrentQuarterRevenue float64             `json:"currentQuarterRevenue"`
	QuarterGrowth         float64             `json:"quarterGrowth"`
	CurrentYearRevenue    float64             `json:"currentYearRevenue"`
	YearGrowth            float64             `json:"yearGrowth"`
	TopBreeds             []BreedSummary      `json:"topBreeds"`
	TopCustomers          []CustomerSummary   `json:"topCustomers"`
	Commissions           []CommissionSummary `json:"commissions"`
	ReminderConversion    ConversionSummary   `json:"reminderConversion"`
}

type BreedSummary struct {
	Name    string  `json:"name"`
	Visits  int     `json:"visits"`
	Revenue float64 `json:"revenue"`
}

type CustomerSummary struct {
	Name   string  `json:"name"`
	Visits int     `json:"visits"`
	Spent  float64 `json:"spent"`
}

type CommissionSummary struct {
	Name       string  `json:"name"`
	Rate       float64 `json:"rate"`
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
}

type ConversionSummary struct {
	SendsLast30Days     int64   `json:"sendsLast30Days"`
	ConvertedLast30Days int64   `json:"convertedLast30Days"`
	ConversionRate      float64 `json:"conversionRate"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	var cached AnalyticsSummary
	if getCachedAnalytics("report_analytics", &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(rc.getQuarterStart(now), rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	topBreeds, err := rc.getTopBreeds(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top breeds")
		return
	}

	topCustomers, err := rc.getTopCustomers(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}

	commissions, err := rc.getCommissions(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get commissions")
		return
	}

	conversion, err := rc.getReminderConversion(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get reminder conversion")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TopBreeds:             topBreeds,
		TopCustomers:          topCustomers,
		Commissions:           commissions,
		ReminderConversion:    conversion,
	}

	setCachedAnalytics("report_analytics", summary, reportCacheTTL)

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Appointment{}).
		Where("status = ? AND scheduled_at BETWEEN ? AND ?", models.AppointmentCompleted, start, end).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopBreeds(start, end time.Time, limit int) ([]BreedSummary, error) {
	var breeds []BreedSummary

	err := config.DB.Table("appointments").
		Select("breeds.name, COUNT(appointments.id) as visits, SUM(appointments.total_price) as revenue").
		Joins("JOIN pets ON pets.id = appointments.pet_id").
		Joins("JOIN breeds ON breeds.id = pets.breed_id").
		Where("appointments.status = ? AND appointments.scheduled_at BETWEEN ? AND ? AND appointments.deleted_at IS NULL AND breeds.deleted_at IS NULL",
			models.AppointmentCompleted, start, end).
		Group("breeds.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&breeds).Error

	return breeds, err
}

func (rc *ReportController) getTopCustomers(start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary

	err := config.DB.Table("appointments").
		Select("customers.name, COUNT(appointments.id) as visits, SUM(appointments.total_price) as spent").
		Joins("JOIN customers ON customers.id = appointments.customer_id").
		Where("appointments.status = ? AND appointments.scheduled_at BETWEEN ? AND ? AND appointments.deleted_at IS NULL AND customers.deleted_at IS NULL",
			models.AppointmentCompleted, start, end).
		Group("customers.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&customers).Error

	return customers, err
}

func (rc *ReportController) getCommissions(start, end time.Time) ([]CommissionSummary, error) {
	type groomerRevenue struct {
		ID      uuid.UUID
		Name    string
		Rate    float64
		Revenue float64
	}

	var rows []groomerRevenue
	err := config.DB.Table("users").
		Select("users.id, users.name, users.commission_rate as rate, COALESCE(SUM(appointments.total_price), 0) as revenue").
		Joins("LEFT JOIN appointments ON appointments.groomer_id = users.id AND appointments.status = ? AND appointments.scheduled_at BETWEEN ? AND ? AND appointments.deleted_at IS NULL",
			models.AppointmentCompleted, start, end).
		Where("users.role = ? AND users.is_active = ? AND users.deleted_at IS NULL", "groomer", true).
		Group("users.id, users.name, users.commission_rate").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]CommissionSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, CommissionSummary{
			Name:       r.Name,
			Rate:       r.Rate,
			Revenue:    r.Revenue,
			Commission: r.Revenue * r.Rate / 100,
		})
	}
	return summaries, nil
}

func (rc *ReportController) getReminderConversion(now time.Time) (ConversionSummary, error) {
	var summary ConversionSummary
	since := now.AddDate(0, 0, -30)

	if err := config.DB.Model(&models.CampaignSend{}).
		Where("sent_at > ?", since).
		Count(&summary.SendsLast30Days).Error; err != nil {
		return summary, err
	}
	if err := config.DB.Model(&models.CampaignSend{}).
		Where("sent_at > ? AND booking_id IS NOT NULL", since).
		Count(&summary.ConvertedLast30Days).Error; err != nil {
		return summary, err
	}

	if summary.SendsLast30Days > 0 {
		summary.ConversionRate = float64(summary.ConvertedLast30Days) / float64(summary.SendsLast30Days) * 100
	}
	return summary, nil
}
