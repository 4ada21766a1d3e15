package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/ledger"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/reconcile"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Stats returns the home screen numbers: today's collections and dispatches,
// farmer dues, plant receivables and the milk tracking alert.
func (h *DashboardHandler) Stats(c *gin.Context) {
	date := today()

	var collections []models.MilkCollection
	if err := h.db.Where("date = ?", date).Find(&collections).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load collections")
		return
	}
	var dispatches []models.Dispatch
	if err := h.db.Where("date = ?", date).Find(&dispatches).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load dispatches")
		return
	}

	var activeFarmers int64
	if err := h.db.Model(&models.Farmer{}).Where("is_active = ?", true).Count(&activeFarmers).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count farmers")
		return
	}

	// Dues and receivables come from the maintained running balances.
	var farmerDues float64
	if err := h.db.Model(&models.Farmer{}).Where("balance > 0").
		Select("COALESCE(SUM(balance), 0)").Scan(&farmerDues).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to sum dues")
		return
	}
	var plantReceivable float64
	if err := h.db.Model(&models.DairyPlant{}).
		Select("COALESCE(SUM(balance), 0)").Scan(&plantReceivable).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to sum receivables")
		return
	}

	var pendingSlips int64
	if err := h.db.Model(&models.Dispatch{}).Where("slip_matched = ?", false).
		Count(&pendingSlips).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count pending slips")
		return
	}

	colSummary := ledger.AggregateCollections(collections)
	dispSummary := ledger.AggregateDispatches(dispatches)
	tracking := ledger.TrackMilk(colSummary.TotalKg, dispSummary.TotalQtyKg)

	util.Success(c, util.Response{
		"date":             date,
		"today_collection": summaryResponse(colSummary),
		"today_dispatch": util.Response{
			"count":            dispSummary.Count,
			"total_kg":         dispSummary.TotalQtyKg,
			"total_receivable": dispSummary.TotalNetReceivable,
		},
		"milk_tracking": util.Response{
			"collected_kg":  tracking.CollectedKg,
			"dispatched_kg": tracking.DispatchedKg,
			"difference_kg": tracking.DifferenceKg,
			"loss_percent":  tracking.LossPercent,
			"alert":         tracking.Alert,
		},
		"active_farmers":   activeFarmers,
		"farmer_dues":      reconcile.Round2(farmerDues),
		"plant_receivable": reconcile.Round2(plantReceivable),
		"pending_slips":    pendingSlips,
	})
}

// WeeklyStats returns per-day collection and dispatch totals for the last
// seven days, oldest first, for the dashboard chart.
func (h *DashboardHandler) WeeklyStats(c *gin.Context) {
	days := make([]util.Response, 0, 7)

	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i).Format("2006-01-02")

		var collections []models.MilkCollection
		if err := h.db.Where("date = ?", date).Find(&collections).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load collections")
			return
		}
		var dispatches []models.Dispatch
		if err := h.db.Where("date = ?", date).Find(&dispatches).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load dispatches")
			return
		}

		colSummary := ledger.AggregateCollections(collections)
		dispSummary := ledger.AggregateDispatches(dispatches)
		days = append(days, util.Response{
			"date":              date,
			"collection_liters": colSummary.TotalQtyLiters,
			"collection_amount": colSummary.TotalAmount,
			"avg_fat":           colSummary.AvgFat,
			"dispatch_kg":       dispSummary.TotalQtyKg,
			"dispatch_amount":   dispSummary.TotalNetReceivable,
		})
	}

	util.Success(c, util.Response{"days": days})
}
