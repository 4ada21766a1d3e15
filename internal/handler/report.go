package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/billing"
	"github.com/nikka005/nirbani-sub001/internal/ledger"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/reconcile"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

// Fat deviations beyond this between our tanker average and the plant's slip
// indicate a testing dispute worth reviewing.
const fatDeviationAlert = 0.3

type ReportHandler struct {
	db       *gorm.DB
	renderer *billing.Renderer
}

func NewReportHandler(db *gorm.DB, renderer *billing.Renderer) *ReportHandler {
	return &ReportHandler{db: db, renderer: renderer}
}

// Daily returns one day's collections split by shift. With format=html it
// renders the printable report instead.
func (h *ReportHandler) Daily(c *gin.Context) {
	date := c.DefaultQuery("date", today())
	if err := util.ValidateDate(date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var collections []models.MilkCollection
	if err := h.db.Where("date = ?", date).Order("created_at ASC").Find(&collections).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load collections")
		return
	}

	var morning, evening []models.MilkCollection
	for _, col := range collections {
		if col.Shift == "morning" {
			morning = append(morning, col)
		} else {
			evening = append(evening, col)
		}
	}

	if c.Query("format") == "html" {
		html, err := h.renderer.DailyReport(billing.DailyReportData{
			Date:        date,
			Collections: collections,
			Morning:     ledger.AggregateCollections(morning),
			Evening:     ledger.AggregateCollections(evening),
			Total:       ledger.AggregateCollections(collections),
			GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		})
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to render report")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	util.Success(c, util.Response{
		"date":        date,
		"collections": collections,
		"morning":     summaryResponse(ledger.AggregateCollections(morning)),
		"evening":     summaryResponse(ledger.AggregateCollections(evening)),
		"total":       summaryResponse(ledger.AggregateCollections(collections)),
	})
}

// Farmer returns per-farmer totals for a date range, sorted by amount.
func (h *ReportHandler) Farmer(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var collections []models.MilkCollection
	if err := h.db.Where("date >= ? AND date <= ?", from, to).Find(&collections).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load collections")
		return
	}

	byFarmer := map[string][]models.MilkCollection{}
	order := []string{}
	for _, col := range collections {
		if _, seen := byFarmer[col.FarmerID]; !seen {
			order = append(order, col.FarmerID)
		}
		byFarmer[col.FarmerID] = append(byFarmer[col.FarmerID], col)
	}

	rows := make([]util.Response, 0, len(order))
	for _, farmerID := range order {
		group := byFarmer[farmerID]
		s := ledger.AggregateCollections(group)
		rows = append(rows, util.Response{
			"farmer_id":    farmerID,
			"farmer_name":  group[0].FarmerName,
			"collections":  s.Count,
			"total_milk":   s.TotalQtyLiters,
			"avg_fat":      s.AvgFat,
			"avg_snf":      s.AvgSNF,
			"total_amount": s.TotalAmount,
		})
	}

	total := ledger.AggregateCollections(collections)
	util.Success(c, util.Response{
		"from_date": from,
		"to_date":   to,
		"farmers":   rows,
		"total":     summaryResponse(total),
	})
}

// FarmerDetail returns one farmer's collections, payments and period summary
// for a date range, the per-farmer report screen.
func (h *ReportHandler) FarmerDetail(c *gin.Context) {
	var farmer models.Farmer
	if err := h.db.First(&farmer, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "farmer not found")
		return
	}

	from, to, err := dateRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var collections []models.MilkCollection
	if err := h.db.Where("farmer_id = ? AND date >= ? AND date <= ?", farmer.ID, from, to).
		Order("date ASC, created_at ASC").Find(&collections).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load collections")
		return
	}
	var payments []models.Payment
	if err := h.db.Where("farmer_id = ? AND date >= ? AND date <= ?", farmer.ID, from, to).
		Order("date ASC, created_at ASC").Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load payments")
		return
	}

	summary := ledger.AggregateCollections(collections)
	paid := ledger.PaymentTotal(payments)
	util.Success(c, util.Response{
		"farmer":      farmer,
		"from_date":   from,
		"to_date":     to,
		"collections": collections,
		"payments":    payments,
		"summary": util.Response{
			"total_milk":     summary.TotalQtyLiters,
			"total_amount":   summary.TotalAmount,
			"avg_fat":        summary.AvgFat,
			"avg_snf":        summary.AvgSNF,
			"total_paid":     paid,
			"period_balance": reconcile.Round2(summary.TotalAmount - paid),
		},
	})
}

// Profit returns the profit statement for a date range: dispatch revenue
// minus farmer payouts minus expenses, plus the milk loss and fat deviation
// figures that explain where margin leaked.
func (h *ReportHandler) Profit(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var collections []models.MilkCollection
	if err := h.db.Where("date >= ? AND date <= ?", from, to).Find(&collections).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load collections")
		return
	}
	var dispatches []models.Dispatch
	if err := h.db.Where("date >= ? AND date <= ?", from, to).Find(&dispatches).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load dispatches")
		return
	}
	var expenses []models.Expense
	if err := h.db.Where("date >= ? AND date <= ?", from, to).Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expenses")
		return
	}

	colSummary := ledger.AggregateCollections(collections)
	dispSummary := ledger.AggregateDispatches(dispatches)
	tracking := ledger.TrackMilk(colSummary.TotalKg, dispSummary.TotalQtyKg)

	dispatchAvgRate := 0.0
	if dispSummary.TotalQtyKg > 0 {
		dispatchAvgRate = reconcile.Round2(dispSummary.TotalNetReceivable / dispSummary.TotalQtyKg)
	}
	collectionAvgRate := 0.0
	if colSummary.TotalQtyLiters > 0 {
		collectionAvgRate = reconcile.Round2(colSummary.TotalAmount / colSummary.TotalQtyLiters)
	}

	expenseTotal := 0.0
	byCategory := map[string]float64{}
	for _, e := range expenses {
		expenseTotal += e.Amount
		byCategory[e.Category] += e.Amount
	}
	expenseTotal = reconcile.Round2(expenseTotal)
	for cat, amt := range byCategory {
		byCategory[cat] = reconcile.Round2(amt)
	}

	grossProfit := reconcile.Round2(dispSummary.TotalNetReceivable - colSummary.TotalAmount)
	netProfit := reconcile.Round2(grossProfit - expenseTotal)
	marginPerKg := 0.0
	if dispSummary.TotalQtyKg > 0 {
		marginPerKg = reconcile.Round2(grossProfit / dispSummary.TotalQtyKg)
	}

	dispatchFatItems := make([]reconcile.Weighted, 0, len(dispatches))
	for _, d := range dispatches {
		dispatchFatItems = append(dispatchFatItems, reconcile.Weighted{Value: d.AvgFat, Weight: d.QuantityKg})
	}
	dispatchAvgFat := reconcile.WeightedAverage(dispatchFatItems)
	fatDeviation := 0.0
	fatAlert := false
	if len(collections) > 0 && len(dispatches) > 0 {
		fatDeviation = reconcile.Round2(colSummary.AvgFat - dispatchAvgFat)
		fatAlert = fatDeviation > fatDeviationAlert || fatDeviation < -fatDeviationAlert
	}

	util.Success(c, util.Response{
		"from_date": from,
		"to_date":   to,
		"dispatch": util.Response{
			"total_kg":     dispSummary.TotalQtyKg,
			"total_amount": dispSummary.TotalNetReceivable,
			"avg_rate":     dispatchAvgRate,
		},
		"collection": util.Response{
			"total_liters": colSummary.TotalQtyLiters,
			"total_kg":     colSummary.TotalKg,
			"total_amount": colSummary.TotalAmount,
			"avg_rate":     collectionAvgRate,
		},
		"expenses": util.Response{
			"total":       expenseTotal,
			"by_category": byCategory,
		},
		"profit": util.Response{
			"gross_profit":        grossProfit,
			"net_profit":          netProfit,
			"gross_margin_per_kg": marginPerKg,
		},
		"milk_tracking": util.Response{
			"collected_kg":  tracking.CollectedKg,
			"dispatched_kg": tracking.DispatchedKg,
			"difference_kg": tracking.DifferenceKg,
			"loss_percent":  tracking.LossPercent,
			"alert":         tracking.Alert,
		},
		"fat_analysis": util.Response{
			"collection_avg_fat": colSummary.AvgFat,
			"dispatch_avg_fat":   dispatchAvgFat,
			"fat_deviation":      fatDeviation,
			"alert":              fatAlert,
		},
	})
}

// FatAnalysis ranks farmers by quantity-weighted average fat over a range,
// with a quality breakdown the owner uses to decide premium rates.
func (h *ReportHandler) FatAnalysis(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var collections []models.MilkCollection
	if err := h.db.Where("date >= ? AND date <= ?", from, to).Find(&collections).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load collections")
		return
	}

	byFarmer := map[string][]models.MilkCollection{}
	order := []string{}
	for _, col := range collections {
		if _, seen := byFarmer[col.FarmerID]; !seen {
			order = append(order, col.FarmerID)
		}
		byFarmer[col.FarmerID] = append(byFarmer[col.FarmerID], col)
	}

	good, average, low := 0, 0, 0
	rows := make([]util.Response, 0, len(order))
	for _, farmerID := range order {
		group := byFarmer[farmerID]
		s := ledger.AggregateCollections(group)

		quality := "low"
		switch {
		case s.AvgFat >= 4.0:
			quality = "good"
			good++
		case s.AvgFat >= 3.0:
			quality = "average"
			average++
		default:
			low++
		}

		rows = append(rows, util.Response{
			"farmer_id":   farmerID,
			"farmer_name": group[0].FarmerName,
			"total_milk":  s.TotalQtyLiters,
			"avg_fat":     s.AvgFat,
			"avg_snf":     s.AvgSNF,
			"quality":     quality,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i]["avg_fat"].(float64) > rows[j]["avg_fat"].(float64)
	})

	overall := ledger.AggregateCollections(collections)
	util.Success(c, util.Response{
		"from_date": from,
		"to_date":   to,
		"farmers":   rows,
		"quality_breakdown": util.Response{
			"good":    good,
			"average": average,
			"low":     low,
		},
		"overall_avg_fat": overall.AvgFat,
	})
}
