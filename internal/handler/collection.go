package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/ledger"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/reconcile"
	"github.com/nikka005/nirbani-sub001/internal/sms"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

type CollectionHandler struct {
	db  *gorm.DB
	sms *sms.Client
	log *zap.Logger
}

func NewCollectionHandler(db *gorm.DB, smsClient *sms.Client, log *zap.Logger) *CollectionHandler {
	return &CollectionHandler{db: db, sms: smsClient, log: log}
}

type collectionRequest struct {
	FarmerID string   `json:"farmer_id" binding:"required"`
	Date     string   `json:"date" binding:"required"`
	Shift    string   `json:"shift" binding:"required"`
	Quantity float64  `json:"quantity" binding:"required,gt=0"`
	Fat      float64  `json:"fat" binding:"required,gt=0"`
	SNF      *float64 `json:"snf"`
	Rate     *float64 `json:"rate"`
	SendSMS  bool     `json:"send_sms"`
}

// Create records a milk delivery. SNF defaults from fat when not measured,
// the rate comes from the default rate chart unless overridden, and the
// farmer's running totals move in the same transaction.
func (h *CollectionHandler) Create(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateDate(req.Date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateShift(req.Shift); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var farmer models.Farmer
	if err := h.db.First(&farmer, "id = ?", req.FarmerID).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "farmer not found")
		return
	}

	snf := reconcile.SNFFromFat(req.Fat)
	if req.SNF != nil && *req.SNF > 0 {
		snf = *req.SNF
	}

	rate := 0.0
	if req.Rate != nil && *req.Rate > 0 {
		rate = *req.Rate
	} else {
		rate = h.lookupRate(req.Fat, snf)
	}

	amount, err := reconcile.Gross(req.Quantity, rate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	collection := models.MilkCollection{
		ID:         uuid.NewString(),
		FarmerID:   farmer.ID,
		FarmerName: farmer.Name,
		Date:       req.Date,
		Shift:      req.Shift,
		Quantity:   req.Quantity,
		Fat:        req.Fat,
		SNF:        snf,
		Rate:       rate,
		Amount:     amount,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&collection).Error; err != nil {
			return err
		}
		return tx.Model(&models.Farmer{}).Where("id = ?", farmer.ID).Updates(map[string]interface{}{
			"total_milk": gorm.Expr("total_milk + ?", collection.Quantity),
			"total_due":  gorm.Expr("total_due + ?", collection.Amount),
			"balance":    gorm.Expr("balance + ?", collection.Amount),
		}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record collection")
		return
	}

	if req.SendSMS && farmer.Phone != "" {
		balance := reconcile.Round2(farmer.Balance + collection.Amount)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.sms.SendCollectionReceipt(ctx, farmer.Phone, farmer.Name,
				collection.Date, collection.Shift, collection.Quantity,
				collection.Fat, collection.Rate, collection.Amount, balance); err != nil {
				h.log.Warn("collection sms failed", zap.String("farmer_id", farmer.ID), zap.Error(err))
			}
		}()
	}

	util.Success(c, util.Response{"collection": collection})
}

// lookupRate prices from the default rate chart, falling back to the base
// formula when no chart is configured.
func (h *CollectionHandler) lookupRate(fat, snf float64) float64 {
	var chart models.RateChart
	if err := h.db.First(&chart, "is_default = ?", true).Error; err != nil {
		return reconcile.RateFor(nil, fat, snf)
	}
	return reconcile.RateFor(chart.Entries, fat, snf)
}

// List returns collections filtered by date, range, farmer and shift.
func (h *CollectionHandler) List(c *gin.Context) {
	query := h.db.Model(&models.MilkCollection{}).Order("date DESC, created_at DESC")

	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	} else if c.Query("from_date") != "" || c.Query("to_date") != "" {
		from, to, err := dateRange(c)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		query = query.Where("date >= ? AND date <= ?", from, to)
	}
	if farmerID := c.Query("farmer_id"); farmerID != "" {
		query = query.Where("farmer_id = ?", farmerID)
	}
	if shift := c.Query("shift"); shift != "" {
		query = query.Where("shift = ?", shift)
	}

	var collections []models.MilkCollection
	if err := query.Find(&collections).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list collections")
		return
	}

	summary := ledger.AggregateCollections(collections)
	util.Success(c, util.Response{
		"collections":  collections,
		"total":        len(collections),
		"total_milk":   summary.TotalQtyLiters,
		"total_amount": summary.TotalAmount,
	})
}

// Today returns today's collections split by shift with totals, the counter
// screen's default view.
func (h *CollectionHandler) Today(c *gin.Context) {
	date := today()

	var collections []models.MilkCollection
	if err := h.db.Where("date = ?", date).Order("created_at DESC").Find(&collections).Error; err != nil {
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

	util.Success(c, util.Response{
		"date":        date,
		"collections": collections,
		"morning":     summaryResponse(ledger.AggregateCollections(morning)),
		"evening":     summaryResponse(ledger.AggregateCollections(evening)),
		"total":       summaryResponse(ledger.AggregateCollections(collections)),
	})
}

func summaryResponse(s ledger.CollectionSummary) util.Response {
	return util.Response{
		"count":        s.Count,
		"total_milk":   s.TotalQtyLiters,
		"total_kg":     s.TotalKg,
		"total_amount": s.TotalAmount,
		"avg_fat":      s.AvgFat,
		"avg_snf":      s.AvgSNF,
	}
}

// Delete removes a collection and reverts the farmer's running totals in the
// same transaction.
func (h *CollectionHandler) Delete(c *gin.Context) {
	var collection models.MilkCollection
	if err := h.db.First(&collection, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "collection not found")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&collection).Error; err != nil {
			return err
		}
		return tx.Model(&models.Farmer{}).Where("id = ?", collection.FarmerID).Updates(map[string]interface{}{
			"total_milk": gorm.Expr("total_milk - ?", collection.Quantity),
			"total_due":  gorm.Expr("total_due - ?", collection.Amount),
			"balance":    gorm.Expr("balance - ?", collection.Amount),
		}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete collection")
		return
	}

	util.Success(c, util.Response{"message": "collection deleted"})
}
