package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/ledger"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/reconcile"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

type DairyPaymentHandler struct {
	db *gorm.DB
}

func NewDairyPaymentHandler(db *gorm.DB) *DairyPaymentHandler {
	return &DairyPaymentHandler{db: db}
}

type dairyPaymentRequest struct {
	DairyPlantID    string  `json:"dairy_plant_id" binding:"required"`
	Date            string  `json:"date" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
	PaymentMode     string  `json:"payment_mode" binding:"required"`
	ReferenceNumber string  `json:"reference_number"`
	Notes           string  `json:"notes"`
}

// Create records money received from a dairy plant and moves its running
// totals in the same transaction.
func (h *DairyPaymentHandler) Create(c *gin.Context) {
	var req dairyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateDate(req.Date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidatePaymentMode(req.PaymentMode); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var plant models.DairyPlant
	if err := h.db.First(&plant, "id = ?", req.DairyPlantID).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "dairy plant not found")
		return
	}

	payment := models.DairyPayment{
		ID:              uuid.NewString(),
		DairyPlantID:    plant.ID,
		DairyPlantName:  plant.Name,
		Date:            req.Date,
		Amount:          reconcile.Round2(req.Amount),
		PaymentMode:     req.PaymentMode,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.DairyPlant{}).Where("id = ?", plant.ID).Updates(map[string]interface{}{
			"total_paid": gorm.Expr("total_paid + ?", payment.Amount),
			"balance":    gorm.Expr("balance - ?", payment.Amount),
		}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record payment")
		return
	}

	util.Success(c, util.Response{"payment": payment})
}

// List returns dairy payments filtered by plant and date range.
func (h *DairyPaymentHandler) List(c *gin.Context) {
	query := h.db.Model(&models.DairyPayment{}).Order("date DESC, created_at DESC")

	if plantID := c.Query("dairy_plant_id"); plantID != "" {
		query = query.Where("dairy_plant_id = ?", plantID)
	}
	if c.Query("from_date") != "" || c.Query("to_date") != "" {
		from, to, err := dateRange(c)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		query = query.Where("date >= ? AND date <= ?", from, to)
	}

	var payments []models.DairyPayment
	if err := query.Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list payments")
		return
	}

	util.Success(c, util.Response{
		"payments":       payments,
		"total":          len(payments),
		"total_received": ledger.DairyPaymentTotal(payments),
	})
}

// Delete removes a dairy payment and reverts the plant's totals in the same
// transaction.
func (h *DairyPaymentHandler) Delete(c *gin.Context) {
	var payment models.DairyPayment
	if err := h.db.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "payment not found")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.DairyPlant{}).Where("id = ?", payment.DairyPlantID).Updates(map[string]interface{}{
			"total_paid": gorm.Expr("total_paid - ?", payment.Amount),
			"balance":    gorm.Expr("balance + ?", payment.Amount),
		}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete payment")
		return
	}

	util.Success(c, util.Response{"message": "payment deleted"})
}
