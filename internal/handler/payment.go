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

type PaymentHandler struct {
	db  *gorm.DB
	sms *sms.Client
	log *zap.Logger
}

func NewPaymentHandler(db *gorm.DB, smsClient *sms.Client, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{db: db, sms: smsClient, log: log}
}

type paymentRequest struct {
	FarmerID        string  `json:"farmer_id" binding:"required"`
	Date            string  `json:"date" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
	PaymentMode     string  `json:"payment_mode" binding:"required"`
	ReferenceNumber string  `json:"reference_number"`
	Notes           string  `json:"notes"`
	SendSMS         bool    `json:"send_sms"`
}

// Create records a payout to a farmer and moves the running totals in the
// same transaction. Paying more than the balance is allowed; it simply
// drives the balance negative (an advance).
func (h *PaymentHandler) Create(c *gin.Context) {
	var req paymentRequest
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

	var farmer models.Farmer
	if err := h.db.First(&farmer, "id = ?", req.FarmerID).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "farmer not found")
		return
	}

	payment := models.Payment{
		ID:              uuid.NewString(),
		FarmerID:        farmer.ID,
		FarmerName:      farmer.Name,
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
		return tx.Model(&models.Farmer{}).Where("id = ?", farmer.ID).Updates(map[string]interface{}{
			"total_paid": gorm.Expr("total_paid + ?", payment.Amount),
			"balance":    gorm.Expr("balance - ?", payment.Amount),
		}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record payment")
		return
	}

	if req.SendSMS && farmer.Phone != "" {
		balance := reconcile.Round2(farmer.Balance - payment.Amount)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.sms.SendPaymentReceipt(ctx, farmer.Phone, farmer.Name,
				payment.Date, payment.Amount, balance, payment.PaymentMode); err != nil {
				h.log.Warn("payment sms failed", zap.String("farmer_id", farmer.ID), zap.Error(err))
			}
		}()
	}

	util.Success(c, util.Response{"payment": payment})
}

// List returns payments filtered by farmer and date range.
func (h *PaymentHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Payment{}).Order("date DESC, created_at DESC")

	if farmerID := c.Query("farmer_id"); farmerID != "" {
		query = query.Where("farmer_id = ?", farmerID)
	}
	if c.Query("from_date") != "" || c.Query("to_date") != "" {
		from, to, err := dateRange(c)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		query = query.Where("date >= ? AND date <= ?", from, to)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list payments")
		return
	}

	util.Success(c, util.Response{
		"payments":   payments,
		"total":      len(payments),
		"total_paid": ledger.PaymentTotal(payments),
	})
}

// Delete removes a payment and reverts the farmer's totals in the same
// transaction.
func (h *PaymentHandler) Delete(c *gin.Context) {
	var payment models.Payment
	if err := h.db.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "payment not found")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Farmer{}).Where("id = ?", payment.FarmerID).Updates(map[string]interface{}{
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
