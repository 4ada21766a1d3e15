package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/reconcile"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

type DispatchHandler struct {
	db *gorm.DB
}

func NewDispatchHandler(db *gorm.DB) *DispatchHandler {
	return &DispatchHandler{db: db}
}

type deductionRequest struct {
	Type   string  `json:"type" binding:"required,oneof=transport quality_penalty commission testing_charges other"`
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

type dispatchRequest struct {
	DairyPlantID string             `json:"dairy_plant_id" binding:"required"`
	Date         string             `json:"date" binding:"required"`
	TankerNumber string             `json:"tanker_number"`
	QuantityKg   float64            `json:"quantity_kg" binding:"required,gt=0"`
	AvgFat       float64            `json:"avg_fat" binding:"required,gt=0"`
	AvgSNF       float64            `json:"avg_snf"`
	CLR          *float64           `json:"clr"`
	RatePerKg    float64            `json:"rate_per_kg" binding:"required,gt=0"`
	Deductions   []deductionRequest `json:"deductions" binding:"omitempty,dive"`
	Notes        string             `json:"notes"`
}

// Create records a tanker dispatch. Gross, deduction total and net
// receivable are computed server side and the plant's running totals move in
// the same transaction.
func (h *DispatchHandler) Create(c *gin.Context) {
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateDate(req.Date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var plant models.DairyPlant
	if err := h.db.First(&plant, "id = ?", req.DairyPlantID).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "dairy plant not found")
		return
	}

	deductions := make([]models.Deduction, 0, len(req.Deductions))
	for _, d := range req.Deductions {
		deductions = append(deductions, models.Deduction{
			Type:   d.Type,
			Amount: d.Amount,
			Notes:  d.Notes,
		})
	}

	gross, err := reconcile.Gross(req.QuantityKg, req.RatePerKg)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	totalDeduction := reconcile.DeductionTotal(deductions)

	snf := req.AvgSNF
	if snf <= 0 {
		snf = reconcile.SNFFromFat(req.AvgFat)
	}

	dispatch := models.Dispatch{
		ID:             uuid.NewString(),
		DairyPlantID:   plant.ID,
		DairyPlantName: plant.Name,
		Date:           req.Date,
		TankerNumber:   req.TankerNumber,
		QuantityKg:     req.QuantityKg,
		AvgFat:         req.AvgFat,
		AvgSNF:         snf,
		CLR:            req.CLR,
		RatePerKg:      req.RatePerKg,
		Deductions:     deductions,
		GrossAmount:    gross,
		TotalDeduction: totalDeduction,
		NetReceivable:  reconcile.Net(gross, totalDeduction),
		Notes:          req.Notes,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dispatch).Error; err != nil {
			return err
		}
		return tx.Model(&models.DairyPlant{}).Where("id = ?", plant.ID).Updates(map[string]interface{}{
			"total_milk_supplied": gorm.Expr("total_milk_supplied + ?", dispatch.QuantityKg),
			"total_amount":        gorm.Expr("total_amount + ?", dispatch.NetReceivable),
			"balance":             gorm.Expr("balance + ?", dispatch.NetReceivable),
		}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record dispatch")
		return
	}

	util.Success(c, util.Response{"dispatch": dispatch})
}

// List returns dispatches filtered by plant, date range and slip status.
func (h *DispatchHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Dispatch{}).Order("date DESC, created_at DESC")

	if plantID := c.Query("dairy_plant_id"); plantID != "" {
		query = query.Where("dairy_plant_id = ?", plantID)
	}
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
	switch c.Query("slip_status") {
	case "matched":
		query = query.Where("slip_matched = ?", true)
	case "pending":
		query = query.Where("slip_matched = ?", false)
	}

	var dispatches []models.Dispatch
	if err := query.Find(&dispatches).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list dispatches")
		return
	}

	util.Success(c, util.Response{"dispatches": dispatches, "total": len(dispatches)})
}

// Get returns one dispatch by id.
func (h *DispatchHandler) Get(c *gin.Context) {
	var dispatch models.Dispatch
	if err := h.db.First(&dispatch, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "dispatch not found")
		return
	}
	util.Success(c, util.Response{"dispatch": dispatch})
}

type slipMatchRequest struct {
	SlipFat        float64 `json:"slip_fat" binding:"required,gt=0"`
	SlipSNF        float64 `json:"slip_snf"`
	SlipAmount     float64 `json:"slip_amount" binding:"required,gt=0"`
	SlipDeductions float64 `json:"slip_deductions"`
}

// SlipMatch records the plant's acknowledgement slip against a dispatch.
// Matching is one way: a matched dispatch rejects further slips, so the
// frozen variance figures stay trustworthy.
func (h *DispatchHandler) SlipMatch(c *gin.Context) {
	var dispatch models.Dispatch
	if err := h.db.First(&dispatch, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "dispatch not found")
		return
	}
	if dispatch.SlipMatched {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "dispatch slip already matched")
		return
	}

	var req slipMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	variance := reconcile.SlipVariance(dispatch.AvgFat, dispatch.NetReceivable, req.SlipFat, req.SlipAmount)

	updates := map[string]interface{}{
		"slip_matched":      true,
		"slip_fat":          req.SlipFat,
		"slip_snf":          req.SlipSNF,
		"slip_amount":       req.SlipAmount,
		"slip_deductions":   req.SlipDeductions,
		"amount_difference": variance.AmountDifference,
		"fat_difference":    variance.FatDifference,
	}
	if err := h.db.Model(&dispatch).Updates(updates).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to match slip")
		return
	}

	util.Success(c, util.Response{
		"dispatch":          dispatch,
		"amount_difference": variance.AmountDifference,
		"fat_difference":    variance.FatDifference,
	})
}

// Delete removes a dispatch and reverts the plant's running totals in the
// same transaction.
func (h *DispatchHandler) Delete(c *gin.Context) {
	var dispatch models.Dispatch
	if err := h.db.First(&dispatch, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "dispatch not found")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&dispatch).Error; err != nil {
			return err
		}
		return tx.Model(&models.DairyPlant{}).Where("id = ?", dispatch.DairyPlantID).Updates(map[string]interface{}{
			"total_milk_supplied": gorm.Expr("total_milk_supplied - ?", dispatch.QuantityKg),
			"total_amount":        gorm.Expr("total_amount - ?", dispatch.NetReceivable),
			"balance":             gorm.Expr("balance - ?", dispatch.NetReceivable),
		}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete dispatch")
		return
	}

	util.Success(c, util.Response{"message": "dispatch deleted"})
}
