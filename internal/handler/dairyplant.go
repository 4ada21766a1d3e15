package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/billing"
	"github.com/nikka005/nirbani-sub001/internal/ledger"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

type DairyPlantHandler struct {
	db       *gorm.DB
	renderer *billing.Renderer
}

func NewDairyPlantHandler(db *gorm.DB, renderer *billing.Renderer) *DairyPlantHandler {
	return &DairyPlantHandler{db: db, renderer: renderer}
}

type dairyPlantRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=64"`
	Code          string `json:"code"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	ContactPerson string `json:"contact_person"`
}

// Create registers a dairy plant with zeroed running totals.
func (h *DairyPlantHandler) Create(c *gin.Context) {
	var req dairyPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	plant := models.DairyPlant{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Code:          req.Code,
		Address:       req.Address,
		Phone:         req.Phone,
		ContactPerson: req.ContactPerson,
	}
	if err := h.db.Create(&plant).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create dairy plant")
		return
	}

	util.Success(c, util.Response{"dairy_plant": plant})
}

// List returns all dairy plants.
func (h *DairyPlantHandler) List(c *gin.Context) {
	var plants []models.DairyPlant
	if err := h.db.Order("created_at DESC").Find(&plants).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list dairy plants")
		return
	}
	util.Success(c, util.Response{"dairy_plants": plants, "total": len(plants)})
}

// Get returns one dairy plant by id.
func (h *DairyPlantHandler) Get(c *gin.Context) {
	var plant models.DairyPlant
	if err := h.db.First(&plant, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "dairy plant not found")
		return
	}
	util.Success(c, util.Response{"dairy_plant": plant})
}

// Update edits plant profile fields, never the running totals.
func (h *DairyPlantHandler) Update(c *gin.Context) {
	var plant models.DairyPlant
	if err := h.db.First(&plant, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "dairy plant not found")
		return
	}

	var req dairyPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":           req.Name,
		"code":           req.Code,
		"address":        req.Address,
		"phone":          req.Phone,
		"contact_person": req.ContactPerson,
	}
	if err := h.db.Model(&plant).Updates(updates).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update dairy plant")
		return
	}

	util.Success(c, util.Response{"dairy_plant": plant})
}

// Ledger returns the plant's dispatches and payments for a date range with
// period totals and the running balance.
func (h *DairyPlantHandler) Ledger(c *gin.Context) {
	plant, dispatches, payments, from, to, ok := h.loadLedger(c)
	if !ok {
		return
	}

	summary := ledger.AggregateDispatches(dispatches)
	pending := 0
	for _, d := range dispatches {
		if !d.SlipMatched {
			pending++
		}
	}

	util.Success(c, util.Response{
		"dairy_plant": plant,
		"from_date":   from,
		"to_date":     to,
		"dispatches":  dispatches,
		"payments":    payments,
		"summary": util.Response{
			"total_milk_kg":    summary.TotalQtyKg,
			"total_receivable": summary.TotalNetReceivable,
			"total_received":   ledger.DairyPaymentTotal(payments),
			"pending_slips":    pending,
			"balance":          plant.Balance,
		},
	})
}

// Statement renders the plant's printable account statement.
func (h *DairyPlantHandler) Statement(c *gin.Context) {
	plant, dispatches, payments, from, to, ok := h.loadLedger(c)
	if !ok {
		return
	}

	html, err := h.renderer.PlantStatement(billing.PlantStatementData{
		Plant:       plant,
		FromDate:    from,
		ToDate:      to,
		Dispatches:  dispatches,
		Payments:    payments,
		Summary:     ledger.AggregateDispatches(dispatches),
		PaidInRange: ledger.DairyPaymentTotal(payments),
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to render statement")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *DairyPlantHandler) loadLedger(c *gin.Context) (models.DairyPlant, []models.Dispatch, []models.DairyPayment, string, string, bool) {
	var plant models.DairyPlant
	if err := h.db.First(&plant, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "dairy plant not found")
		return plant, nil, nil, "", "", false
	}

	from, to, err := dateRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return plant, nil, nil, "", "", false
	}

	var dispatches []models.Dispatch
	if err := h.db.Where("dairy_plant_id = ? AND date >= ? AND date <= ?", plant.ID, from, to).
		Order("date ASC, created_at ASC").Find(&dispatches).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load dispatches")
		return plant, nil, nil, "", "", false
	}

	var payments []models.DairyPayment
	if err := h.db.Where("dairy_plant_id = ? AND date >= ? AND date <= ?", plant.ID, from, to).
		Order("date ASC, created_at ASC").Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load payments")
		return plant, nil, nil, "", "", false
	}

	return plant, dispatches, payments, from, to, true
}
