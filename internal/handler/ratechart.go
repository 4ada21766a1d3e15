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

type RateChartHandler struct {
	db *gorm.DB
}

func NewRateChartHandler(db *gorm.DB) *RateChartHandler {
	return &RateChartHandler{db: db}
}

type rateChartRequest struct {
	Name      string             `json:"name" binding:"required,min=2,max=64"`
	Entries   []models.RateEntry `json:"entries" binding:"required,min=1,dive"`
	IsDefault bool               `json:"is_default"`
}

// Create stores a rate chart. Marking it default unsets any previous default
// in the same transaction so at most one chart is ever the default.
func (h *RateChartHandler) Create(c *gin.Context) {
	var req rateChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	chart := models.RateChart{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Entries:   req.Entries,
		IsDefault: req.IsDefault,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if chart.IsDefault {
			if err := tx.Model(&models.RateChart{}).Where("is_default = ?", true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&chart).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create rate chart")
		return
	}

	util.Success(c, util.Response{"rate_chart": chart})
}

// Default returns the chart collections are priced from, if one is set.
func (h *RateChartHandler) Default(c *gin.Context) {
	var chart models.RateChart
	if err := h.db.First(&chart, "is_default = ?", true).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "no default rate chart configured")
		return
	}
	util.Success(c, util.Response{"rate_chart": chart})
}

// List returns all rate charts, default first.
func (h *RateChartHandler) List(c *gin.Context) {
	var charts []models.RateChart
	if err := h.db.Order("is_default DESC, created_at DESC").Find(&charts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list rate charts")
		return
	}
	util.Success(c, util.Response{"rate_charts": charts})
}

// Update replaces a chart's name and entries, handling the default flag the
// same way as Create.
func (h *RateChartHandler) Update(c *gin.Context) {
	var chart models.RateChart
	if err := h.db.First(&chart, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "rate chart not found")
		return
	}

	var req rateChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	chart.Name = req.Name
	chart.Entries = req.Entries
	chart.IsDefault = req.IsDefault

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if chart.IsDefault {
			if err := tx.Model(&models.RateChart{}).
				Where("is_default = ? AND id <> ?", true, chart.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&chart).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update rate chart")
		return
	}

	util.Success(c, util.Response{"rate_chart": chart})
}

// Delete removes a rate chart. Collections keep their stored rate, so
// deleting a chart never rewrites history.
func (h *RateChartHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.RateChart{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete rate chart")
		return
	}
	if result.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "rate chart not found")
		return
	}
	util.Success(c, util.Response{"message": "rate chart deleted"})
}

type calculateRateRequest struct {
	Fat float64  `json:"fat" binding:"required,gt=0"`
	SNF *float64 `json:"snf"`
}

// CalculateRate previews the rate for a fat/SNF reading against the default
// chart, so the counter screen can show the price before saving.
func (h *RateChartHandler) CalculateRate(c *gin.Context) {
	var req calculateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	snf := reconcile.SNFFromFat(req.Fat)
	if req.SNF != nil && *req.SNF > 0 {
		snf = *req.SNF
	}

	var entries []models.RateEntry
	source := "base_formula"
	var chart models.RateChart
	if err := h.db.First(&chart, "is_default = ?", true).Error; err == nil {
		entries = chart.Entries
		source = chart.Name
	}

	util.Success(c, util.Response{
		"fat":    req.Fat,
		"snf":    snf,
		"rate":   reconcile.RateFor(entries, req.Fat, snf),
		"source": source,
	})
}
