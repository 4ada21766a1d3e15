package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/ledger"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

type FarmerHandler struct {
	db *gorm.DB
}

func NewFarmerHandler(db *gorm.DB) *FarmerHandler {
	return &FarmerHandler{db: db}
}

type farmerRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=64"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address"`
	Village      string `json:"village"`
	BankAccount  string `json:"bank_account"`
	IFSCCode     string `json:"ifsc_code"`
	AadharNumber string `json:"aadhar_number"`
}

// Create registers a new farmer with zeroed running totals.
func (h *FarmerHandler) Create(c *gin.Context) {
	var req farmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidatePhone(req.Phone); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	farmer := models.Farmer{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		Village:      req.Village,
		BankAccount:  req.BankAccount,
		IFSCCode:     req.IFSCCode,
		AadharNumber: req.AadharNumber,
		IsActive:     true,
	}
	if err := h.db.Create(&farmer).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create farmer")
		return
	}

	util.Success(c, util.Response{"farmer": farmer})
}

// List returns farmers, newest first, with optional search and is_active filters.
func (h *FarmerHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Farmer{}).Order("created_at DESC")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR village LIKE ?", like, like, like)
	}
	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var farmers []models.Farmer
	if err := query.Find(&farmers).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list farmers")
		return
	}

	util.Success(c, util.Response{"farmers": farmers, "total": len(farmers)})
}

// Get returns one farmer by id.
func (h *FarmerHandler) Get(c *gin.Context) {
	var farmer models.Farmer
	if err := h.db.First(&farmer, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "farmer not found")
		return
	}
	util.Success(c, util.Response{"farmer": farmer})
}

type farmerUpdateRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=64"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Village      *string `json:"village"`
	BankAccount  *string `json:"bank_account"`
	IFSCCode     *string `json:"ifsc_code"`
	AadharNumber *string `json:"aadhar_number"`
	IsActive     *bool   `json:"is_active"`
}

// Update edits farmer profile fields. All fields are optional; absent ones
// keep their value. Running totals are never updated here; they only move
// with collections and payments.
func (h *FarmerHandler) Update(c *gin.Context) {
	var farmer models.Farmer
	if err := h.db.First(&farmer, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "farmer not found")
		return
	}

	var req farmerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		if err := util.ValidatePhone(*req.Phone); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Village != nil {
		updates["village"] = *req.Village
	}
	if req.BankAccount != nil {
		updates["bank_account"] = *req.BankAccount
	}
	if req.IFSCCode != nil {
		updates["ifsc_code"] = *req.IFSCCode
	}
	if req.AadharNumber != nil {
		updates["aadhar_number"] = *req.AadharNumber
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.db.Model(&farmer).Updates(updates).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update farmer")
			return
		}
	}

	util.Success(c, util.Response{"farmer": farmer})
}

// Delete deactivates a farmer. History must stay intact for bills, so rows
// are never removed.
func (h *FarmerHandler) Delete(c *gin.Context) {
	result := h.db.Model(&models.Farmer{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", false)
	if result.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to deactivate farmer")
		return
	}
	if result.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "farmer not found")
		return
	}

	util.Success(c, util.Response{"message": "farmer deactivated"})
}

// Ledger returns the farmer's collections and payments for a date range,
// with period totals and the running balance.
func (h *FarmerHandler) Ledger(c *gin.Context) {
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
	util.Success(c, util.Response{
		"farmer":      farmer,
		"from_date":   from,
		"to_date":     to,
		"collections": collections,
		"payments":    payments,
		"summary": util.Response{
			"total_milk":   summary.TotalQtyLiters,
			"total_amount": summary.TotalAmount,
			"avg_fat":      summary.AvgFat,
			"avg_snf":      summary.AvgSNF,
			"total_paid":   ledger.PaymentTotal(payments),
			"balance":      farmer.Balance,
		},
	})
}
