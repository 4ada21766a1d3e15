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

type ExpenseHandler struct {
	db *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{db: db}
}

type expenseRequest struct {
	Date     string  `json:"date" binding:"required"`
	Category string  `json:"category" binding:"required,min=2,max=32"`
	Amount   float64 `json:"amount" binding:"required"`
	Notes    string  `json:"notes"`
}

// Create records an operating expense.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req expenseRequest
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

	expense := models.Expense{
		ID:       uuid.NewString(),
		Date:     req.Date,
		Category: req.Category,
		Amount:   reconcile.Round2(req.Amount),
		Notes:    req.Notes,
	}
	if err := h.db.Create(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record expense")
		return
	}

	util.Success(c, util.Response{"expense": expense})
}

// List returns expenses filtered by category and date range.
func (h *ExpenseHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Expense{}).Order("date DESC, created_at DESC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("from_date") != "" || c.Query("to_date") != "" {
		from, to, err := dateRange(c)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		query = query.Where("date >= ? AND date <= ?", from, to)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list expenses")
		return
	}

	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}

	util.Success(c, util.Response{
		"expenses":     expenses,
		"total":        len(expenses),
		"total_amount": reconcile.Round2(total),
	})
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Expense{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete expense")
		return
	}
	if result.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
		return
	}
	util.Success(c, util.Response{"message": "expense deleted"})
}
