package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/billing"
	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/ledger"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

type BillHandler struct {
	db       *gorm.DB
	renderer *billing.Renderer
}

func NewBillHandler(db *gorm.DB, renderer *billing.Renderer) *BillHandler {
	return &BillHandler{db: db, renderer: renderer}
}

func (h *BillHandler) billData(c *gin.Context) (billing.FarmerBillData, bool) {
	var data billing.FarmerBillData

	var farmer models.Farmer
	if err := h.db.First(&farmer, "id = ?", c.Param("id")).Error; err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "farmer not found")
		return data, false
	}

	from, to, err := dateRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return data, false
	}

	var collections []models.MilkCollection
	if err := h.db.Where("farmer_id = ? AND date >= ? AND date <= ?", farmer.ID, from, to).
		Order("date ASC, created_at ASC").Find(&collections).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load collections")
		return data, false
	}

	var payments []models.Payment
	if err := h.db.Where("farmer_id = ? AND date >= ? AND date <= ?", farmer.ID, from, to).
		Order("date ASC, created_at ASC").Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load payments")
		return data, false
	}

	return billing.FarmerBillData{
		Farmer:      farmer,
		FromDate:    from,
		ToDate:      to,
		Collections: collections,
		Payments:    payments,
		Summary:     ledger.AggregateCollections(collections),
		PaidInRange: ledger.PaymentTotal(payments),
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
	}, true
}

func (h *BillHandler) serve(c *gin.Context, render func(billing.FarmerBillData) (string, error)) {
	data, ok := h.billData(c)
	if !ok {
		return
	}
	html, err := render(data)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to render bill")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// FarmerBill serves the standard printable bill.
func (h *BillHandler) FarmerBill(c *gin.Context) {
	h.serve(c, h.renderer.FarmerBill)
}

// ThermalBill serves the 58mm receipt bill.
func (h *BillHandler) ThermalBill(c *gin.Context) {
	h.serve(c, h.renderer.ThermalBill)
}

// A4Bill serves the full-page invoice bill.
func (h *BillHandler) A4Bill(c *gin.Context) {
	h.serve(c, h.renderer.A4Bill)
}

// Share returns a wa.me link carrying the farmer's bill summary, so the
// operator can forward it from their own WhatsApp.
func (h *BillHandler) Share(c *gin.Context) {
	data, ok := h.billData(c)
	if !ok {
		return
	}

	dairy := config.Get().Dairy
	text := fmt.Sprintf(
		"%s\n%s जी का दूध बिल (%s से %s)\nकुल दूध: %.1f ली\nबिल राशि: ₹%.2f\nभुगतान: ₹%.2f\nबकाया: ₹%.2f",
		dairy.Name, data.Farmer.Name, data.FromDate, data.ToDate,
		data.Summary.TotalQtyLiters, data.Summary.TotalAmount,
		data.PaidInRange, data.Farmer.Balance)

	link := "https://wa.me/91" + data.Farmer.Phone + "?text=" + url.QueryEscape(text)
	util.Success(c, util.Response{
		"share_url": link,
		"message":   text,
	})
}
