package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

type ExportHandler struct {
	db *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{db: db}
}

// Collections exports milk collections for a date range as CSV or XLSX.
func (h *ExportHandler) Collections(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var collections []models.MilkCollection
	if err := h.db.Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, created_at ASC").Find(&collections).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load collections")
		return
	}

	header := []string{"Date", "Shift", "Farmer", "Quantity (L)", "Fat", "SNF", "Rate", "Amount"}
	rows := make([][]string, 0, len(collections))
	for _, col := range collections {
		rows = append(rows, []string{
			col.Date, col.Shift, col.FarmerName,
			fmt.Sprintf("%.1f", col.Quantity),
			fmt.Sprintf("%.1f", col.Fat),
			fmt.Sprintf("%.2f", col.SNF),
			fmt.Sprintf("%.2f", col.Rate),
			fmt.Sprintf("%.2f", col.Amount),
		})
	}

	h.write(c, "collections_"+from+"_"+to, header, rows)
}

// Payments exports farmer payments for a date range.
func (h *ExportHandler) Payments(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var payments []models.Payment
	if err := h.db.Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, created_at ASC").Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load payments")
		return
	}

	header := []string{"Date", "Farmer", "Amount", "Mode", "Reference", "Notes"}
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			p.Date, p.FarmerName,
			fmt.Sprintf("%.2f", p.Amount),
			p.PaymentMode, p.ReferenceNumber, p.Notes,
		})
	}

	h.write(c, "payments_"+from+"_"+to, header, rows)
}

// Dispatches exports tanker dispatches for a date range including slip
// matching status and variances.
func (h *ExportHandler) Dispatches(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var dispatches []models.Dispatch
	if err := h.db.Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, created_at ASC").Find(&dispatches).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load dispatches")
		return
	}

	header := []string{"Date", "Plant", "Tanker", "Qty (kg)", "Avg Fat", "Rate/kg",
		"Gross", "Deductions", "Net", "Slip Matched", "Slip Amount", "Amount Diff", "Fat Diff"}
	rows := make([][]string, 0, len(dispatches))
	for _, d := range dispatches {
		matched := "no"
		if d.SlipMatched {
			matched = "yes"
		}
		rows = append(rows, []string{
			d.Date, d.DairyPlantName, d.TankerNumber,
			fmt.Sprintf("%.1f", d.QuantityKg),
			fmt.Sprintf("%.1f", d.AvgFat),
			fmt.Sprintf("%.2f", d.RatePerKg),
			fmt.Sprintf("%.2f", d.GrossAmount),
			fmt.Sprintf("%.2f", d.TotalDeduction),
			fmt.Sprintf("%.2f", d.NetReceivable),
			matched,
			fmt.Sprintf("%.2f", d.SlipAmount),
			fmt.Sprintf("%.2f", d.AmountDifference),
			fmt.Sprintf("%.2f", d.FatDifference),
		})
	}

	h.write(c, "dispatches_"+from+"_"+to, header, rows)
}

// Farmers exports the farmer directory with running balances.
func (h *ExportHandler) Farmers(c *gin.Context) {
	var farmers []models.Farmer
	if err := h.db.Order("name ASC").Find(&farmers).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load farmers")
		return
	}

	header := []string{"Name", "Phone", "Village", "Total Milk (L)", "Total Due", "Total Paid", "Balance", "Active"}
	rows := make([][]string, 0, len(farmers))
	for _, f := range farmers {
		active := "no"
		if f.IsActive {
			active = "yes"
		}
		rows = append(rows, []string{
			f.Name, f.Phone, f.Village,
			fmt.Sprintf("%.1f", f.TotalMilk),
			fmt.Sprintf("%.2f", f.TotalDue),
			fmt.Sprintf("%.2f", f.TotalPaid),
			fmt.Sprintf("%.2f", f.Balance),
			active,
		})
	}

	h.write(c, "farmers", header, rows)
}

// FarmerLedger exports one farmer's collections and payments for a range as
// a two-sheet workbook.
func (h *ExportHandler) FarmerLedger(c *gin.Context) {
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

	f := excelize.NewFile()
	defer f.Close()

	colSheet := "Collections"
	f.SetSheetName("Sheet1", colSheet)
	colHeader := []string{"Date", "Shift", "Quantity (L)", "Fat", "SNF", "Rate", "Amount"}
	for i, cell := range colHeader {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(colSheet, col+"1", cell)
	}
	for r, col := range collections {
		values := []interface{}{col.Date, col.Shift, col.Quantity, col.Fat, col.SNF, col.Rate, col.Amount}
		for i, v := range values {
			name, _ := excelize.ColumnNumberToName(i + 1)
			_ = f.SetCellValue(colSheet, fmt.Sprintf("%s%d", name, r+2), v)
		}
	}

	paySheet := "Payments"
	_, _ = f.NewSheet(paySheet)
	payHeader := []string{"Date", "Amount", "Mode", "Reference", "Notes"}
	for i, cell := range payHeader {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(paySheet, col+"1", cell)
	}
	for r, p := range payments {
		values := []interface{}{p.Date, p.Amount, p.PaymentMode, p.ReferenceNumber, p.Notes}
		for i, v := range values {
			name, _ := excelize.ColumnNumberToName(i + 1)
			_ = f.SetCellValue(paySheet, fmt.Sprintf("%s%d", name, r+2), v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="ledger_`+farmer.Name+"_"+from+"_"+to+`.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
	}
}

// write streams the rows as CSV by default or XLSX when format=xlsx.
func (h *ExportHandler) write(c *gin.Context, name string, header []string, rows [][]string) {
	if c.Query("format") == "xlsx" {
		h.writeXLSX(c, name, header, rows)
		return
	}
	h.writeCSV(c, name, header, rows)
}

func (h *ExportHandler) writeCSV(c *gin.Context, name string, header []string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+name+`.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

func (h *ExportHandler) writeXLSX(c *gin.Context, name string, header []string, rows [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	for i, cell := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheet, col+"1", cell)
	}
	for r, row := range rows {
		for i, cell := range row {
			col, _ := excelize.ColumnNumberToName(i + 1)
			_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r+2), cell)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
	}
}
