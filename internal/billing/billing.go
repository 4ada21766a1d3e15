package billing

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/ledger"
	"github.com/nikka005/nirbani-sub001/internal/models"
)

// Renderer produces printable HTML documents: farmer bills in three formats,
// dairy plant statements and the daily collection report. Output is
// self-contained HTML meant to be opened and printed from a browser.
type Renderer struct {
	dairy config.DairyConfig
	tmpl  *template.Template
}

func NewRenderer(dairy config.DairyConfig) (*Renderer, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"qty":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}

	tmpl := template.New("billing").Funcs(funcs)
	for name, body := range map[string]string{
		"farmer_bill":     farmerBillTmpl,
		"thermal_bill":    thermalBillTmpl,
		"a4_bill":         a4BillTmpl,
		"plant_statement": plantStatementTmpl,
		"daily_report":    dailyReportTmpl,
	} {
		if _, err := tmpl.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
	}

	return &Renderer{dairy: dairy, tmpl: tmpl}, nil
}

// FarmerBillData is the model for all three farmer bill formats.
type FarmerBillData struct {
	Dairy       config.DairyConfig
	Farmer      models.Farmer
	FromDate    string
	ToDate      string
	Collections []models.MilkCollection
	Payments    []models.Payment
	Summary     ledger.CollectionSummary
	PaidInRange float64
	GeneratedAt string
}

// FarmerBill renders the standard farmer bill for a period.
func (r *Renderer) FarmerBill(data FarmerBillData) (string, error) {
	data.Dairy = r.dairy
	return r.render("farmer_bill", data)
}

// ThermalBill renders a compact 58mm receipt version of the farmer bill.
func (r *Renderer) ThermalBill(data FarmerBillData) (string, error) {
	data.Dairy = r.dairy
	return r.render("thermal_bill", data)
}

// A4Bill renders the full-page invoice version of the farmer bill.
func (r *Renderer) A4Bill(data FarmerBillData) (string, error) {
	data.Dairy = r.dairy
	return r.render("a4_bill", data)
}

// PlantStatementData is the model for a dairy plant account statement.
type PlantStatementData struct {
	Dairy       config.DairyConfig
	Plant       models.DairyPlant
	FromDate    string
	ToDate      string
	Dispatches  []models.Dispatch
	Payments    []models.DairyPayment
	Summary     ledger.DispatchSummary
	PaidInRange float64
	GeneratedAt string
}

// PlantStatement renders a dairy plant account statement for a period.
func (r *Renderer) PlantStatement(data PlantStatementData) (string, error) {
	data.Dairy = r.dairy
	return r.render("plant_statement", data)
}

// DailyReportData is the model for the printable daily collection report.
type DailyReportData struct {
	Dairy       config.DairyConfig
	Date        string
	Collections []models.MilkCollection
	Morning     ledger.CollectionSummary
	Evening     ledger.CollectionSummary
	Total       ledger.CollectionSummary
	GeneratedAt string
}

// DailyReport renders the printable report of one day's collections.
func (r *Renderer) DailyReport(data DailyReportData) (string, error) {
	data.Dairy = r.dairy
	return r.render("daily_report", data)
}

func (r *Renderer) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
