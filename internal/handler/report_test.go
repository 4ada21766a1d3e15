package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/billing"
	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/models"
)

func newReportRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	renderer, err := billing.NewRenderer(config.DairyConfig{Name: "Nirbani Dairy"})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	h := NewReportHandler(db, renderer)
	r := gin.New()
	r.GET("/reports/daily", h.Daily)
	r.GET("/reports/farmer", h.Farmer)
	r.GET("/reports/farmer/:id", h.FarmerDetail)
	r.GET("/dairy/profit-report", h.Profit)
	r.GET("/dairy/fat-analysis", h.FatAnalysis)
	return r
}

func TestFarmerDetailReport(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	r := newReportRouter(t, db)

	collections := []models.MilkCollection{
		{ID: "c1", FarmerID: farmer.ID, FarmerName: farmer.Name, Date: "2025-06-01",
			Shift: "morning", Quantity: 10, Fat: 4, SNF: 8.5, Rate: 41, Amount: 410},
		{ID: "c2", FarmerID: farmer.ID, FarmerName: farmer.Name, Date: "2025-06-02",
			Shift: "evening", Quantity: 12, Fat: 4.2, SNF: 8.6, Rate: 42, Amount: 504},
	}
	for _, col := range collections {
		if err := db.Create(&col).Error; err != nil {
			t.Fatalf("seed collection: %v", err)
		}
	}
	payment := models.Payment{ID: "p1", FarmerID: farmer.ID, Date: "2025-06-03",
		Amount: 400, PaymentMode: "cash"}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	code, envelope := doJSON(t, r, "GET",
		"/reports/farmer/"+farmer.ID+"?from_date=2025-06-01&to_date=2025-06-30", nil)
	if code != http.StatusOK {
		t.Fatalf("farmer report status = %d, body = %v", code, envelope)
	}

	var data struct {
		Farmer      models.Farmer           `json:"farmer"`
		Collections []models.MilkCollection `json:"collections"`
		Payments    []models.Payment        `json:"payments"`
		Summary     struct {
			TotalMilk     float64 `json:"total_milk"`
			TotalAmount   float64 `json:"total_amount"`
			TotalPaid     float64 `json:"total_paid"`
			PeriodBalance float64 `json:"period_balance"`
		} `json:"summary"`
	}
	decodeData(t, envelope, &data)

	if data.Farmer.ID != farmer.ID {
		t.Errorf("farmer id = %q, want %q", data.Farmer.ID, farmer.ID)
	}
	if len(data.Collections) != 2 || len(data.Payments) != 1 {
		t.Fatalf("report rows = %d collections, %d payments, want 2/1",
			len(data.Collections), len(data.Payments))
	}
	if data.Summary.TotalMilk != 22 {
		t.Errorf("total milk = %v, want 22", data.Summary.TotalMilk)
	}
	if data.Summary.TotalAmount != 914 {
		t.Errorf("total amount = %v, want 914", data.Summary.TotalAmount)
	}
	if data.Summary.PeriodBalance != 514 {
		t.Errorf("period balance = %v, want 914 - 400 = 514", data.Summary.PeriodBalance)
	}
}

func TestFarmerDetailReport_UnknownFarmer(t *testing.T) {
	db := newTestDB(t)
	r := newReportRouter(t, db)

	code, _ := doJSON(t, r, "GET", "/reports/farmer/no-such-id", nil)
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestFarmerReport_AggregatesAcrossFarmers(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	r := newReportRouter(t, db)

	rows := []models.MilkCollection{
		{ID: "c1", FarmerID: farmer.ID, FarmerName: farmer.Name, Date: "2025-06-01",
			Shift: "morning", Quantity: 10, Fat: 4, SNF: 8.5, Rate: 41, Amount: 410},
		{ID: "c2", FarmerID: "other-farmer", FarmerName: "Suresh Singh", Date: "2025-06-01",
			Shift: "morning", Quantity: 5, Fat: 3.5, SNF: 8.4, Rate: 38, Amount: 190},
	}
	for _, col := range rows {
		if err := db.Create(&col).Error; err != nil {
			t.Fatalf("seed collection: %v", err)
		}
	}

	code, envelope := doJSON(t, r, "GET",
		"/reports/farmer?from_date=2025-06-01&to_date=2025-06-30", nil)
	if code != http.StatusOK {
		t.Fatalf("aggregate report status = %d", code)
	}

	var data struct {
		Farmers []map[string]interface{} `json:"farmers"`
	}
	decodeData(t, envelope, &data)
	if len(data.Farmers) != 2 {
		t.Errorf("farmer rows = %d, want 2", len(data.Farmers))
	}
}
