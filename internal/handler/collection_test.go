package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/models"
)

func newCollectionRouter(db *gorm.DB) *gin.Engine {
	h := NewCollectionHandler(db, newTestSMS(), zap.NewNop())
	r := gin.New()
	r.POST("/collections", h.Create)
	r.GET("/collections", h.List)
	r.GET("/collections/today", h.Today)
	r.DELETE("/collections/:id", h.Delete)
	return r
}

func TestCollectionCreate_UpdatesFarmerTotals(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	r := newCollectionRouter(db)

	rate := 30.0
	code, envelope := doJSON(t, r, "POST", "/collections", map[string]interface{}{
		"farmer_id": farmer.ID,
		"date":      "2025-06-01",
		"shift":     "morning",
		"quantity":  10.0,
		"fat":       4.0,
		"snf":       8.5,
		"rate":      rate,
	})
	if code != http.StatusOK {
		t.Fatalf("create status = %d, body = %v", code, envelope)
	}

	var data struct {
		Collection models.MilkCollection `json:"collection"`
	}
	decodeData(t, envelope, &data)
	if data.Collection.Amount != 300 {
		t.Errorf("amount = %v, want 300", data.Collection.Amount)
	}

	var got models.Farmer
	if err := db.First(&got, "id = ?", farmer.ID).Error; err != nil {
		t.Fatalf("reload farmer: %v", err)
	}
	if got.TotalMilk != 10 || got.TotalDue != 300 || got.Balance != 300 {
		t.Errorf("farmer totals = milk %v, due %v, balance %v, want 10/300/300",
			got.TotalMilk, got.TotalDue, got.Balance)
	}
}

func TestCollectionCreate_RateFromDefaultChart(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	chart := models.RateChart{
		ID:   uuid.NewString(),
		Name: "Summer 2025",
		Entries: []models.RateEntry{
			{Fat: 4.0, SNF: 8.5, Rate: 41},
			{Fat: 5.0, SNF: 9.0, Rate: 45},
		},
		IsDefault: true,
	}
	if err := db.Create(&chart).Error; err != nil {
		t.Fatalf("seed chart: %v", err)
	}
	r := newCollectionRouter(db)

	code, envelope := doJSON(t, r, "POST", "/collections", map[string]interface{}{
		"farmer_id": farmer.ID,
		"date":      "2025-06-01",
		"shift":     "evening",
		"quantity":  10.0,
		"fat":       4.1,
	})
	if code != http.StatusOK {
		t.Fatalf("create status = %d, body = %v", code, envelope)
	}

	var data struct {
		Collection models.MilkCollection `json:"collection"`
	}
	decodeData(t, envelope, &data)

	// SNF defaults from fat: 8.5 + 4.1/4 = 9.53, nearest chart entry is 41.
	if data.Collection.SNF != 9.53 {
		t.Errorf("snf = %v, want 9.53", data.Collection.SNF)
	}
	if data.Collection.Rate != 41 {
		t.Errorf("rate = %v, want 41", data.Collection.Rate)
	}
	if data.Collection.Amount != 410 {
		t.Errorf("amount = %v, want 410", data.Collection.Amount)
	}
}

func TestCollectionCreate_BaseFormulaWithoutChart(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	r := newCollectionRouter(db)

	code, envelope := doJSON(t, r, "POST", "/collections", map[string]interface{}{
		"farmer_id": farmer.ID,
		"date":      "2025-06-01",
		"shift":     "morning",
		"quantity":  10.0,
		"fat":       4.0,
	})
	if code != http.StatusOK {
		t.Fatalf("create status = %d, body = %v", code, envelope)
	}

	var data struct {
		Collection models.MilkCollection `json:"collection"`
	}
	decodeData(t, envelope, &data)

	// fat*6 + snf*2 with snf defaulted to 9.5
	if data.Collection.Rate != 43 {
		t.Errorf("rate = %v, want 43", data.Collection.Rate)
	}
}

func TestCollectionCreate_RejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	r := newCollectionRouter(db)

	testCases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing farmer", map[string]interface{}{
			"date": "2025-06-01", "shift": "morning", "quantity": 10.0, "fat": 4.0}},
		{"bad date", map[string]interface{}{
			"farmer_id": farmer.ID, "date": "01-06-2025", "shift": "morning", "quantity": 10.0, "fat": 4.0}},
		{"bad shift", map[string]interface{}{
			"farmer_id": farmer.ID, "date": "2025-06-01", "shift": "noon", "quantity": 10.0, "fat": 4.0}},
		{"zero quantity", map[string]interface{}{
			"farmer_id": farmer.ID, "date": "2025-06-01", "shift": "morning", "quantity": 0.0, "fat": 4.0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := doJSON(t, r, "POST", "/collections", tc.body)
			if code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", code)
			}
		})
	}
}

func TestCollectionDelete_RevertsFarmerTotals(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	r := newCollectionRouter(db)

	_, envelope := doJSON(t, r, "POST", "/collections", map[string]interface{}{
		"farmer_id": farmer.ID,
		"date":      "2025-06-01",
		"shift":     "morning",
		"quantity":  10.0,
		"fat":       4.0,
		"rate":      30.0,
	})
	var data struct {
		Collection models.MilkCollection `json:"collection"`
	}
	decodeData(t, envelope, &data)

	code, _ := doJSON(t, r, "DELETE", "/collections/"+data.Collection.ID, nil)
	if code != http.StatusOK {
		t.Fatalf("delete status = %d", code)
	}

	var got models.Farmer
	if err := db.First(&got, "id = ?", farmer.ID).Error; err != nil {
		t.Fatalf("reload farmer: %v", err)
	}
	if got.TotalMilk != 0 || got.TotalDue != 0 || got.Balance != 0 {
		t.Errorf("farmer totals after delete = milk %v, due %v, balance %v, want zeros",
			got.TotalMilk, got.TotalDue, got.Balance)
	}
}
