package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/models"
)

func newDispatchRouter(db *gorm.DB) *gin.Engine {
	h := NewDispatchHandler(db)
	r := gin.New()
	r.POST("/dispatches", h.Create)
	r.GET("/dispatches", h.List)
	r.PUT("/dispatches/:id/slip-match", h.SlipMatch)
	r.GET("/dispatches/:id", h.Get)
	r.DELETE("/dispatches/:id", h.Delete)
	return r
}

func createDispatch(t *testing.T, r *gin.Engine, plantID string) models.Dispatch {
	t.Helper()

	code, envelope := doJSON(t, r, "POST", "/dispatches", map[string]interface{}{
		"dairy_plant_id": plantID,
		"date":           "2025-06-01",
		"tanker_number":  "RJ14 GA 1234",
		"quantity_kg":    500.0,
		"avg_fat":        6.8,
		"avg_snf":        8.9,
		"rate_per_kg":    30.0,
		"deductions": []map[string]interface{}{
			{"type": "transport", "amount": 200.0},
		},
	})
	if code != http.StatusOK {
		t.Fatalf("create dispatch status = %d, body = %v", code, envelope)
	}

	var data struct {
		Dispatch models.Dispatch `json:"dispatch"`
	}
	decodeData(t, envelope, &data)
	return data.Dispatch
}

func TestDispatchCreate_ComputesAmounts(t *testing.T) {
	db := newTestDB(t)
	plant := seedPlant(t, db)
	r := newDispatchRouter(db)

	dispatch := createDispatch(t, r, plant.ID)

	if dispatch.GrossAmount != 15000 {
		t.Errorf("gross = %v, want 15000", dispatch.GrossAmount)
	}
	if dispatch.TotalDeduction != 200 {
		t.Errorf("deductions = %v, want 200", dispatch.TotalDeduction)
	}
	if dispatch.NetReceivable != 14800 {
		t.Errorf("net = %v, want 14800", dispatch.NetReceivable)
	}
	if dispatch.SlipMatched {
		t.Error("new dispatch must start unmatched")
	}

	var got models.DairyPlant
	if err := db.First(&got, "id = ?", plant.ID).Error; err != nil {
		t.Fatalf("reload plant: %v", err)
	}
	if got.TotalMilkSupplied != 500 || got.TotalAmount != 14800 || got.Balance != 14800 {
		t.Errorf("plant totals = kg %v, amount %v, balance %v, want 500/14800/14800",
			got.TotalMilkSupplied, got.TotalAmount, got.Balance)
	}
}

func TestDispatchSlipMatch(t *testing.T) {
	db := newTestDB(t)
	plant := seedPlant(t, db)
	r := newDispatchRouter(db)
	dispatch := createDispatch(t, r, plant.ID)

	code, envelope := doJSON(t, r, "PUT", "/dispatches/"+dispatch.ID+"/slip-match", map[string]interface{}{
		"slip_fat":    6.5,
		"slip_amount": 14600.0,
	})
	if code != http.StatusOK {
		t.Fatalf("slip match status = %d, body = %v", code, envelope)
	}

	var got models.Dispatch
	if err := db.First(&got, "id = ?", dispatch.ID).Error; err != nil {
		t.Fatalf("reload dispatch: %v", err)
	}
	if !got.SlipMatched {
		t.Fatal("dispatch should be matched")
	}
	if got.AmountDifference != 200 {
		t.Errorf("amount difference = %v, want 200", got.AmountDifference)
	}
	if got.FatDifference != 0.3 {
		t.Errorf("fat difference = %v, want 0.3", got.FatDifference)
	}
}

func TestDispatchSlipMatch_RejectsSecondMatch(t *testing.T) {
	db := newTestDB(t)
	plant := seedPlant(t, db)
	r := newDispatchRouter(db)
	dispatch := createDispatch(t, r, plant.ID)

	body := map[string]interface{}{"slip_fat": 6.5, "slip_amount": 14600.0}
	if code, _ := doJSON(t, r, "PUT", "/dispatches/"+dispatch.ID+"/slip-match", body); code != http.StatusOK {
		t.Fatalf("first match status = %d", code)
	}

	code, _ := doJSON(t, r, "PUT", "/dispatches/"+dispatch.ID+"/slip-match", body)
	if code != http.StatusBadRequest {
		t.Errorf("second match status = %d, want 400", code)
	}
}

func TestDispatchDelete_RevertsPlantTotals(t *testing.T) {
	db := newTestDB(t)
	plant := seedPlant(t, db)
	r := newDispatchRouter(db)
	dispatch := createDispatch(t, r, plant.ID)

	code, _ := doJSON(t, r, "DELETE", "/dispatches/"+dispatch.ID, nil)
	if code != http.StatusOK {
		t.Fatalf("delete status = %d", code)
	}

	var got models.DairyPlant
	if err := db.First(&got, "id = ?", plant.ID).Error; err != nil {
		t.Fatalf("reload plant: %v", err)
	}
	if got.TotalMilkSupplied != 0 || got.TotalAmount != 0 || got.Balance != 0 {
		t.Errorf("plant totals after delete = kg %v, amount %v, balance %v, want zeros",
			got.TotalMilkSupplied, got.TotalAmount, got.Balance)
	}
}

func TestDispatchList_SlipStatusFilter(t *testing.T) {
	db := newTestDB(t)
	plant := seedPlant(t, db)
	r := newDispatchRouter(db)

	first := createDispatch(t, r, plant.ID)
	createDispatch(t, r, plant.ID)

	body := map[string]interface{}{"slip_fat": 6.5, "slip_amount": 14600.0}
	if code, _ := doJSON(t, r, "PUT", "/dispatches/"+first.ID+"/slip-match", body); code != http.StatusOK {
		t.Fatalf("slip match failed")
	}

	_, envelope := doJSON(t, r, "GET", "/dispatches?slip_status=pending", nil)
	var data struct {
		Dispatches []models.Dispatch `json:"dispatches"`
	}
	decodeData(t, envelope, &data)
	if len(data.Dispatches) != 1 {
		t.Fatalf("pending dispatches = %d, want 1", len(data.Dispatches))
	}
	if data.Dispatches[0].SlipMatched {
		t.Error("pending filter returned a matched dispatch")
	}
}
