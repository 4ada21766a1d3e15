package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/models"
)

func newRateChartRouter(db *gorm.DB) *gin.Engine {
	h := NewRateChartHandler(db)
	r := gin.New()
	r.POST("/rate-charts", h.Create)
	r.GET("/rate-charts", h.List)
	r.PUT("/rate-charts/:id", h.Update)
	r.DELETE("/rate-charts/:id", h.Delete)
	r.POST("/rate-charts/calculate-rate", h.CalculateRate)
	return r
}

func TestRateChartCreate_SingleDefault(t *testing.T) {
	db := newTestDB(t)
	r := newRateChartRouter(db)

	entries := []map[string]interface{}{{"fat": 4.0, "snf": 8.5, "rate": 41.0}}
	code, _ := doJSON(t, r, "POST", "/rate-charts", map[string]interface{}{
		"name": "Winter", "entries": entries, "is_default": true,
	})
	if code != http.StatusOK {
		t.Fatalf("first create status = %d", code)
	}
	code, _ = doJSON(t, r, "POST", "/rate-charts", map[string]interface{}{
		"name": "Summer", "entries": entries, "is_default": true,
	})
	if code != http.StatusOK {
		t.Fatalf("second create status = %d", code)
	}

	var defaults []models.RateChart
	if err := db.Where("is_default = ?", true).Find(&defaults).Error; err != nil {
		t.Fatalf("query defaults: %v", err)
	}
	if len(defaults) != 1 || defaults[0].Name != "Summer" {
		t.Errorf("defaults = %+v, want only Summer", defaults)
	}
}

func TestCalculateRate_BaseFormulaWithoutChart(t *testing.T) {
	db := newTestDB(t)
	r := newRateChartRouter(db)

	code, envelope := doJSON(t, r, "POST", "/rate-charts/calculate-rate", map[string]interface{}{
		"fat": 4.0, "snf": 8.5,
	})
	if code != http.StatusOK {
		t.Fatalf("calculate status = %d, body = %v", code, envelope)
	}

	var data struct {
		Rate   float64 `json:"rate"`
		Source string  `json:"source"`
	}
	decodeData(t, envelope, &data)
	if data.Rate != 41 {
		t.Errorf("rate = %v, want 41 from base formula", data.Rate)
	}
	if data.Source != "base_formula" {
		t.Errorf("source = %q, want base_formula", data.Source)
	}
}

func TestCalculateRate_UsesDefaultChart(t *testing.T) {
	db := newTestDB(t)
	r := newRateChartRouter(db)

	doJSON(t, r, "POST", "/rate-charts", map[string]interface{}{
		"name": "Summer",
		"entries": []map[string]interface{}{
			{"fat": 4.0, "snf": 8.5, "rate": 38.0},
			{"fat": 6.0, "snf": 9.0, "rate": 48.0},
		},
		"is_default": true,
	})

	code, envelope := doJSON(t, r, "POST", "/rate-charts/calculate-rate", map[string]interface{}{
		"fat": 5.9, "snf": 9.1,
	})
	if code != http.StatusOK {
		t.Fatalf("calculate status = %d", code)
	}

	var data struct {
		Rate   float64 `json:"rate"`
		Source string  `json:"source"`
	}
	decodeData(t, envelope, &data)
	if data.Rate != 48 {
		t.Errorf("rate = %v, want 48 from nearest entry", data.Rate)
	}
	if data.Source != "Summer" {
		t.Errorf("source = %q, want Summer", data.Source)
	}
}
