package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/models"
)

func newPaymentRouter(db *gorm.DB) *gin.Engine {
	h := NewPaymentHandler(db, newTestSMS(), zap.NewNop())
	r := gin.New()
	r.POST("/payments", h.Create)
	r.GET("/payments", h.List)
	r.DELETE("/payments/:id", h.Delete)
	return r
}

func TestPaymentCreate_UpdatesFarmerBalance(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	if err := db.Model(&farmer).Updates(map[string]interface{}{
		"total_due": 1000.0, "balance": 1000.0,
	}).Error; err != nil {
		t.Fatalf("seed balance: %v", err)
	}
	r := newPaymentRouter(db)

	code, envelope := doJSON(t, r, "POST", "/payments", map[string]interface{}{
		"farmer_id":    farmer.ID,
		"date":         "2025-06-10",
		"amount":       600.0,
		"payment_mode": "cash",
	})
	if code != http.StatusOK {
		t.Fatalf("create status = %d, body = %v", code, envelope)
	}

	var got models.Farmer
	if err := db.First(&got, "id = ?", farmer.ID).Error; err != nil {
		t.Fatalf("reload farmer: %v", err)
	}
	if got.TotalPaid != 600 || got.Balance != 400 {
		t.Errorf("farmer totals = paid %v, balance %v, want 600/400", got.TotalPaid, got.Balance)
	}
}

func TestPaymentCreate_AllowsOverpayment(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	r := newPaymentRouter(db)

	// advance payment with zero dues drives the balance negative
	code, _ := doJSON(t, r, "POST", "/payments", map[string]interface{}{
		"farmer_id":    farmer.ID,
		"date":         "2025-06-10",
		"amount":       500.0,
		"payment_mode": "upi",
	})
	if code != http.StatusOK {
		t.Fatalf("create status = %d", code)
	}

	var got models.Farmer
	if err := db.First(&got, "id = ?", farmer.ID).Error; err != nil {
		t.Fatalf("reload farmer: %v", err)
	}
	if got.Balance != -500 {
		t.Errorf("balance = %v, want -500", got.Balance)
	}
}

func TestPaymentCreate_RejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	r := newPaymentRouter(db)

	testCases := []struct {
		name string
		body map[string]interface{}
	}{
		{"negative amount", map[string]interface{}{
			"farmer_id": farmer.ID, "date": "2025-06-10", "amount": -50.0, "payment_mode": "cash"}},
		{"bad mode", map[string]interface{}{
			"farmer_id": farmer.ID, "date": "2025-06-10", "amount": 50.0, "payment_mode": "barter"}},
		{"bad date", map[string]interface{}{
			"farmer_id": farmer.ID, "date": "10/06/2025", "amount": 50.0, "payment_mode": "cash"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := doJSON(t, r, "POST", "/payments", tc.body)
			if code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", code)
			}
		})
	}
}

func TestPaymentDelete_RevertsFarmerBalance(t *testing.T) {
	db := newTestDB(t)
	farmer := seedFarmer(t, db)
	r := newPaymentRouter(db)

	_, envelope := doJSON(t, r, "POST", "/payments", map[string]interface{}{
		"farmer_id":    farmer.ID,
		"date":         "2025-06-10",
		"amount":       250.0,
		"payment_mode": "bank",
	})
	var data struct {
		Payment models.Payment `json:"payment"`
	}
	decodeData(t, envelope, &data)

	code, _ := doJSON(t, r, "DELETE", "/payments/"+data.Payment.ID, nil)
	if code != http.StatusOK {
		t.Fatalf("delete status = %d", code)
	}

	var got models.Farmer
	if err := db.First(&got, "id = ?", farmer.ID).Error; err != nil {
		t.Fatalf("reload farmer: %v", err)
	}
	if got.TotalPaid != 0 || got.Balance != 0 {
		t.Errorf("farmer totals after delete = paid %v, balance %v, want zeros", got.TotalPaid, got.Balance)
	}
}
