package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/database"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/sms"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestSMS() *sms.Client {
	return sms.NewClient(config.SMSConfig{}, zap.NewNop())
}

func seedFarmer(t *testing.T, db *gorm.DB) models.Farmer {
	t.Helper()

	farmer := models.Farmer{
		ID:       uuid.NewString(),
		Name:     "Ramesh Kumar",
		Phone:    "9812345678",
		Village:  "Nirbani",
		IsActive: true,
	}
	if err := db.Create(&farmer).Error; err != nil {
		t.Fatalf("seed farmer: %v", err)
	}
	return farmer
}

func seedPlant(t *testing.T, db *gorm.DB) models.DairyPlant {
	t.Helper()

	plant := models.DairyPlant{
		ID:   uuid.NewString(),
		Name: "Saras Plant",
		Code: "SRS",
	}
	if err := db.Create(&plant).Error; err != nil {
		t.Fatalf("seed plant: %v", err)
	}
	return plant
}

// doJSON performs a request against the engine and decodes the envelope.
func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) (int, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, envelope
}

func decodeData(t *testing.T, envelope map[string]json.RawMessage, out interface{}) {
	t.Helper()

	raw, ok := envelope["data"]
	if !ok {
		t.Fatalf("response has no data field: %v", envelope)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}
