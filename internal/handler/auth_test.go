package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/models"
)

func newAuthRouter(db *gorm.DB) *gin.Engine {
	h := NewAuthHandler(db)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

// loadTestConfig loads a minimal configuration once for the test binary.
func loadTestConfig(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  mode: test\njwt:\n  secret: test-secret\n  expire_hours: 1\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("load test config: %v", err)
	}
}

func TestRegister_FirstUserBecomesAdmin(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	code, envelope := doJSON(t, r, "POST", "/auth/register", map[string]interface{}{
		"name":     "Owner",
		"email":    "owner@dairy.test",
		"password": "secret123",
		"role":     "staff",
	})
	if code != http.StatusOK {
		t.Fatalf("register status = %d, body = %v", code, envelope)
	}

	var data struct {
		User models.User `json:"user"`
	}
	decodeData(t, envelope, &data)
	if data.User.Role != "admin" {
		t.Errorf("first user role = %q, want admin", data.User.Role)
	}

	code, envelope = doJSON(t, r, "POST", "/auth/register", map[string]interface{}{
		"name":     "Counter Staff",
		"email":    "staff@dairy.test",
		"password": "secret123",
	})
	if code != http.StatusOK {
		t.Fatalf("second register status = %d, body = %v", code, envelope)
	}
	decodeData(t, envelope, &data)
	if data.User.Role != "staff" {
		t.Errorf("second user role = %q, want staff", data.User.Role)
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	body := map[string]interface{}{
		"name": "Owner", "email": "owner@dairy.test", "password": "secret123",
	}
	if code, _ := doJSON(t, r, "POST", "/auth/register", body); code != http.StatusOK {
		t.Fatal("first register failed")
	}
	if code, _ := doJSON(t, r, "POST", "/auth/register", body); code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", code)
	}
}

func TestLogin(t *testing.T) {
	loadTestConfig(t)
	db := newTestDB(t)
	r := newAuthRouter(db)

	doJSON(t, r, "POST", "/auth/register", map[string]interface{}{
		"name": "Owner", "email": "owner@dairy.test", "password": "secret123",
	})

	code, envelope := doJSON(t, r, "POST", "/auth/login", map[string]interface{}{
		"email": "owner@dairy.test", "password": "secret123",
	})
	if code != http.StatusOK {
		t.Fatalf("login status = %d, body = %v", code, envelope)
	}

	var data struct {
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
		User        models.User `json:"user"`
	}
	decodeData(t, envelope, &data)
	if data.AccessToken == "" {
		t.Error("login returned empty token")
	}
	if data.TokenType != "bearer" {
		t.Errorf("token type = %q, want bearer", data.TokenType)
	}

	code, _ = doJSON(t, r, "POST", "/auth/login", map[string]interface{}{
		"email": "owner@dairy.test", "password": "wrong",
	})
	if code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", code)
	}
}
