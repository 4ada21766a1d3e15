package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/middleware"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user account. The first registered user becomes admin
// regardless of the requested role so a fresh install is never locked out.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check users")
		return
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}
	if count == 0 {
		role = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email already registered")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	util.Success(c, util.Response{"user": user})
}

// Login verifies credentials and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, "email = ?", req.Email).Error; err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid email or password")
		return
	}
	if !user.IsActive {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "account disabled")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid email or password")
		return
	}

	cfg := config.Get()
	ttl := time.Duration(cfg.JWT.ExpireHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := util.GenerateToken(cfg.JWT.Secret, user.ID, user.Email, user.Role, ttl)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to sign token")
		return
	}

	util.Success(c, util.Response{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}
	util.Success(c, util.Response{"user": user})
}
