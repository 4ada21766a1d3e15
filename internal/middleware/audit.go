package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/models"
)

// Audit records every mutating request into the audit log table.
// Read-only requests are skipped to keep the table small.
func Audit(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}

		userID := ""
		if u := CurrentUser(c); u != nil {
			userID = u.ID
		}

		entry := models.AuditLog{
			UserID:    userID,
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Action:    c.Request.Method + " " + c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Warn("audit log write failed", zap.Error(err))
		}
	}
}
