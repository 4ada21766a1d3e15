package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/util"
)

// JWTAuth validates the bearer token and loads the current user into
// the gin context. A token query parameter is accepted as a fallback so
// that browser-navigated downloads (bills, exports) can authenticate.
func JWTAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			tokenStr = q
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "missing token")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(config.Get().JWT.Secret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not found")
			c.Abort()
			return
		}
		if !user.IsActive {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user disabled")
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Next()
	}
}

// CurrentUser returns the user set by JWTAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// RequireAdmin rejects requests from non-admin users.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || u.Role != "admin" {
			util.Error(c, http.StatusForbidden, util.CodeAuth, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
