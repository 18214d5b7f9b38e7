package middleware

import (
	"errors"
	"strings"

	"finance-backend/internal/config"
	"finance-backend/internal/models"
	"finance-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthMiddleware(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.Unauthorized(c, "missing access token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token, cfg.JWT.Secret)
		if err != nil {
			utils.Unauthorized(c, "invalid access token")
			c.Abort()
			return
		}

		// The user must still exist and be active
		var user models.User
		if err := db.Where("id = ? AND is_active = ?", claims.UserID, true).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Unauthorized(c, "user not found or disabled")
			} else {
				utils.InternalError(c)
			}
			c.Abort()
			return
		}

		c.Set("user", &user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			utils.Unauthorized(c, "login required")
			c.Abort()
			return
		}

		u := user.(*models.User)
		if u.Role != "admin" {
			utils.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	return c.Query("token")
}
