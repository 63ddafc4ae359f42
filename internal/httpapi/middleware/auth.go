package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nexvstar/site/internal/auth"
	"github.com/nexvstar/site/internal/common"
	"github.com/nexvstar/site/internal/models"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// AuthRequired parses the bearer JWT and stores the caller id and role.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearer(c)
		if tok == "" {
			common.Abort(c, http.StatusUnauthorized, 40101, "missing bearer token")
			return
		}
		claims, err := auth.ParseJWT(tok, secret)
		if err != nil {
			common.Abort(c, http.StatusUnauthorized, 40102, "invalid or expired token")
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, models.Role(claims.Role))
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get(RoleKey); role != models.RoleAdmin {
			common.Abort(c, http.StatusForbidden, 40301, "admin only")
			return
		}
		c.Next()
	}
}
