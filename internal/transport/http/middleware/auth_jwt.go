package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo-list-api/internal/core/auth"
	resp "todo-list-api/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyEmail  = "email"
	KeyRole   = "role"
)

func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Err(c, http.StatusUnauthorized, "missing token")
			c.Abort()
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Err(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
