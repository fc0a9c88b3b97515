package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
)

// RequireRole lets the request through only when the authenticated role is
// one of roles. It must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if !allowed[role] {
			httperr.Forbidden(c, "forbidden_role", "Your account cannot perform this action.")
			c.Abort()
			return
		}
		c.Next()
	}
}
