package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodfast-user-service/internal/domain/user"
	"foodfast-user-service/pkg/utils"
)

// RoleMiddleware denies the request unless the verified token role is in
// the allowed set.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleKey)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole, ok := role.(string)
		if !ok || !user.RoleAllowed(userRole, allowedRoles...) {
			utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(user.RoleAdmin)
}

func RestaurantOnly() gin.HandlerFunc {
	return RoleMiddleware(user.RoleRestaurant)
}

func CustomerOnly() gin.HandlerFunc {
	return RoleMiddleware(user.RoleCustomer)
}
