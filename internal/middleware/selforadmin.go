package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foodfast-user-service/internal/domain/user"
	"foodfast-user-service/pkg/utils"
)

// SelfOrAdminMiddleware gates mutations on another user's record: the
// caller must own the target id from the route parameter or hold the
// admin role. Runs after AuthMiddleware.
func SelfOrAdminMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := uuid.Parse(c.Param(param))
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
			c.Abort()
			return
		}

		callerID, idOK := c.Get(ContextUserIDKey)
		callerRole, roleOK := c.Get(ContextRoleKey)
		if !idOK || !roleOK {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		callerUUID, uuidOK := callerID.(uuid.UUID)
		role, strOK := callerRole.(string)
		if !uuidOK || !strOK || !user.CanActOn(role, callerUUID, targetID) {
			utils.ErrorResponse(c, http.StatusForbidden, "You can only act on your own account")
			c.Abort()
			return
		}

		c.Next()
	}
}
