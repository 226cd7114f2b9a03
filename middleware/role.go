package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbook/models"
)

// ActorRoleKey is the gin context key holding the caller's role.
const ActorRoleKey = "actorRole"

// ActorRoleMiddleware reads the role the authenticating front layer
// resolved for this request. Authentication itself happens outside
// this engine; the engine only needs a trustworthy role to gate state
// transitions.
func ActorRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.ActorRole(c.GetHeader("X-Actor-Role"))

		switch role {
		case models.RoleCustomer, models.RoleStaff, models.RoleAdmin:
			c.Set(ActorRoleKey, role)
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid or missing 'X-Actor-Role' header. Expected 'customer', 'staff' or 'admin'.",
			})
		}
	}
}

// GetActorRole retrieves the role placed on the context by
// ActorRoleMiddleware.
func GetActorRole(c *gin.Context) models.ActorRole {
	if v, ok := c.Get(ActorRoleKey); ok {
		if role, ok := v.(models.ActorRole); ok {
			return role
		}
	}
	return ""
}
