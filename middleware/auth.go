package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Roles recognized by the marketplace consoles
const (
	RoleCustomer  = "customer"
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// Identity carries the session identity supplied by the external identity
// collaborator. A request without session headers is a guest, not an error.
type Identity struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// IdentityFromSession reads the collaborator-supplied session headers and
// stores the identity in the request context. Authentication itself happens
// upstream; this middleware only binds the session fields the collaborator
// provides. Requests without a session pass through as guests.
func IdentityFromSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-Session-User")
		if userID == "" {
			// Guest request
			c.Next()
			return
		}

		identity := Identity{
			UserID:    userID,
			Email:     c.GetHeader("X-Session-Email"),
			FirstName: c.GetHeader("X-Session-First-Name"),
			LastName:  c.GetHeader("X-Session-Last-Name"),
			Role:      c.GetHeader("X-Session-Role"),
		}
		if identity.Role == "" {
			identity.Role = RoleCustomer
		}

		c.Set("identity", identity)
		c.Set("user_id", userID)

		c.Next()
	}
}

// GetIdentity extracts the session identity from the Gin context. The second
// return value is false for guest requests.
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get("identity")
	if !exists {
		return Identity{}, false
	}

	identity, ok := value.(Identity)
	if !ok {
		return Identity{}, false
	}

	return identity, true
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// RequireRole is a middleware that restricts a route to the given roles.
// Guests get 401; identified users with the wrong role get 403.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "A session is required to access this resource",
				},
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions to access this resource",
			},
		})
		c.Abort()
	}
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
