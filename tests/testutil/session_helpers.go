package testutil

import (
	"net/http"

	"github.com/farmly/farm-market-api/middleware"
	"github.com/gin-gonic/gin"
)

// Session is a test identity expressed as the session headers the identity
// collaborator sends with each request.
type Session struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// Customer returns a session for an identified shopper.
func Customer(userID, email string) Session {
	return Session{UserID: userID, Email: email, Role: middleware.RoleCustomer}
}

// Owner returns a session for a farm owner.
func Owner(userID, email string) Session {
	return Session{UserID: userID, Email: email, Role: middleware.RoleOwner}
}

// Admin returns a session for a site administrator.
func Admin(userID, email string) Session {
	return Session{UserID: userID, Email: email, Role: middleware.RoleAdmin}
}

// Moderator returns a session for a blog moderator.
func Moderator(userID, email string) Session {
	return Session{UserID: userID, Email: email, Role: middleware.RoleModerator}
}

// Apply sets the session headers on a request. A zero Session leaves the
// request as a guest.
func (s Session) Apply(req *http.Request) {
	if s.UserID == "" {
		return
	}
	req.Header.Set("X-Session-User", s.UserID)
	req.Header.Set("X-Session-Email", s.Email)
	req.Header.Set("X-Session-First-Name", s.FirstName)
	req.Header.Set("X-Session-Last-Name", s.LastName)
	req.Header.Set("X-Session-Role", s.Role)
}

// SetSessionContext binds a session identity directly into a Gin context,
// bypassing the middleware. Useful for handler-level tests.
func SetSessionContext(c *gin.Context, s Session) {
	c.Set("identity", middleware.Identity{
		UserID:    s.UserID,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Role:      s.Role,
	})
	c.Set("user_id", s.UserID)
}
