package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hospital-care-server/internal/config"
	"hospital-care-server/internal/models"
	"hospital-care-server/internal/service"
	"hospital-care-server/internal/utils"
)

const identityKey = "identity"

// Identity is the authenticated caller, resolved once per request and
// passed to handlers through the request context instead of ambient
// lookups. DomainID is the doctor or patient record tied to the token's
// subject; it is empty for administrators.
type Identity struct {
	UserID   string
	Username string
	Role     models.Role
	DomainID string
}

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{
			UserID:   claims.Subject,
			Username: claims.Username,
			Role:     claims.Role,
		})

		c.Next()
	}
}

// RequireRole rejects any caller whose role claim does not match the role
// this route group serves. It must run after AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.InternalServerError(c, "Identity not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}
		if !Allow(identity, role, "") {
			utils.Forbidden(c, "You do not have permission to access this resource.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ResolveDoctor resolves the doctor record behind the token subject and
// stores its id on the identity, so every doctor handler acts on the
// caller's own record. A detached or missing record rejects the request.
func ResolveDoctor(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.InternalServerError(c, "Identity not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}
		doctor, err := accounts.DoctorForUser(identity.UserID)
		if err != nil {
			utils.Forbidden(c, "No active doctor record for this account.")
			c.Abort()
			return
		}
		identity.DomainID = doctor.ID
		c.Set(identityKey, identity)
		c.Next()
	}
}

// ResolvePatient resolves the patient record behind the token subject and
// stores its id on the identity.
func ResolvePatient(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.InternalServerError(c, "Identity not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}
		patient, err := accounts.PatientForUser(identity.UserID)
		if err != nil {
			utils.Forbidden(c, "No active patient record for this account.")
			c.Abort()
			return
		}
		identity.DomainID = patient.ID
		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the authenticated identity from the request context.
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// Allow is the authorization policy for every protected route: the caller's
// role must match, and when a resource owner is named the caller must be an
// administrator or that owner. An empty owner checks the role alone, which is
// how RequireRole gates each route group. Handlers that mutate a specific
// resource pass its owner; services additionally scope their queries by the
// caller's domain id, so absence doubles as denial.
func Allow(identity Identity, role models.Role, resourceOwnerID string) bool {
	if identity.Role != role {
		return false
	}
	if identity.Role == models.RoleAdmin || resourceOwnerID == "" {
		return true
	}
	return identity.DomainID != "" && identity.DomainID == resourceOwnerID
}
