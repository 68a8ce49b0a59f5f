package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"hospital-care-server/internal/config"
	"hospital-care-server/internal/models"
	"hospital-care-server/internal/utils"
)

func TestAllow(t *testing.T) {
	doctor := Identity{UserID: "u1", Role: models.RoleDoctor, DomainID: "d1"}
	patient := Identity{UserID: "u2", Role: models.RolePatient, DomainID: "p1"}
	admin := Identity{UserID: "u3", Role: models.RoleAdmin}

	cases := []struct {
		name     string
		identity Identity
		role     models.Role
		ownerID  string
		want     bool
	}{
		{"role mismatch is denied", patient, models.RoleDoctor, "", false},
		{"role match with no resource is allowed", doctor, models.RoleDoctor, "", true},
		{"owner may act on own resource", doctor, models.RoleDoctor, "d1", true},
		{"non-owner is denied", doctor, models.RoleDoctor, "d2", false},
		{"admin may act on any resource", admin, models.RoleAdmin, "d2", true},
		{"admin role claim alone is not enough", doctor, models.RoleAdmin, "d1", false},
		{"unresolved domain id never owns anything", Identity{Role: models.RoleDoctor}, models.RoleDoctor, "d1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allow(tc.identity, tc.role, tc.ownerID); got != tc.want {
				t.Errorf("Allow(%+v, %s, %q) = %v, want %v", tc.identity, tc.role, tc.ownerID, got, tc.want)
			}
		})
	}
}

func TestRequireRoleEnforcesPolicy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationMinutes: 60}

	router := gin.New()
	router.GET("/guarded", AuthMiddleware(cfg), RequireRole(models.RoleDoctor), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		utils.Success(c, "ok", gin.H{"username": identity.Username})
	})

	tokenFor := func(role models.Role) string {
		user := &models.User{Username: "caller", Role: role}
		user.ID = "caller-id"
		token, err := utils.GenerateToken(user, cfg)
		if err != nil {
			t.Fatalf("generating token: %v", err)
		}
		return token
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"matching role passes", "Bearer " + tokenFor(models.RoleDoctor), http.StatusOK},
		{"other role is forbidden", "Bearer " + tokenFor(models.RolePatient), http.StatusForbidden},
		{"missing header is unauthorized", "", http.StatusUnauthorized},
		{"malformed header is unauthorized", "Token abc", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
