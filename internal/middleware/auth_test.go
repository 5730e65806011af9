package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware()}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString("userID"),
			"role":   c.GetString("role"),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	utils.InitJWT("mw-access-secret", "mw-refresh-secret", 15*time.Minute, time.Hour)

	token, err := utils.GenerateAccessToken("user-9", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"malformed token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	r := protectedRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("status %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	utils.InitJWT("mw-access-secret", "mw-refresh-secret", 15*time.Minute, time.Hour)

	patientToken, err := utils.GenerateAccessToken("user-1", "patient")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	adminToken, err := utils.GenerateAccessToken("user-2", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	r := protectedRouter("doctor", "admin")

	get := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := get(patientToken); code != http.StatusForbidden {
		t.Errorf("patient got %d, want 403", code)
	}
	if code := get(adminToken); code != http.StatusOK {
		t.Errorf("admin got %d, want 200", code)
	}
}
