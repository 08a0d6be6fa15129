package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-content-service/internal/models"
)

func roleContext(t *testing.T, role interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	if role != nil {
		c.Set("user_role", role)
	}
	return c, w
}

func TestRequireRoleMiddleware(t *testing.T) {
	cam := &CasdoorAuthMiddleware{}

	tests := []struct {
		name     string
		role     interface{}
		required []models.UserRole
		allowed  bool
	}{
		{"uploader on uploader route", models.RoleUploader, []models.UserRole{models.RoleUploader, models.RoleAdmin}, true},
		{"admin always passes", models.RoleAdmin, []models.UserRole{models.RoleUploader}, true},
		{"uploader on admin route", models.RoleUploader, []models.UserRole{models.RoleAdmin}, false},
		{"missing role", nil, []models.UserRole{models.RoleAdmin}, false},
		{"role stored as plain string", "admin", []models.UserRole{models.RoleAdmin}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := roleContext(t, tt.role)
			cam.RequireRoleMiddleware(tt.required...)(c)

			if tt.allowed {
				if c.IsAborted() {
					t.Errorf("request aborted: %d %s", w.Code, w.Body.String())
				}
				return
			}
			if !c.IsAborted() {
				t.Errorf("request not aborted")
			}
			if w.Code != http.StatusForbidden {
				t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
			}
		})
	}
}
