package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/pkg/logger"
)

type fakeRecorder struct {
	entries []*models.AuditLog
}

func (f *fakeRecorder) Record(ctx context.Context, entry *models.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func newAuditRouter(rec *fakeRecorder) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserID, "user-1")
		c.Set(ContextEmail, "dev@example.com")
		c.Next()
	})
	router.Use(AuditLog(rec))
	scoped := func(c *gin.Context) {
		c.Set(logger.ContextProjectID, c.Param("projectId"))
		c.Status(http.StatusOK)
	}
	router.GET("/api/projects/:projectId/roles", scoped)
	router.POST("/api/projects/:projectId/roles", scoped)
	router.PUT("/api/projects/:projectId/roles/:roleId", scoped)
	router.POST("/api/projects", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	return router
}

func TestAuditLog_RecordsProjectWrites(t *testing.T) {
	rec := &fakeRecorder{}
	router := newAuditRouter(rec)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/projects/p1/roles", bytes.NewBufferString(`{"name":"QA","token":"abc"}`))
	router.ServeHTTP(w, req)

	if len(rec.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(rec.entries))
	}
	e := rec.entries[0]
	if e.ProjectID != "p1" || e.UserID != "user-1" {
		t.Errorf("entry ids = %q/%q", e.ProjectID, e.UserID)
	}
	if e.Module != "roles" || e.Action != "create" {
		t.Errorf("module/action = %q/%q", e.Module, e.Action)
	}
	if strings.Contains(e.Extra, "abc") {
		t.Errorf("token should be masked: %s", e.Extra)
	}
	if !strings.Contains(e.Message, "dev@example.com") {
		t.Errorf("message = %q", e.Message)
	}
}

func TestAuditLog_SkipsReadsAndUnscopedRequests(t *testing.T) {
	rec := &fakeRecorder{}
	router := newAuditRouter(rec)

	for _, r := range []struct{ method, path string }{
		{"GET", "/api/projects/p1/roles"},
		{"POST", "/api/projects"},
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(r.method, r.path, nil)
		router.ServeHTTP(w, req)
	}

	if len(rec.entries) != 0 {
		t.Errorf("expected no audit entries, got %d", len(rec.entries))
	}
}

func TestParseRouteInfo(t *testing.T) {
	tests := []struct {
		path, method   string
		module, action string
	}{
		{"/api/projects/:projectId/roles/:roleId", "PUT", "roles", "update"},
		{"/api/projects/:projectId/members", "POST", "members", "create"},
		{"/api/tasks/:taskId", "DELETE", "tasks", "delete"},
		{"/api/projects/:projectId", "PUT", "projects", "update"},
		{"", "POST", "unknown", "create"},
	}

	for _, tt := range tests {
		module, action := parseRouteInfo(tt.path, tt.method)
		if module != tt.module || action != tt.action {
			t.Errorf("parseRouteInfo(%q, %q) = %q, %q; expected %q, %q", tt.path, tt.method, module, action, tt.module, tt.action)
		}
	}
}

func TestMaskSensitiveFields(t *testing.T) {
	got := maskSensitiveFields(`{"email":"a@b.c","password": "hunter2"}`)
	if strings.Contains(got, "hunter2") {
		t.Errorf("password not masked: %s", got)
	}
	if !strings.Contains(got, "a@b.c") {
		t.Errorf("email should be kept: %s", got)
	}
}

func TestAuditLog_RejectsOversizedBody(t *testing.T) {
	rec := &fakeRecorder{}
	router := newAuditRouter(rec)

	body := `{"name":"` + strings.Repeat("x", MaxRequestBody) + `"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/projects/p1/roles", strings.NewReader(body))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, expected 413", w.Code)
	}
	if len(rec.entries) != 0 {
		t.Errorf("expected no audit entry, got %d", len(rec.entries))
	}
}
