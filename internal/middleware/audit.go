package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/pkg/logger"
	"github.com/huangang/boardmaster/pkg/response"
)

const maxAuditBody = 2000

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry *models.AuditLog) error
}

// AuditLog records project-scoped write operations (POST/PUT/PATCH/DELETE).
// Requests that never resolved a project, such as a failed authentication,
// are not recorded.
func AuditLog(recorder AuditRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != "POST" && method != "PUT" && method != "PATCH" && method != "DELETE" {
			c.Next()
			return
		}

		bodyBytes, err := readBody(c)
		if err != nil {
			response.Abort(c, err)
			return
		}
		bodySnippet := string(bodyBytes)
		if len(bodySnippet) > maxAuditBody {
			bodySnippet = bodySnippet[:maxAuditBody] + "...[truncated]"
		}
		bodySnippet = maskSensitiveFields(bodySnippet)

		c.Next()

		projectID := c.GetString(logger.ContextProjectID)
		if projectID == "" {
			return
		}

		status := c.Writer.Status()
		module, action := parseRouteInfo(c.FullPath(), method)
		extra, _ := json.Marshal(map[string]interface{}{"body": bodySnippet})

		entry := &models.AuditLog{
			ProjectID: projectID,
			UserID:    GetUserID(c),
			Module:    module,
			Action:    action,
			Method:    method,
			Path:      c.Request.URL.Path,
			Status:    status,
			Message:   formatAuditMessage(GetEmail(c), method, c.Request.URL.Path, status),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Extra:     string(extra),
		}
		if err := recorder.Record(c.Request.Context(), entry); err != nil {
			l := logger.FromGin(c)
			l.Error().Err(err).Msg("failed to record audit log")
		}
	}
}

// parseRouteInfo extracts module and action from a Gin route pattern.
// e.g. "/api/projects/:projectId/roles/:roleId" + "PUT" → module="roles", action="update"
func parseRouteInfo(fullPath, method string) (module, action string) {
	path := strings.Trim(strings.TrimPrefix(fullPath, "/api/"), "/")

	module = "unknown"
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := segments[i]; s != "" && !strings.HasPrefix(s, ":") && !strings.HasPrefix(s, "*") {
			module = s
			break
		}
	}

	switch method {
	case "POST":
		action = "create"
	case "PUT", "PATCH":
		action = "update"
	case "DELETE":
		action = "delete"
	default:
		action = strings.ToLower(method)
	}

	return module, action
}

// formatAuditMessage creates a human-readable audit message.
func formatAuditMessage(who, method, path string, status int) string {
	outcome := "OK"
	if status < 200 || status >= 300 {
		outcome = "Failed"
	}
	if who == "" {
		who = "anonymous"
	}
	return fmt.Sprintf("[Audit] %s %s %s → %s", who, method, path, outcome)
}

// maskSensitiveFields replaces sensitive values in JSON body
func maskSensitiveFields(body string) string {
	sensitiveKeys := []string{"password", "api_key", "apikey", "secret", "token", "access_token"}
	lower := strings.ToLower(body)
	for _, key := range sensitiveKeys {
		if strings.Contains(lower, key) {
			body = maskJSONValue(body, key)
		}
	}
	return body
}

// maskJSONValue does a best-effort mask of JSON string values for a given key
func maskJSONValue(body, key string) string {
	lower := strings.ToLower(body)
	idx := strings.Index(lower, "\""+key+"\"")
	if idx == -1 {
		return body
	}

	colonIdx := strings.Index(body[idx+len(key)+2:], ":")
	if colonIdx == -1 {
		return body
	}
	valueStart := idx + len(key) + 2 + colonIdx + 1

	for valueStart < len(body) && (body[valueStart] == ' ' || body[valueStart] == '\t') {
		valueStart++
	}

	if valueStart >= len(body) {
		return body
	}

	if body[valueStart] == '"' {
		endQuote := strings.Index(body[valueStart+1:], "\"")
		if endQuote == -1 {
			return body
		}
		return body[:valueStart+1] + "***" + body[valueStart+1+endQuote:]
	}

	return body
}
