package middleware

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/services/access"
	"github.com/huangang/boardmaster/pkg/logger"
	"github.com/huangang/boardmaster/pkg/response"
)

const ContextPermissions = "permissions"

var (
	errInvalidBody   = response.NewBadRequest("invalid request body")
	errAmbiguousBody = response.NewBadRequest("request body names its target more than once")
)

// TargetResolver extracts the addressed resource from a request.
type TargetResolver func(c *gin.Context) (access.Target, error)

// ProjectParam addresses the project named by a path parameter.
func ProjectParam(name string) TargetResolver {
	return func(c *gin.Context) (access.Target, error) {
		return access.ProjectTarget(c.Param(name)), nil
	}
}

// BoardParam addresses the project owning the board named by a path parameter.
func BoardParam(name string) TargetResolver {
	return func(c *gin.Context) (access.Target, error) {
		return access.BoardTarget(c.Param(name)), nil
	}
}

// TaskParam addresses the project owning the task named by a path parameter.
func TaskParam(name string) TargetResolver {
	return func(c *gin.Context) (access.Target, error) {
		return access.TaskTarget(c.Param(name)), nil
	}
}

// BodyField reads a string field from the JSON body and turns it into a
// target with as, e.g. BodyField("board_id", access.BoardTarget). The body
// is restored so the handler can bind it again. Keys are matched without
// regard to case, the way binding does, and a body that names the field
// more than once is rejected so the gate and the handler cannot disagree.
func BodyField(field string, as func(string) access.Target) TargetResolver {
	return func(c *gin.Context) (access.Target, error) {
		data, err := readBody(c)
		if err != nil {
			return access.Target{}, err
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return access.Target{}, nil
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return access.Target{}, errInvalidBody
		}
		if countKeys(data, field) > 1 {
			return access.Target{}, errAmbiguousBody
		}
		var raw json.RawMessage
		for key, v := range fields {
			if strings.EqualFold(key, field) {
				raw = v
			}
		}

		var value string
		if raw != nil {
			if err := json.Unmarshal(raw, &value); err != nil {
				return access.Target{}, errInvalidBody
			}
		}
		if value == "" {
			return access.Target{}, nil
		}
		return as(value), nil
	}
}

// countKeys counts top-level object keys equal to field under case folding,
// including exact duplicates that a map would collapse.
func countKeys(data []byte, field string) int {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return 0
	}
	n := 0
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return n
		}
		if key, ok := tok.(string); ok && strings.EqualFold(key, field) {
			n++
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return n
		}
	}
	return n
}

// RequireCapability runs the capability gate for the resolved target and
// aborts the request on any failure. On success the caller's permissions
// are stored under ContextPermissions.
func RequireCapability(gate *access.Gate, capability access.Capability, resolve TargetResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		target, err := resolve(c)
		if err != nil {
			response.Abort(c, err)
			return
		}

		perms, err := gate.Authorize(c.Request.Context(), GetUserID(c), target, capability)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextPermissions, perms)
		c.Set(logger.ContextProjectID, perms.ProjectID)
		c.Next()
	}
}

// GetPermissions returns the permissions attached by RequireCapability, or
// nil when the route is not gated.
func GetPermissions(c *gin.Context) *access.EffectivePermissions {
	if v, ok := c.Get(ContextPermissions); ok {
		if perms, ok := v.(*access.EffectivePermissions); ok {
			return perms
		}
	}
	return nil
}
