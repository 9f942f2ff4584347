package access

import (
	"context"
	"errors"

	"github.com/huangang/boardmaster/pkg/logger"
	"github.com/huangang/boardmaster/pkg/response"
	"gorm.io/gorm"
)

// Gate combines the Loader and Evaluate into the check run before every
// project-scoped operation. It has no side effects beyond metrics.
type Gate struct {
	loader *Loader
}

func NewGate(loader *Loader) *Gate {
	return &Gate{loader: loader}
}

func NewGateFromDB(db *gorm.DB) *Gate {
	return NewGate(NewLoader(db))
}

// Authorize resolves the target's project, loads the caller's permissions
// and checks c. On success the loaded permissions are returned for the
// downstream operation to consult.
func (g *Gate) Authorize(ctx context.Context, callerID string, target Target, c Capability) (*EffectivePermissions, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	projectID, err := g.loader.ResolveProject(ctx, target)
	if err != nil {
		record(c, outcomeFor(err))
		return nil, err
	}

	perms, err := g.loader.Load(ctx, callerID, projectID)
	if err != nil {
		record(c, outcomeFor(err))
		return nil, err
	}

	if err := Require(perms, c); err != nil {
		record(c, outcomeDenied)
		logger.Warn().
			Str("user_id", callerID).
			Str("project_id", projectID).
			Str("capability", c.String()).
			Str("role", string(perms.Role)).
			Str("reason", Evaluate(perms, c).Reason).
			Msg("capability denied")
		return nil, err
	}

	record(c, outcomeAllowed)
	return perms, nil
}

// Require checks one more capability against already loaded permissions.
// Handlers use it for conditional checks, e.g. when a task update also
// changes the assignee.
func Require(perms *EffectivePermissions, c Capability) error {
	if Allows(perms, c) {
		return nil
	}
	if c == IsOwnerOnly {
		return ErrOwnerOnly
	}
	return ErrInsufficientPermission
}

func record(c Capability, outcome string) {
	decisionsTotal.WithLabelValues(c.String(), outcome).Inc()
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrNoStanding):
		return outcomeNoStanding
	case errors.Is(err, ErrProjectUnresolved):
		return outcomeBadRequest
	}
	var appErr *response.AppError
	if errors.As(err, &appErr) && appErr.Code == 404 {
		return outcomeNotFound
	}
	return outcomeError
}
