package services

import (
	"errors"
	"strings"

	"github.com/ecosenseai/ecosense/models"
	"gorm.io/gorm"

	errs "github.com/ecosenseai/ecosense/errors"
)

// Operations gated by role. Authorization happens once at the workflow
// boundary instead of ad hoc role checks inside each handler.
const (
	OpCreateReport       = "report:create"
	OpUpdateReportStatus = "report:update_status"
	OpManageRewards      = "reward:manage"
	OpManageUsers        = "user:manage"
)

var operationRoles = map[string]map[string]bool{
	OpCreateReport:       {models.RoleCitizen: true},
	OpUpdateReportStatus: {models.RoleAdmin: true, models.RoleFieldAgent: true},
	OpManageRewards:      {models.RoleAdmin: true},
	OpManageUsers:        {models.RoleAdmin: true},
}

// Authorize returns Forbidden unless role may perform operation.
func Authorize(operation, role string) error {
	allowed, ok := operationRoles[operation]
	if !ok || !allowed[role] {
		return errs.ErrForbidden
	}
	return nil
}

// translateTxError maps errors escaping a database transaction onto the
// API error taxonomy. Lock contention and serialization failures are
// surfaced as retryable conflicts.
func translateTxError(err error) error {
	var domainErr *errs.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "lock timeout") ||
		strings.Contains(msg, "SQLSTATE 40001") ||
		strings.Contains(msg, "SQLSTATE 55P03") {
		return errs.ErrConflict
	}
	return err
}
