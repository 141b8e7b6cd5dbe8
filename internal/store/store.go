// internal/store/store.go
package store

import (
	"errors"

	"github.com/gramseva/resicert-backend/internal/models"
)

// ErrNotFound is returned when a referenced application number does not exist.
var ErrNotFound = errors.New("application not found")

// ApplicationStore owns every Application record and the numbering sequence.
// Insert allocates the next number and commits the record as one atomic step;
// records are never mutated or deleted afterwards.
type ApplicationStore interface {
	Insert(principal string, form models.ApplicationForm) (*models.Application, error)
	GetByNumber(number int64) (*models.Application, error)
	ListAll() ([]models.Application, error)
	ListByPrincipal(principal string) ([]models.Application, error)
}

// RoleStore owns the identity-to-role mapping. GetRole never fails: an
// identity without an assignment holds models.DefaultRole. SetRole overwrites
// any prior assignment and takes effect for the very next GetRole.
type RoleStore interface {
	GetRole(principal string) (models.UserRole, error)
	SetRole(principal string, role models.UserRole) error
}
