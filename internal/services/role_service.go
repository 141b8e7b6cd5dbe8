// internal/services/role_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gramseva/resicert-backend/internal/models"
	"github.com/gramseva/resicert-backend/internal/store"
)

type RoleService struct {
	roles store.RoleStore
}

func NewRoleService(roles store.RoleStore) *RoleService {
	return &RoleService{roles: roles}
}

// GetCallerRole returns the caller's assigned role, or the baseline role if
// none was ever assigned.
func (s *RoleService) GetCallerRole(principal string) (models.UserRole, error) {
	role, err := s.roles.GetRole(principal)
	if err != nil {
		return "", fmt.Errorf("failed to resolve role: %w", err)
	}
	return role, nil
}

func (s *RoleService) IsAdmin(principal string) (bool, error) {
	role, err := s.GetCallerRole(principal)
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}

// AssignRole overwrites the target's role. Only an acting admin may assign;
// the role in effect at the moment of the call decides, not any cached claim.
// Assigning the same role twice is a no-op in effect.
func (s *RoleService) AssignRole(acting, target string, role models.UserRole) error {
	if _, ok := models.ParseUserRole(string(role)); !ok {
		return ErrInvalidRole
	}

	isAdmin, err := s.IsAdmin(acting)
	if err != nil {
		return err
	}
	if !isAdmin {
		logrus.WithFields(logrus.Fields{
			"acting": acting,
			"target": target,
		}).Warn("Role assignment denied for non-admin caller")
		return ErrUnauthorized
	}

	if err := s.roles.SetRole(target, role); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"acting": acting,
		"target": target,
		"role":   role,
	}).Info("Role assigned")
	return nil
}
