// internal/services/application_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gramseva/resicert-backend/internal/models"
	"github.com/gramseva/resicert-backend/internal/store"
)

// ApplicationService is the access-controlled boundary in front of the
// application registry. Every authorization decision happens here, using the
// caller's role as resolved at the moment of the call.
type ApplicationService struct {
	applications store.ApplicationStore
	roleService  *RoleService
}

func NewApplicationService(applications store.ApplicationStore, roleService *RoleService) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		roleService:  roleService,
	}
}

// CreateApplication stores the form under the caller's identity and returns
// the newly allocated record. The form is accepted as opaque data; format
// validation is a frontend concern.
func (s *ApplicationService) CreateApplication(principal string, form models.ApplicationForm) (*models.Application, error) {
	app, err := s.applications.Insert(principal, form)
	if err != nil {
		return nil, fmt.Errorf("failed to store application: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"application_number": app.ApplicationNumber,
		"principal":          principal,
	}).Info("Application created")
	return app, nil
}

func (s *ApplicationService) GetOwnApplications(principal string) ([]models.Application, error) {
	return s.applications.ListByPrincipal(principal)
}

// GetApplicationByNumber returns the record if the caller owns it or is an
// admin. Existence is checked first so a missing number reports ErrNotFound
// rather than ErrUnauthorized.
func (s *ApplicationService) GetApplicationByNumber(principal string, number int64) (*models.Application, error) {
	app, err := s.applications.GetByNumber(number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if app.Principal != principal {
		isAdmin, err := s.roleService.IsAdmin(principal)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, ErrUnauthorized
		}
	}

	return app, nil
}

// GetAllApplications is admin only.
func (s *ApplicationService) GetAllApplications(principal string) ([]models.Application, error) {
	isAdmin, err := s.roleService.IsAdmin(principal)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		logrus.WithField("principal", principal).
			Warn("Full application listing denied for non-admin caller")
		return nil, ErrUnauthorized
	}

	return s.applications.ListAll()
}
