// internal/store/memory.go
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/gramseva/resicert-backend/internal/models"
)

// In-memory stores back tests and single-process development runs. They hold
// the same invariants as the gorm stores: the counter is advanced under the
// same lock that inserts the record, and returned values are copies so callers
// cannot mutate stored state.

type MemoryApplicationStore struct {
	mu           sync.RWMutex
	applications map[int64]models.Application
	next         int64
}

func NewMemoryApplicationStore() *MemoryApplicationStore {
	return &MemoryApplicationStore{
		applications: make(map[int64]models.Application),
		next:         models.FirstApplicationNumber,
	}
}

func (s *MemoryApplicationStore) Insert(principal string, form models.ApplicationForm) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := models.NewMillis(time.Now())
	app := models.Application{
		ApplicationNumber: s.next,
		Principal:         principal,
		Status:            models.ApplicationStatusPending,
		ApplicationForm:   form,
		Created:           now,
		LastUpdated:       now,
	}
	s.applications[app.ApplicationNumber] = app
	s.next++

	return &app, nil
}

func (s *MemoryApplicationStore) GetByNumber(number int64) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if app, ok := s.applications[number]; ok {
		return &app, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryApplicationStore) ListAll() ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := make([]models.Application, 0, len(s.applications))
	for _, app := range s.applications {
		apps = append(apps, app)
	}
	sortByNumber(apps)
	return apps, nil
}

func (s *MemoryApplicationStore) ListByPrincipal(principal string) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := make([]models.Application, 0)
	for _, app := range s.applications {
		if app.Principal == principal {
			apps = append(apps, app)
		}
	}
	sortByNumber(apps)
	return apps, nil
}

func sortByNumber(apps []models.Application) {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].ApplicationNumber < apps[j].ApplicationNumber
	})
}

type MemoryRoleStore struct {
	mu    sync.RWMutex
	roles map[string]models.UserRole
}

func NewMemoryRoleStore() *MemoryRoleStore {
	return &MemoryRoleStore{roles: make(map[string]models.UserRole)}
}

func (s *MemoryRoleStore) GetRole(principal string) (models.UserRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if role, ok := s.roles[principal]; ok {
		return role, nil
	}
	return models.DefaultRole, nil
}

func (s *MemoryRoleStore) SetRole(principal string, role models.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roles[principal] = role
	return nil
}
