// internal/store/gorm.go
package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gramseva/resicert-backend/internal/database"
	"github.com/gramseva/resicert-backend/internal/models"
)

type GormApplicationStore struct {
	db *gorm.DB
}

func NewGormApplicationStore(db *gorm.DB) *GormApplicationStore {
	return &GormApplicationStore{db: db}
}

// Insert allocates the next application number and creates the record in a
// single transaction. The counter row is locked FOR UPDATE so concurrent
// submissions serialize on it; a rollback leaves the counter untouched, so no
// number is ever burned or reused.
func (s *GormApplicationStore) Insert(principal string, form models.ApplicationForm) (*models.Application, error) {
	var created *models.Application

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var counter models.ApplicationCounter
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&counter, 1).Error; err != nil {
			return fmt.Errorf("failed to lock application counter: %w", err)
		}

		now := models.NewMillis(time.Now())
		app := &models.Application{
			ApplicationNumber: counter.Next,
			Principal:         principal,
			Status:            models.ApplicationStatusPending,
			ApplicationForm:   form,
			Created:           now,
			LastUpdated:       now,
		}
		if err := tx.Create(app).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}

		counter.Next++
		if err := tx.Save(&counter).Error; err != nil {
			return fmt.Errorf("failed to advance application counter: %w", err)
		}

		created = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *GormApplicationStore) GetByNumber(number int64) (*models.Application, error) {
	var app models.Application
	if err := s.db.First(&app, number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &app, nil
}

func (s *GormApplicationStore) ListAll() ([]models.Application, error) {
	var apps []models.Application
	if err := s.db.Order("application_number").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return apps, nil
}

func (s *GormApplicationStore) ListByPrincipal(principal string) ([]models.Application, error) {
	var apps []models.Application
	if err := s.db.Where("principal = ?", principal).
		Order("application_number").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return apps, nil
}

type GormRoleStore struct {
	db *gorm.DB
}

func NewGormRoleStore(db *gorm.DB) *GormRoleStore {
	return &GormRoleStore{db: db}
}

func (s *GormRoleStore) GetRole(principal string) (models.UserRole, error) {
	var assignment models.RoleAssignment
	if err := s.db.First(&assignment, "principal = ?", principal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultRole, nil
		}
		return "", fmt.Errorf("database error: %w", err)
	}
	return assignment.Role, nil
}

func (s *GormRoleStore) SetRole(principal string, role models.UserRole) error {
	assignment := models.RoleAssignment{
		Principal: principal,
		Role:      role,
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&assignment).Error; err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}
