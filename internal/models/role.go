// internal/models/role.go
package models

import "time"

// RoleAssignment maps an identity to its explicitly assigned role. Exactly one
// role per principal; identities without a row hold DefaultRole.
type RoleAssignment struct {
	Principal string    `json:"principal" gorm:"primaryKey;size:255"`
	Role      UserRole  `json:"role" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
