// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAccessDenied     = "auth.access_denied"

	// Applications
	KeyApplicationCreated  = "application.created"
	KeyApplicationNotFound = "application.not_found"

	// Roles
	KeyRoleAssigned = "role.assigned"
	KeyRoleInvalid  = "role.invalid"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Rate limiting
	KeyRateLimited = "rate.limited"
)
