// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gramseva/resicert-backend/internal/i18n"
	"github.com/gramseva/resicert-backend/internal/models"
	"github.com/gramseva/resicert-backend/internal/services"
	"github.com/gramseva/resicert-backend/internal/utils"
)

type AdminHandler struct {
	applicationService *services.ApplicationService
	roleService        *services.RoleService
}

func NewAdminHandler(applicationService *services.ApplicationService, roleService *services.RoleService) *AdminHandler {
	return &AdminHandler{
		applicationService: applicationService,
		roleService:        roleService,
	}
}

type AssignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// GET /admin/applications
func (h *AdminHandler) GetAllApplications(c *gin.Context) {
	principal, exists := utils.GetPrincipalFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	applications, err := h.applicationService.GetAllApplications(principal)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"applications": applications,
	})
}

// PUT /admin/roles/:principal
func (h *AdminHandler) AssignRole(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	acting, exists := utils.GetPrincipalFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	target := c.Param("principal")
	if target == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "principal"), nil)
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	// Unknown role values are rejected here, never defaulted.
	role, ok := models.ParseUserRole(req.Role)
	if !ok {
		utils.ErrorResponse(c, 400, "INVALID_ROLE", i18n.T(lang, i18n.KeyRoleInvalid), nil)
		return
	}

	if err := h.roleService.AssignRole(acting, target, role); err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			utils.ForbiddenResponse(c, "")
			return
		}
		if errors.Is(err, services.ErrInvalidRole) {
			utils.ErrorResponse(c, 400, "INVALID_ROLE", i18n.T(lang, i18n.KeyRoleInvalid), nil)
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyRoleAssigned),
		"principal": target,
		"role":      role,
	})
}
