// internal/handlers/role.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gramseva/resicert-backend/internal/services"
	"github.com/gramseva/resicert-backend/internal/utils"
)

type RoleHandler struct {
	roleService *services.RoleService
}

func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// GET /roles/me
func (h *RoleHandler) GetCallerRole(c *gin.Context) {
	principal, exists := utils.GetPrincipalFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	role, err := h.roleService.GetCallerRole(principal)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"role": role,
	})
}

// GET /roles/me/is-admin
func (h *RoleHandler) IsCallerAdmin(c *gin.Context) {
	principal, exists := utils.GetPrincipalFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	isAdmin, err := h.roleService.IsAdmin(principal)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"isAdmin": isAdmin,
	})
}
