// internal/handlers/application.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gramseva/resicert-backend/internal/i18n"
	"github.com/gramseva/resicert-backend/internal/models"
	"github.com/gramseva/resicert-backend/internal/services"
	"github.com/gramseva/resicert-backend/internal/utils"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// POST /applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	principal, exists := utils.GetPrincipalFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var form models.ApplicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// The form content is accepted as-is; field-format checks live in the
	// frontend.
	application, err := h.applicationService.CreateApplication(principal, form)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":           i18n.T(lang, i18n.KeyApplicationCreated),
		"applicationNumber": application.ApplicationNumber,
		"application":       application,
	})
}

// GET /applications/mine
func (h *ApplicationHandler) GetOwnApplications(c *gin.Context) {
	principal, exists := utils.GetPrincipalFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	applications, err := h.applicationService.GetOwnApplications(principal)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"applications": applications,
	})
}

// GET /applications/:number
func (h *ApplicationHandler) GetApplicationByNumber(c *gin.Context) {
	principal, exists := utils.GetPrincipalFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application number", nil)
		return
	}

	application, err := h.applicationService.GetApplicationByNumber(principal, number)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "application")
			return
		}
		if errors.Is(err, services.ErrUnauthorized) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"application": application,
	})
}
