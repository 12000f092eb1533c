package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/services"
	"github.com/tenacity/erp/internal/middleware"
)

// SessionController handles role selection
type SessionController struct {
	sessionService services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService services.SessionService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// SelectRole issues a session token for the chosen dashboard role
// @Summary Select a role
// @Description Issues a session token for the Student, Faculty or Admin view. The role is declared, not verified. Student sessions must name an existing student.
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "Role selection"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid role or missing student id"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /session [post]
func (c *SessionController) SelectRole(ctx *gin.Context) {
	var req dto.SessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res, err := c.sessionService.Select(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, res)
}
