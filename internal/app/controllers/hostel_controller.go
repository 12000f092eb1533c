package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/services"
	"github.com/tenacity/erp/internal/middleware"
)

// HostelController handles room allocation
type HostelController struct {
	hostelService services.HostelService
}

// NewHostelController creates a new HostelController
func NewHostelController(hostelService services.HostelService) *HostelController {
	return &HostelController{
		hostelService: hostelService,
	}
}

// GetOverview returns the hostel panel
// @Summary Hostel overview
// @Description Occupancy per room, available rooms and students without a room
// @Tags hostel
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=hostel.Summary} "Overview"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Router /hostel [get]
func (c *HostelController) GetOverview(ctx *gin.Context) {
	summary, err := c.hostelService.Overview(ctx, viewerFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, summary)
}

// Allocate places a student into a room
// @Summary Allocate room
// @Tags hostel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roomId path string true "Room ID"
// @Param request body dto.AllocateRequest true "Student"
// @Success 200 {object} dto.APIResponse{data=hostel.Summary} "Student allocated"
// @Failure 400 {object} dto.ErrorResponse "Invalid student id"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Room or student not found"
// @Failure 409 {object} dto.ErrorResponse "Room full or student already allocated"
// @Router /hostel/rooms/{roomId}/occupants [post]
func (c *HostelController) Allocate(ctx *gin.Context) {
	var req dto.AllocateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	summary, warnings, err := c.hostelService.Allocate(ctx, viewerFrom(ctx), ctx.Param("roomId"), req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, summary, warnings...)
}

// Deallocate removes a student from a room
// @Summary Deallocate room
// @Tags hostel
// @Produce json
// @Security BearerAuth
// @Param roomId path string true "Room ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=hostel.Summary} "Student removed"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Room not found or student not an occupant"
// @Router /hostel/rooms/{roomId}/occupants/{studentId} [delete]
func (c *HostelController) Deallocate(ctx *gin.Context) {
	summary, warnings, err := c.hostelService.Deallocate(ctx, viewerFrom(ctx), ctx.Param("roomId"), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, summary, warnings...)
}
