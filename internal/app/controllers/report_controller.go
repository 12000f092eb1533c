package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenacity/erp/internal/app/services"
	"github.com/tenacity/erp/internal/middleware"
)

// ReportController handles statistics, exports and maintenance
type ReportController struct {
	reportService services.ReportService
	adminService  services.AdminService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, adminService services.AdminService) *ReportController {
	return &ReportController{
		reportService: reportService,
		adminService:  adminService,
	}
}

// GetSummary returns the admin dashboard figures
// @Summary Dashboard statistics
// @Description Cohort counts, averages, status share, attendance distribution, quality ratings, hostel occupancy and fees collected
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ReportSummaryResponse} "Statistics"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "No students to summarize"
// @Router /reports/summary [get]
func (c *ReportController) GetSummary(ctx *gin.Context) {
	res, err := c.reportService.Summary(ctx, viewerFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res)
}

// ExportStudentsCSV downloads every student as CSV
// @Summary Export students
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "Students CSV"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Router /reports/students.csv [get]
func (c *ReportController) ExportStudentsCSV(ctx *gin.Context) {
	viewer := viewerFrom(ctx)
	sendDocument(ctx, contentTypeCSV, func(buf *bytes.Buffer) (string, error) {
		return c.reportService.WriteStudentsCSV(ctx, viewer, buf)
	})
}

// GetInstitutionReport downloads the NAAC assessment report
// @Summary Download NAAC report
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file "Institution PDF"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "No students to summarize"
// @Router /reports/institution.pdf [get]
func (c *ReportController) GetInstitutionReport(ctx *gin.Context) {
	viewer := viewerFrom(ctx)
	sendDocument(ctx, contentTypePDF, func(buf *bytes.Buffer) (string, error) {
		return c.reportService.WriteInstitutionReport(ctx, viewer, buf)
	})
}

// ResetData restores the demo data
// @Summary Reset demo data
// @Description Replaces students, rooms and transactions with the default data
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ResetResponse} "Data reset"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Router /admin/reset [post]
func (c *ReportController) ResetData(ctx *gin.Context) {
	res, warnings, err := c.adminService.Reset(ctx, viewerFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res, warnings...)
}
