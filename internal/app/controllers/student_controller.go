package controllers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/services"
	"github.com/tenacity/erp/internal/middleware"
	"github.com/tenacity/erp/internal/pkg/helpers"
)

// StudentController handles student record operations
type StudentController struct {
	studentService services.StudentService
	reportService  services.ReportService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, reportService services.ReportService) *StudentController {
	return &StudentController{
		studentService: studentService,
		reportService:  reportService,
	}
}

// GetAllStudents lists student profiles
// @Summary List students
// @Description Lists student profiles with derived GPA, status and warnings
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(Safe, Average, At-Risk)
// @Param q query string false "Filter by name or id"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Students retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.StudentListFilter{
		Query: ctx.Query("q"),
		Page:  page,
		Size:  size,
	}

	if raw := strings.TrimSpace(ctx.Query("status")); raw != "" {
		status, ok := models.ParseStatus(raw)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
			errorDetail = errorDetail.WithDetails("status must be one of Safe, Average, At-Risk")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.Status = status
	}

	res, err := c.studentService.List(ctx, viewerFrom(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res)
}

// GetAtRiskStudents lists the At-Risk students
// @Summary List at-risk students
// @Description Lists every At-Risk student with early warnings
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudentProfile} "At-risk students"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Router /students/at-risk [get]
func (c *StudentController) GetAtRiskStudents(ctx *gin.Context) {
	profiles, err := c.studentService.AtRisk(ctx, viewerFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profiles)
}

// GetStudentByID returns one profile
// @Summary Get student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile} "Student retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	profile, err := c.studentService.Get(ctx, viewerFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profile)
}

// GetStudentWarnings returns the early warnings of one student
// @Summary Get early warnings
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Warning} "Warnings"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/warnings [get]
func (c *StudentController) GetStudentWarnings(ctx *gin.Context) {
	warnings, err := c.studentService.Warnings(ctx, viewerFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, warnings)
}

// AdmitStudent creates a student record
// @Summary Admit a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdmissionRequest true "Admission details"
// @Success 201 {object} dto.APIResponse{data=models.StudentProfile} "Student admitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid admission data"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Router /students [post]
func (c *StudentController) AdmitStudent(ctx *gin.Context) {
	var req dto.AdmissionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, warnings, err := c.studentService.Admit(ctx, viewerFrom(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, profile, warnings...)
}

// UpdateStudent applies a faculty edit
// @Summary Update academics
// @Description Updates marks and attendance and appends a note or achievement. Omitted fields are left unchanged.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Changes"
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid update"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [patch]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, warnings, err := c.studentService.Update(ctx, viewerFrom(ctx), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profile, warnings...)
}

// MarkAbsent flags an exam absence
// @Summary Mark exam absence
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile} "Absence recorded"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/absent [post]
func (c *StudentController) MarkAbsent(ctx *gin.Context) {
	profile, warnings, err := c.studentService.MarkAbsent(ctx, viewerFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profile, warnings...)
}

// AddCertificate appends a certificate to the portfolio
// @Summary Add certificate
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.CertificateRequest true "Certificate"
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile} "Certificate added"
// @Failure 400 {object} dto.ErrorResponse "Invalid certificate"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/certificates [post]
func (c *StudentController) AddCertificate(ctx *gin.Context) {
	var req dto.CertificateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, warnings, err := c.studentService.AddCertificate(ctx, viewerFrom(ctx), ctx.Param("id"), req.Title)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profile, warnings...)
}

// GetPortfolio downloads a student's portfolio
// @Summary Download portfolio
// @Tags students
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {file} file "Portfolio PDF"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Role not allowed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/portfolio.pdf [get]
func (c *StudentController) GetPortfolio(ctx *gin.Context) {
	viewer := viewerFrom(ctx)
	id := ctx.Param("id")
	sendDocument(ctx, contentTypePDF, func(buf *bytes.Buffer) (string, error) {
		return c.reportService.WritePortfolio(ctx, viewer, id, buf)
	})
}

// GetMe returns the profile of the session's student
// @Summary My profile
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile} "Own profile"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Not a student session"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /me [get]
func (c *StudentController) GetMe(ctx *gin.Context) {
	profile, err := c.studentService.Self(ctx, viewerFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profile)
}

// ProjectMyGPA runs the CGPA predictor for the session's student
// @Summary Project my CGPA
// @Description Predicts the CGPA after further subjects. Without subjects one 4-credit subject at the expected marks (default 75) is assumed; currentCredits defaults to 19.
// @Tags me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProjectionRequest false "Projection input"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectionResponse} "Projection"
// @Failure 400 {object} dto.ErrorResponse "Invalid input or zero credits"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Not a student session"
// @Router /me/projection [post]
func (c *StudentController) ProjectMyGPA(ctx *gin.Context) {
	var req dto.ProjectionRequest
	if ctx.Request.ContentLength != 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	res, err := c.studentService.Project(ctx, viewerFrom(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, res)
}

// GetMyPortfolio downloads the session student's portfolio
// @Summary Download my portfolio
// @Tags me
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file "Portfolio PDF"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Failure 403 {object} dto.ErrorResponse "Not a student session"
// @Router /me/portfolio.pdf [get]
func (c *StudentController) GetMyPortfolio(ctx *gin.Context) {
	viewer := viewerFrom(ctx)
	sendDocument(ctx, contentTypePDF, func(buf *bytes.Buffer) (string, error) {
		return c.reportService.WritePortfolio(ctx, viewer, viewer.StudentID, buf)
	})
}
