package dto

import "github.com/tenacity/erp/internal/app/models"

// AdmissionRequest admits a new student
type AdmissionRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=100" example:"Ishaan Mehta"`
	Attendance float64 `json:"attendance" binding:"percent" example:"100"`
	Marks      float64 `json:"marks" binding:"percent" example:"72"`
}

// UpdateStudentRequest is a faculty edit. Nil fields are left unchanged;
// a non-empty Note or Achievement is appended.
type UpdateStudentRequest struct {
	Marks       *float64 `json:"marks,omitempty" binding:"omitempty,percent" example:"64"`
	Attendance  *float64 `json:"attendance,omitempty" binding:"omitempty,percent" example:"78"`
	Note        string   `json:"note,omitempty" binding:"max=500" example:"Improved in mid-term"`
	Achievement string   `json:"achievement,omitempty" binding:"max=500" example:"Won the science quiz"`
}

// CertificateRequest appends a certificate to a student's portfolio
type CertificateRequest struct {
	Title string `json:"title" binding:"required,max=500" example:"NPTEL Data Structures"`
}

// SubjectRequest is one prospective subject result
type SubjectRequest struct {
	Name    string  `json:"name,omitempty" example:"Mathematics"`
	Credits float64 `json:"credits" binding:"gt=0" example:"4"`
	Marks   float64 `json:"marks" binding:"percent" example:"75"`
}

// ProjectionRequest asks for a projected CGPA. When Subjects is empty a single
// subject of DefaultProjectionCredits credits scored at ExpectedMarks is used.
type ProjectionRequest struct {
	CurrentCredits *float64         `json:"currentCredits,omitempty" binding:"omitempty,min=0" example:"19"`
	ExpectedMarks  *float64         `json:"expectedMarks,omitempty" binding:"omitempty,percent" example:"75"`
	Subjects       []SubjectRequest `json:"subjects,omitempty" binding:"omitempty,dive"`
}

// Projection defaults
const (
	DefaultCurrentCredits    = 19.0
	DefaultProjectionCredits = 4.0
	DefaultExpectedMarks     = 75.0
)

// ProjectionResponse is the CGPA predictor result
type ProjectionResponse struct {
	CurrentGPA   float64 `json:"currentGpa" example:"5.5"`
	ProjectedGPA float64 `json:"projectedGpa" example:"5.96"`
	Trend        string  `json:"trend" example:"improvement"`
}

// StudentListFilter narrows the student list
type StudentListFilter struct {
	Status models.Status
	Query  string
	Page   int
	Size   int
}

// StudentListResponse is a page of student profiles
type StudentListResponse struct {
	Items      []models.StudentProfile `json:"items"`
	Pagination PaginationInfo          `json:"pagination"`
}
