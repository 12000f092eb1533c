package auth

import (
	"context"
	"fmt"
	"slices"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/pkg/logger"
)

// Viewer is the role a request acts under. StudentID is set for Student sessions.
type Viewer struct {
	Role      models.Role
	StudentID string
}

// Action is an operation subject to role checks
type Action string

const (
	ActionViewStudent     Action = "view_student"
	ActionListStudents    Action = "list_students"
	ActionAdmitStudent    Action = "admit_student"
	ActionEditAcademics   Action = "edit_academics"
	ActionAddCertificate  Action = "add_certificate"
	ActionManageFees      Action = "manage_fees"
	ActionManageHostel    Action = "manage_hostel"
	ActionViewReports     Action = "view_reports"
	ActionResetData       Action = "reset_data"
	ActionProjectOwnGrade Action = "project_own_grade"
)

// permissions lists the roles allowed to perform each action
var permissions = map[Action][]models.Role{
	ActionViewStudent:     {models.RoleStudent, models.RoleFaculty, models.RoleAdmin},
	ActionListStudents:    {models.RoleFaculty, models.RoleAdmin},
	ActionAdmitStudent:    {models.RoleAdmin},
	ActionEditAcademics:   {models.RoleFaculty},
	ActionAddCertificate:  {models.RoleAdmin},
	ActionManageFees:      {models.RoleAdmin},
	ActionManageHostel:    {models.RoleAdmin},
	ActionViewReports:     {models.RoleAdmin},
	ActionResetData:       {models.RoleAdmin},
	ActionProjectOwnGrade: {models.RoleStudent},
}

// AuthorizationService checks role permissions. Roles are declared by the
// caller, so this enforces the dashboard views rather than identity.
type AuthorizationService struct {
	studentRepo *repositories.StudentRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(studentRepo *repositories.StudentRepository) *AuthorizationService {
	return &AuthorizationService{studentRepo: studentRepo}
}

// Authorize returns ErrPermissionDenied unless viewer may perform action.
// A Student may only act on its own record.
func (s *AuthorizationService) Authorize(viewer Viewer, action Action, studentID string) error {
	allowed, known := permissions[action]
	if !known || !slices.Contains(allowed, viewer.Role) {
		return apperrors.NewForbiddenError(fmt.Sprintf("role %q may not %s", viewer.Role, action))
	}
	if viewer.Role == models.RoleStudent && studentID != "" && studentID != viewer.StudentID {
		logger.Warn().
			Str("sessionStudent", viewer.StudentID).
			Str("targetStudent", studentID).
			Msg("Student session tried to access another record")
		return apperrors.NewForbiddenError("students may only view their own record")
	}
	return nil
}

// ResolveSelf returns the record a Student session refers to
func (s *AuthorizationService) ResolveSelf(ctx context.Context, viewer Viewer) (models.Student, error) {
	if viewer.Role != models.RoleStudent || viewer.StudentID == "" {
		return models.Student{}, apperrors.NewForbiddenError("only student sessions have an own record")
	}
	return s.studentRepo.FindByID(ctx, viewer.StudentID)
}
