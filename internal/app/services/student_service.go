package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tenacity/erp/internal/app/auth"
	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/domain/grading"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/pkg/helpers"
	"github.com/tenacity/erp/internal/pkg/logger"
	"github.com/tenacity/erp/internal/pkg/validation"
)

const maxStudentIDAttempts = 5

// StudentService defines the interface for student record operations
type StudentService interface {
	List(ctx context.Context, viewer auth.Viewer, filter dto.StudentListFilter) (*dto.StudentListResponse, error)
	Get(ctx context.Context, viewer auth.Viewer, id string) (models.StudentProfile, error)
	Self(ctx context.Context, viewer auth.Viewer) (models.StudentProfile, error)
	Warnings(ctx context.Context, viewer auth.Viewer, id string) ([]models.Warning, error)
	AtRisk(ctx context.Context, viewer auth.Viewer) ([]models.StudentProfile, error)
	Admit(ctx context.Context, viewer auth.Viewer, req dto.AdmissionRequest) (models.StudentProfile, []string, error)
	Update(ctx context.Context, viewer auth.Viewer, id string, req dto.UpdateStudentRequest) (models.StudentProfile, []string, error)
	MarkAbsent(ctx context.Context, viewer auth.Viewer, id string) (models.StudentProfile, []string, error)
	AddCertificate(ctx context.Context, viewer auth.Viewer, id, title string) (models.StudentProfile, []string, error)
	Project(ctx context.Context, viewer auth.Viewer, req dto.ProjectionRequest) (*dto.ProjectionResponse, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo  *repositories.StudentRepository
	authzService *auth.AuthorizationService
	now          func() time.Time
}

// NewStudentService creates a new StudentService
func NewStudentService(repos *repositories.Repositories, authzService *auth.AuthorizationService, now func() time.Time) StudentService {
	return &studentServiceImpl{
		studentRepo:  repos.Students,
		authzService: authzService,
		now:          now,
	}
}

func matchesQuery(s models.Student, query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(s.Name), query) || strings.EqualFold(s.ID, query)
}

// List returns one page of profiles, optionally filtered by status and name/id
func (s *studentServiceImpl) List(ctx context.Context, viewer auth.Viewer, filter dto.StudentListFilter) (*dto.StudentListResponse, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionListStudents, ""); err != nil {
		return nil, err
	}

	query := strings.TrimSpace(filter.Query)
	matched := make([]models.StudentProfile, 0)
	for _, p := range profilesOf(s.studentRepo.All(ctx)) {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if !matchesQuery(p.Student, query) {
			continue
		}
		matched = append(matched, p)
	}

	pagination := helpers.NewPaginationInfo(len(matched), filter.Page, filter.Size)
	return &dto.StudentListResponse{
		Items:      helpers.Paginate(matched, pagination.CurrentPage, pagination.PageSize),
		Pagination: pagination,
	}, nil
}

// Get returns one profile with its warnings
func (s *studentServiceImpl) Get(ctx context.Context, viewer auth.Viewer, id string) (models.StudentProfile, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionViewStudent, id); err != nil {
		return models.StudentProfile{}, err
	}
	st, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return models.StudentProfile{}, err
	}
	return profileOf(st), nil
}

// Self returns the profile of the student a Student session refers to
func (s *studentServiceImpl) Self(ctx context.Context, viewer auth.Viewer) (models.StudentProfile, error) {
	st, err := s.authzService.ResolveSelf(ctx, viewer)
	if err != nil {
		return models.StudentProfile{}, err
	}
	return profileOf(st), nil
}

// Warnings returns the early-warning indicators of one student
func (s *studentServiceImpl) Warnings(ctx context.Context, viewer auth.Viewer, id string) ([]models.Warning, error) {
	p, err := s.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	return p.Warnings, nil
}

// AtRisk lists the At-Risk students with their warnings
func (s *studentServiceImpl) AtRisk(ctx context.Context, viewer auth.Viewer) ([]models.StudentProfile, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionListStudents, ""); err != nil {
		return nil, err
	}
	out := make([]models.StudentProfile, 0)
	for _, p := range profilesOf(s.studentRepo.All(ctx)) {
		if p.Status == models.StatusAtRisk {
			out = append(out, p)
		}
	}
	return out, nil
}

// newStudentID builds "s" + the last four digits of the unix millisecond
// timestamp + two random characters
func newStudentID(now time.Time) string {
	return fmt.Sprintf("s%04d%s", now.UnixMilli()%10_000, uuid.NewString()[:2])
}

func validatePercents(fields map[string]*float64) error {
	for name, v := range fields {
		if v == nil {
			continue
		}
		if err := validation.NewPercentValidation(name, *v).Validate(); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	}
	return nil
}

// Admit appends a new student record
func (s *studentServiceImpl) Admit(ctx context.Context, viewer auth.Viewer, req dto.AdmissionRequest) (models.StudentProfile, []string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionAdmitStudent, ""); err != nil {
		return models.StudentProfile{}, nil, err
	}

	name := strings.TrimSpace(req.Name)
	if !validation.IsName(name) {
		return models.StudentProfile{}, nil, apperrors.NewValidationError("name must be between 2 and 100 characters")
	}
	if err := validatePercents(map[string]*float64{"attendance": &req.Attendance, "marks": &req.Marks}); err != nil {
		return models.StudentProfile{}, nil, err
	}

	var admitted models.Student
	m, err := s.studentRepo.Mutate(ctx, func(students []models.Student) ([]models.Student, error) {
		taken := make(map[string]struct{}, len(students))
		for _, st := range students {
			taken[st.ID] = struct{}{}
		}
		for attempt := 0; attempt < maxStudentIDAttempts; attempt++ {
			id := newStudentID(s.now())
			if _, clash := taken[id]; clash {
				continue
			}
			admitted = models.Student{ID: id, Name: name, Attendance: req.Attendance, Marks: req.Marks}
			return append(students, admitted), nil
		}
		return nil, fmt.Errorf("admit %q: could not generate a unique student id", name)
	})
	if err != nil {
		return models.StudentProfile{}, nil, err
	}

	logger.Info().Str("studentID", admitted.ID).Str("name", admitted.Name).Msg("Student admitted")
	return profileOf(admitted), m.Warnings(), nil
}

// edit applies fn to one student under the collection lock
func (s *studentServiceImpl) edit(ctx context.Context, id string, fn func(*models.Student)) (models.StudentProfile, []string, error) {
	var edited models.Student
	m, err := s.studentRepo.Mutate(ctx, func(students []models.Student) ([]models.Student, error) {
		for i := range students {
			if students[i].ID == id {
				edited = students[i].Clone()
				fn(&edited)
				students[i] = edited
				return students, nil
			}
		}
		return nil, fmt.Errorf("edit student %q: %w", id, apperrors.ErrStudentNotFound)
	})
	if err != nil {
		return models.StudentProfile{}, nil, err
	}
	return profileOf(edited), m.Warnings(), nil
}

// Update applies a faculty edit: marks, attendance, a note and an achievement
func (s *studentServiceImpl) Update(ctx context.Context, viewer auth.Viewer, id string, req dto.UpdateStudentRequest) (models.StudentProfile, []string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionEditAcademics, id); err != nil {
		return models.StudentProfile{}, nil, err
	}
	if err := validatePercents(map[string]*float64{"attendance": req.Attendance, "marks": req.Marks}); err != nil {
		return models.StudentProfile{}, nil, err
	}

	note := strings.TrimSpace(req.Note)
	achievement := strings.TrimSpace(req.Achievement)
	if req.Marks == nil && req.Attendance == nil && note == "" && achievement == "" {
		return models.StudentProfile{}, nil, apperrors.NewValidationError("nothing to update")
	}

	return s.edit(ctx, id, func(st *models.Student) {
		if req.Marks != nil {
			st.Marks = *req.Marks
		}
		if req.Attendance != nil {
			st.Attendance = *req.Attendance
		}
		if note != "" {
			st.Notes = append(st.Notes, note)
		}
		if achievement != "" {
			st.Achievements = append(st.Achievements, achievement)
		}
	})
}

// MarkAbsent records an exam absence
func (s *studentServiceImpl) MarkAbsent(ctx context.Context, viewer auth.Viewer, id string) (models.StudentProfile, []string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionEditAcademics, id); err != nil {
		return models.StudentProfile{}, nil, err
	}
	return s.edit(ctx, id, func(st *models.Student) {
		st.AbsentFlag = true
	})
}

// AddCertificate appends a certificate to the portfolio
func (s *studentServiceImpl) AddCertificate(ctx context.Context, viewer auth.Viewer, id, title string) (models.StudentProfile, []string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionAddCertificate, id); err != nil {
		return models.StudentProfile{}, nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.StudentProfile{}, nil, apperrors.NewValidationError("certificate title is required")
	}
	return s.edit(ctx, id, func(st *models.Student) {
		st.Certificates = append(st.Certificates, title)
	})
}

// Project predicts the CGPA of the session's student after further subjects
func (s *studentServiceImpl) Project(ctx context.Context, viewer auth.Viewer, req dto.ProjectionRequest) (*dto.ProjectionResponse, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionProjectOwnGrade, viewer.StudentID); err != nil {
		return nil, err
	}
	self, err := s.Self(ctx, viewer)
	if err != nil {
		return nil, err
	}

	currentCredits := dto.DefaultCurrentCredits
	if req.CurrentCredits != nil {
		currentCredits = *req.CurrentCredits
	}

	subjects := make([]grading.Subject, 0, len(req.Subjects))
	for _, sub := range req.Subjects {
		subjects = append(subjects, grading.Subject{Name: sub.Name, Credits: sub.Credits, Marks: sub.Marks})
	}
	if len(subjects) == 0 {
		marks := dto.DefaultExpectedMarks
		if req.ExpectedMarks != nil {
			marks = *req.ExpectedMarks
		}
		subjects = append(subjects, grading.Subject{Credits: dto.DefaultProjectionCredits, Marks: marks})
	}

	projected, err := grading.ProjectedGPA(self.GPA, currentCredits, subjects)
	if err != nil {
		return nil, err
	}

	return &dto.ProjectionResponse{
		CurrentGPA:   self.GPA,
		ProjectedGPA: projected,
		Trend:        string(grading.CompareTrend(self.GPA, projected)),
	}, nil
}
