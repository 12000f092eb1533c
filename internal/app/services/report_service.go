package services

import (
	"context"
	"io"
	"time"

	"github.com/tenacity/erp/internal/app/auth"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/reports"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/domain/fees"
	"github.com/tenacity/erp/internal/domain/hostel"
	"github.com/tenacity/erp/internal/domain/stats"
	"github.com/tenacity/erp/internal/pkg/helpers"
)

// ReportService defines the interface for statistics and exports
type ReportService interface {
	Summary(ctx context.Context, viewer auth.Viewer) (*dto.ReportSummaryResponse, error)
	WriteStudentsCSV(ctx context.Context, viewer auth.Viewer, w io.Writer) (string, error)
	WriteInstitutionReport(ctx context.Context, viewer auth.Viewer, w io.Writer) (string, error)
	WritePortfolio(ctx context.Context, viewer auth.Viewer, studentID string, w io.Writer) (string, error)
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	repos        *repositories.Repositories
	authzService *auth.AuthorizationService
	generator    *reports.Generator
	locale       string
	now          func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	repos *repositories.Repositories,
	authzService *auth.AuthorizationService,
	generator *reports.Generator,
	locale string,
	now func() time.Time,
) ReportService {
	return &reportServiceImpl{
		repos:        repos,
		authzService: authzService,
		generator:    generator,
		locale:       locale,
		now:          now,
	}
}

// Summary gathers the admin dashboard figures
func (s *reportServiceImpl) Summary(ctx context.Context, viewer auth.Viewer) (*dto.ReportSummaryResponse, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionViewReports, ""); err != nil {
		return nil, err
	}

	students := s.repos.Students.All(ctx)
	institution, err := stats.BuildInstitution(profilesOf(students))
	if err != nil {
		return nil, err
	}
	ledger := fees.Ledger(s.repos.Transactions.All(ctx))

	return &dto.ReportSummaryResponse{
		Institution:    institution,
		Hostel:         hostel.Overview(s.repos.Rooms.All(ctx), students),
		TotalCollected: helpers.FormatINR(ledger.TotalCollected(), s.locale),
		Transactions:   len(ledger),
	}, nil
}

// WriteStudentsCSV writes the student export and returns its file name
func (s *reportServiceImpl) WriteStudentsCSV(ctx context.Context, viewer auth.Viewer, w io.Writer) (string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionViewReports, ""); err != nil {
		return "", err
	}
	if err := reports.StudentsCSV(w, profilesOf(s.repos.Students.All(ctx))); err != nil {
		return "", err
	}
	return reports.CSVFileName(s.now()), nil
}

// WriteInstitutionReport renders the NAAC report
func (s *reportServiceImpl) WriteInstitutionReport(ctx context.Context, viewer auth.Viewer, w io.Writer) (string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionViewReports, ""); err != nil {
		return "", err
	}
	institution, err := stats.BuildInstitution(profilesOf(s.repos.Students.All(ctx)))
	if err != nil {
		return "", err
	}
	if err := s.generator.Institution(w, institution); err != nil {
		return "", err
	}
	return reports.InstitutionFileName(s.now()), nil
}

// WritePortfolio renders a student's portfolio. Student sessions may only
// render their own.
func (s *reportServiceImpl) WritePortfolio(ctx context.Context, viewer auth.Viewer, studentID string, w io.Writer) (string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionViewStudent, studentID); err != nil {
		return "", err
	}
	st, err := s.repos.Students.FindByID(ctx, studentID)
	if err != nil {
		return "", err
	}
	if err := s.generator.Portfolio(w, profileOf(st)); err != nil {
		return "", err
	}
	return reports.PortfolioFileName(st.Name), nil
}
