package services

import (
	"time"

	"github.com/tenacity/erp/internal/app/auth"
	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/reports"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/domain/grading"
	"github.com/tenacity/erp/internal/domain/warning"
	pkgauth "github.com/tenacity/erp/internal/pkg/auth"
	"github.com/tenacity/erp/internal/pkg/filestorage"
)

// Services defined in this package:
// - StudentService: student records, faculty edits and the CGPA predictor
// - FeeService: fee payments, ledger and receipts
// - HostelService: room allocation
// - ReportService: statistics and CSV/PDF exports
// - SessionService: role selection
// - ChatService: help-desk assistant
// - AdminService: demo data reset
type Services struct {
	Students StudentService
	Fees     FeeService
	Hostel   HostelService
	Reports  ReportService
	Sessions SessionService
	Chat     ChatService
	Admin    AdminService
}

// Dependencies are the collaborators shared by the services
type Dependencies struct {
	Repos   *repositories.Repositories
	JWT     *pkgauth.JWTService
	Reports *reports.Generator
	Archive filestorage.Storage
	Locale  string
	Clock   func() time.Time
}

// NewServices wires every service over deps
func NewServices(deps Dependencies) *Services {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	authz := auth.NewAuthorizationService(deps.Repos.Students)
	return &Services{
		Students: NewStudentService(deps.Repos, authz, deps.Clock),
		Fees:     NewFeeService(deps.Repos, authz, deps.Reports, deps.Archive, deps.Locale, deps.Clock),
		Hostel:   NewHostelService(deps.Repos, authz),
		Reports:  NewReportService(deps.Repos, authz, deps.Reports, deps.Locale, deps.Clock),
		Sessions: NewSessionService(deps.Repos.Students, deps.JWT),
		Chat:     NewChatService(),
		Admin:    NewAdminService(deps.Repos, authz),
	}
}

// profileOf derives GPA, status and warnings for a stored record
func profileOf(s models.Student) models.StudentProfile {
	return warning.Annotate(grading.Profile(s))
}

func profilesOf(students []models.Student) []models.StudentProfile {
	out := make([]models.StudentProfile, len(students))
	for i, s := range students {
		out[i] = profileOf(s)
	}
	return out
}
