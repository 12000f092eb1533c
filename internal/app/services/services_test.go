package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenacity/erp/internal/app/auth"
	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/reports"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/domain/grading"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	pkgauth "github.com/tenacity/erp/internal/pkg/auth"
	"github.com/tenacity/erp/internal/pkg/filestorage"
	"github.com/tenacity/erp/internal/seed"
)

var (
	fixedNow = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

	admin   = auth.Viewer{Role: models.RoleAdmin}
	faculty = auth.Viewer{Role: models.RoleFaculty}
	aman    = auth.Viewer{Role: models.RoleStudent, StudentID: "s1"}
)

// failingStore loads nothing and refuses every save
type failingStore struct {
	*repositories.MemoryStore
}

func (failingStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

// brokenArchive refuses to store documents
type brokenArchive struct {
	filestorage.Storage
}

func (brokenArchive) SaveBytes(string, string, []byte) (string, error) {
	return "", errors.New("read-only filesystem")
}

type fixture struct {
	services *Services
	repos    *repositories.Repositories
	archive  string
}

func newFixture(t *testing.T, store repositories.CollectionStore, archive filestorage.Storage) fixture {
	t.Helper()

	archiveDir := t.TempDir()
	if archive == nil {
		local, err := filestorage.NewLocalStorage(archiveDir, "/archive")
		require.NoError(t, err)
		archive = local
	}

	repos := repositories.NewRepositories(store, repositories.Seeds{
		Students:     seed.Students,
		Transactions: seed.Transactions,
		Rooms:        seed.Rooms,
	})
	svc := NewServices(Dependencies{
		Repos:   repos,
		JWT:     pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "test", TokenExp: time.Hour, TokenIssuer: "tenacity-erp"}),
		Reports: reports.NewGenerator(reports.Config{Institution: "TENACITY ERP"}),
		Archive: archive,
		Locale:  "en-IN",
		Clock:   func() time.Time { return fixedNow },
	})
	return fixture{services: svc, repos: repos, archive: archiveDir}
}

func newMemoryFixture(t *testing.T) fixture {
	return newFixture(t, repositories.NewMemoryStore(), nil)
}

func TestStudentService_List(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	all, err := f.services.Students.List(ctx, faculty, dto.StudentListFilter{Page: 1, Size: 100})
	require.NoError(t, err)
	assert.Equal(t, 10, all.Pagination.TotalItems)
	for _, p := range all.Items {
		assert.Equal(t, grading.ScoreToGradePoint(p.Marks), p.GPA)
	}

	atRisk, err := f.services.Students.List(ctx, faculty, dto.StudentListFilter{Status: models.StatusAtRisk, Page: 1, Size: 100})
	require.NoError(t, err)
	assert.Equal(t, 6, atRisk.Pagination.TotalItems)

	byName, err := f.services.Students.List(ctx, admin, dto.StudentListFilter{Query: "singh", Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, byName.Items, 1)
	assert.Equal(t, "s2", byName.Items[0].ID)

	// substring match on the name, case-insensitive
	partial, err := f.services.Students.List(ctx, admin, dto.StudentListFilter{Query: "RIYA", Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, partial.Items, 2)
	assert.Equal(t, "s2", partial.Items[0].ID)
	assert.Equal(t, "s4", partial.Items[1].ID)

	byID, err := f.services.Students.List(ctx, admin, dto.StudentListFilter{Query: "S4", Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, byID.Items, 1)
	assert.Equal(t, "Priya Sharma", byID.Items[0].Name)

	page, err := f.services.Students.List(ctx, admin, dto.StudentListFilter{Page: 2, Size: 4})
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	_, err = f.services.Students.List(ctx, aman, dto.StudentListFilter{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestStudentService_StudentSeesOnlySelf(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	self, err := f.services.Students.Self(ctx, aman)
	require.NoError(t, err)
	assert.Equal(t, "Aman Kumar", self.Name)
	assert.Equal(t, models.StatusAtRisk, self.Status)
	assert.NotEmpty(t, self.Warnings)

	_, err = f.services.Students.Get(ctx, aman, "s1")
	assert.NoError(t, err)

	_, err = f.services.Students.Get(ctx, aman, "s2")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.services.Students.Get(ctx, faculty, "missing")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestStudentService_AtRisk(t *testing.T) {
	f := newMemoryFixture(t)

	profiles, err := f.services.Students.AtRisk(context.Background(), faculty)
	require.NoError(t, err)
	require.Len(t, profiles, 6)
	for _, p := range profiles {
		assert.Equal(t, models.StatusAtRisk, p.Status)
		assert.NotEmpty(t, p.Warnings)
	}
}

func TestStudentService_Admit(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	p, warnings, err := f.services.Students.Admit(ctx, admin, dto.AdmissionRequest{Name: "  Asha Rao ", Attendance: 90, Marks: 85})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Asha Rao", p.Name)
	assert.Regexp(t, `^s\d{4}[0-9a-f]{2}$`, p.ID)
	assert.Equal(t, models.StatusSafe, p.Status)
	assert.Len(t, f.repos.Students.All(ctx), 11)

	_, _, err = f.services.Students.Admit(ctx, admin, dto.AdmissionRequest{Name: "A", Attendance: 90, Marks: 85})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = f.services.Students.Admit(ctx, admin, dto.AdmissionRequest{Name: "Asha", Attendance: 120, Marks: 85})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = f.services.Students.Admit(ctx, faculty, dto.AdmissionRequest{Name: "Asha", Attendance: 90, Marks: 85})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestStudentService_Update(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	marks, attendance := 92.0, 90.0
	p, _, err := f.services.Students.Update(ctx, faculty, "s1", dto.UpdateStudentRequest{
		Marks:       &marks,
		Attendance:  &attendance,
		Note:        "Improved after mentoring",
		Achievement: "Hackathon winner",
	})
	require.NoError(t, err)
	assert.InDelta(t, 9.2, p.GPA, 1e-9)
	assert.Equal(t, models.StatusSafe, p.Status)
	assert.Equal(t, []string{"Improved after mentoring"}, p.Notes)
	assert.Equal(t, []string{"Hackathon winner"}, p.Achievements)

	_, _, err = f.services.Students.Update(ctx, faculty, "s1", dto.UpdateStudentRequest{Note: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = f.services.Students.Update(ctx, faculty, "nobody", dto.UpdateStudentRequest{Note: "x"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, _, err = f.services.Students.Update(ctx, admin, "s1", dto.UpdateStudentRequest{Note: "x"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestStudentService_MarkAbsentAndCertificate(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	p, _, err := f.services.Students.MarkAbsent(ctx, faculty, "s2")
	require.NoError(t, err)
	assert.True(t, p.AbsentFlag)

	warnings, err := f.services.Students.Warnings(ctx, faculty, "s2")
	require.NoError(t, err)
	kinds := make([]models.WarningKind, 0, len(warnings))
	for _, w := range warnings {
		kinds = append(kinds, w.Kind)
	}
	assert.Contains(t, kinds, models.WarningExamAbsence)

	p, _, err = f.services.Students.AddCertificate(ctx, admin, "s2", "AWS Cloud Practitioner")
	require.NoError(t, err)
	assert.Equal(t, []string{"AWS Cloud Practitioner"}, p.Certificates)

	_, _, err = f.services.Students.AddCertificate(ctx, admin, "s2", " ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStudentService_Project(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	res, err := f.services.Students.Project(ctx, aman, dto.ProjectionRequest{})
	require.NoError(t, err)
	assert.InDelta(t, 5.5, res.CurrentGPA, 1e-9)
	assert.InDelta(t, (5.5*19+7.5*4)/23, res.ProjectedGPA, 1e-9)
	assert.Equal(t, string(grading.TrendImprovement), res.Trend)

	credits, low := 10.0, 30.0
	res, err = f.services.Students.Project(ctx, aman, dto.ProjectionRequest{CurrentCredits: &credits, ExpectedMarks: &low})
	require.NoError(t, err)
	assert.Equal(t, string(grading.TrendDecline), res.Trend)

	zero := 0.0
	_, err = f.services.Students.Project(ctx, aman, dto.ProjectionRequest{
		CurrentCredits: &zero,
		Subjects:       []dto.SubjectRequest{{Name: "Audit", Credits: 0, Marks: 50}},
	})
	assert.ErrorIs(t, err, apperrors.ErrNoCredits)

	_, err = f.services.Students.Project(ctx, faculty, dto.ProjectionRequest{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestStudentService_PersistFailureWarns(t *testing.T) {
	f := newFixture(t, failingStore{repositories.NewMemoryStore()}, nil)
	ctx := context.Background()

	p, warnings, err := f.services.Students.MarkAbsent(ctx, faculty, "s1")
	require.NoError(t, err)
	assert.True(t, p.AbsentFlag)
	assert.Len(t, warnings, 1)

	got, err := f.services.Students.Get(ctx, faculty, "s1")
	require.NoError(t, err)
	assert.True(t, got.AbsentFlag)
}

func TestFeeService_RecordPayment(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	res, warnings, err := f.services.Fees.RecordPayment(ctx, admin, dto.PaymentRequest{
		StudentID: "s1",
		Amount:    decimal.RequireFromString("25000"),
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "s1", res.Transaction.StudentID)
	assert.Equal(t, "Aman Kumar", res.Transaction.StudentName)
	assert.Equal(t, models.FeeTuition, res.Transaction.FeeType)
	assert.Equal(t, "2025-03-14", res.Transaction.Date)
	assert.Equal(t, "₹25,000.00", res.AmountFormatted)
	assert.Equal(t, "/archive/receipts/"+res.Transaction.ReceiptID+".pdf", res.ReceiptURL)

	archived, err := os.ReadFile(filepath.Join(f.archive, ReceiptArchiveDir, res.Transaction.ReceiptID+".pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(archived, []byte("%PDF")))

	_, _, err = f.services.Fees.RecordPayment(ctx, admin, dto.PaymentRequest{StudentID: "s404", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, apperrors.ErrUnknownStudent)

	_, _, err = f.services.Fees.RecordPayment(ctx, admin, dto.PaymentRequest{StudentID: "s1", Amount: decimal.Zero})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, _, err = f.services.Fees.RecordPayment(ctx, faculty, dto.PaymentRequest{StudentID: "s1", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	assert.Len(t, f.repos.Transactions.All(ctx), 1)
}

func TestFeeService_ArchiveFailureWarns(t *testing.T) {
	f := newFixture(t, repositories.NewMemoryStore(), brokenArchive{})

	res, warnings, err := f.services.Fees.RecordPayment(context.Background(), admin, dto.PaymentRequest{
		StudentID: "s2",
		Amount:    decimal.NewFromInt(5000),
		FeeType:   "library",
	})
	require.NoError(t, err)
	assert.Empty(t, res.ReceiptURL)
	assert.Equal(t, []string{"payment recorded but the receipt could not be archived"}, warnings)
}

func TestFeeService_LedgerAndReceipt(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	for _, p := range []struct {
		id     string
		amount int64
	}{{"s1", 1000}, {"s2", 2500}, {"s1", 500}} {
		_, _, err := f.services.Fees.RecordPayment(ctx, admin, dto.PaymentRequest{StudentID: p.id, Amount: decimal.NewFromInt(p.amount)})
		require.NoError(t, err)
	}

	ledger, err := f.services.Fees.Ledger(ctx, admin, "")
	require.NoError(t, err)
	assert.Equal(t, 3, ledger.Count)
	assert.True(t, ledger.TotalCollected.Equal(decimal.NewFromInt(4000)))
	assert.Equal(t, "₹4,000.00", ledger.TotalCollectedFormatted)
	assert.True(t, ledger.Transactions[0].Amount.Equal(decimal.NewFromInt(500)), "newest first")

	own, err := f.services.Fees.Ledger(ctx, admin, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, own.Count)
	assert.True(t, own.TotalCollected.Equal(decimal.NewFromInt(1500)))

	var buf bytes.Buffer
	name, err := f.services.Fees.WriteReceipt(ctx, admin, own.Transactions[0].ReceiptID, &buf)
	require.NoError(t, err)
	assert.Equal(t, reports.ReceiptFileName(own.Transactions[0].ReceiptID), name)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	_, err = f.services.Fees.WriteReceipt(ctx, admin, "REC000000NOPE", &buf)
	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
}

func TestHostelService(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	overview, err := f.services.Hostel.Overview(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 20, overview.TotalCapacity)
	assert.Equal(t, 10, overview.TotalOccupied)
	assert.Empty(t, overview.UnallocatedStudents)

	newcomer, _, err := f.services.Students.Admit(ctx, admin, dto.AdmissionRequest{Name: "Asha Rao", Attendance: 80, Marks: 70})
	require.NoError(t, err)

	overview, err = f.services.Hostel.Overview(ctx, admin)
	require.NoError(t, err)
	require.Len(t, overview.UnallocatedStudents, 1)

	overview, _, err = f.services.Hostel.Allocate(ctx, admin, "R105", newcomer.ID)
	require.NoError(t, err)
	assert.Equal(t, 11, overview.TotalOccupied)
	assert.Empty(t, overview.UnallocatedStudents)

	_, _, err = f.services.Hostel.Allocate(ctx, admin, "R104", newcomer.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)

	_, _, err = f.services.Hostel.Allocate(ctx, admin, "R105", "s404")
	assert.ErrorIs(t, err, apperrors.ErrUnknownStudent)

	overview, _, err = f.services.Hostel.Deallocate(ctx, admin, "R105", newcomer.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, overview.TotalOccupied)

	_, _, err = f.services.Hostel.Deallocate(ctx, admin, "R105", newcomer.ID)
	assert.ErrorIs(t, err, apperrors.ErrOccupantNotFound)

	_, err = f.services.Hostel.Overview(ctx, faculty)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestReportService(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	summary, err := f.services.Reports.Summary(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Institution.Summary.Count)
	assert.Equal(t, "₹0.00", summary.TotalCollected)
	assert.Equal(t, 20, summary.Hostel.TotalCapacity)

	var csv bytes.Buffer
	name, err := f.services.Reports.WriteStudentsCSV(ctx, admin, &csv)
	require.NoError(t, err)
	assert.Equal(t, "tenacity_students_2025-03-14.csv", name)
	assert.Len(t, strings.Split(strings.TrimSpace(csv.String()), "\n"), 11)

	var pdf bytes.Buffer
	name, err = f.services.Reports.WriteInstitutionReport(ctx, admin, &pdf)
	require.NoError(t, err)
	assert.Equal(t, reports.InstitutionFileName(fixedNow), name)
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF")))

	pdf.Reset()
	name, err = f.services.Reports.WritePortfolio(ctx, aman, "s1", &pdf)
	require.NoError(t, err)
	assert.Equal(t, reports.PortfolioFileName("Aman Kumar"), name)

	_, err = f.services.Reports.WritePortfolio(ctx, aman, "s2", &pdf)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.services.Reports.Summary(ctx, faculty)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestReportService_EmptyCohort(t *testing.T) {
	store := repositories.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), repositories.CollectionStudents, []byte(`[]`)))
	f := newFixture(t, store, nil)

	_, err := f.services.Reports.Summary(context.Background(), admin)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCohort)
}

func TestSessionService_Select(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	res, err := f.services.Sessions.Select(ctx, dto.SessionRequest{Role: "student", StudentID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "Student", res.Role)
	assert.Equal(t, "s1", res.StudentID)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.NotEmpty(t, res.AccessToken)

	res, err = f.services.Sessions.Select(ctx, dto.SessionRequest{Role: "Admin", StudentID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, res.StudentID)

	_, err = f.services.Sessions.Select(ctx, dto.SessionRequest{Role: "Student"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.services.Sessions.Select(ctx, dto.SessionRequest{Role: "Student", StudentID: "s404"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = f.services.Sessions.Select(ctx, dto.SessionRequest{Role: "Dean"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestChatService_Ask(t *testing.T) {
	svc := NewChatService()

	res := svc.Ask("When is the exam?")
	assert.Equal(t, "exam", res.Topic)
	assert.NotEmpty(t, res.Reply)
}

func TestAdminService_Reset(t *testing.T) {
	f := newMemoryFixture(t)
	ctx := context.Background()

	_, _, err := f.services.Students.Admit(ctx, admin, dto.AdmissionRequest{Name: "Asha Rao", Attendance: 80, Marks: 70})
	require.NoError(t, err)
	_, _, err = f.services.Fees.RecordPayment(ctx, admin, dto.PaymentRequest{StudentID: "s1", Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)

	res, warnings, err := f.services.Admin.Reset(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.ElementsMatch(t, []string{"students", "transactions", "rooms"}, res.Collections)
	assert.Len(t, f.repos.Students.All(ctx), 10)
	assert.Empty(t, f.repos.Transactions.All(ctx))

	_, _, err = f.services.Admin.Reset(ctx, faculty)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAdminService_ResetPersistFailure(t *testing.T) {
	f := newFixture(t, failingStore{repositories.NewMemoryStore()}, nil)

	_, warnings, err := f.services.Admin.Reset(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, warnings, 3)
}
