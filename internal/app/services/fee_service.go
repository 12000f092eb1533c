package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/tenacity/erp/internal/app/auth"
	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/reports"
	"github.com/tenacity/erp/internal/app/repositories"
	"github.com/tenacity/erp/internal/domain/fees"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/pkg/filestorage"
	"github.com/tenacity/erp/internal/pkg/helpers"
	"github.com/tenacity/erp/internal/pkg/logger"
)

// ReceiptArchiveDir is the archive sub-directory receipts are stored in
const ReceiptArchiveDir = "receipts"

// FeeService defines the interface for fee operations
type FeeService interface {
	RecordPayment(ctx context.Context, viewer auth.Viewer, req dto.PaymentRequest) (*dto.PaymentResponse, []string, error)
	Ledger(ctx context.Context, viewer auth.Viewer, studentID string) (*dto.FeeLedgerResponse, error)
	WriteReceipt(ctx context.Context, viewer auth.Viewer, receiptID string, w io.Writer) (string, error)
}

// feeServiceImpl implements FeeService
type feeServiceImpl struct {
	studentRepo     *repositories.StudentRepository
	transactionRepo *repositories.TransactionRepository
	authzService    *auth.AuthorizationService
	generator       *reports.Generator
	archive         filestorage.Storage
	locale          string
	now             func() time.Time
}

// NewFeeService creates a new FeeService. archive may be nil, in which case
// receipts are rendered on demand only.
func NewFeeService(
	repos *repositories.Repositories,
	authzService *auth.AuthorizationService,
	generator *reports.Generator,
	archive filestorage.Storage,
	locale string,
	now func() time.Time,
) FeeService {
	return &feeServiceImpl{
		studentRepo:     repos.Students,
		transactionRepo: repos.Transactions,
		authzService:    authzService,
		generator:       generator,
		archive:         archive,
		locale:          locale,
		now:             now,
	}
}

// RecordPayment appends a payment to the ledger and archives its receipt
func (s *feeServiceImpl) RecordPayment(ctx context.Context, viewer auth.Viewer, req dto.PaymentRequest) (*dto.PaymentResponse, []string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionManageFees, ""); err != nil {
		return nil, nil, err
	}

	students := s.studentRepo.All(ctx)
	now := s.now()

	var tx models.FeeTransaction
	m, err := s.transactionRepo.Mutate(ctx, func(items []models.FeeTransaction) ([]models.FeeTransaction, error) {
		next, recorded, err := fees.Ledger(items).RecordPayment(fees.PaymentRequest{
			StudentID: req.StudentID,
			Amount:    req.Amount,
			FeeType:   models.FeeType(req.FeeType),
			Date:      req.Date,
		}, students, now)
		if err != nil {
			return nil, err
		}
		tx = recorded
		return next, nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info().
		Str("receiptID", tx.ReceiptID).
		Str("studentID", tx.StudentID).
		Str("amount", tx.Amount.StringFixed(2)).
		Msg("Fee payment recorded")

	warnings := m.Warnings()
	url, err := s.archiveReceipt(tx)
	if err != nil {
		logger.Error().Err(err).Str("receiptID", tx.ReceiptID).Msg("Failed to archive receipt")
		warnings = append(warnings, "payment recorded but the receipt could not be archived")
	}

	return &dto.PaymentResponse{
		Transaction:     tx,
		AmountFormatted: helpers.FormatINR(tx.Amount, s.locale),
		ReceiptURL:      url,
	}, warnings, nil
}

func (s *feeServiceImpl) archiveReceipt(tx models.FeeTransaction) (string, error) {
	if s.archive == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.generator.Receipt(&buf, tx); err != nil {
		return "", err
	}
	return s.archive.SaveBytes(ReceiptArchiveDir, tx.ReceiptID+".pdf", buf.Bytes())
}

// Ledger lists payments newest first, optionally for one student only
func (s *feeServiceImpl) Ledger(ctx context.Context, viewer auth.Viewer, studentID string) (*dto.FeeLedgerResponse, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionManageFees, ""); err != nil {
		return nil, err
	}

	ledger := fees.Ledger(s.transactionRepo.All(ctx))
	if studentID != "" {
		ledger = ledger.ForStudent(studentID)
	}
	total := ledger.TotalCollected()

	transactions := slices.Clone([]models.FeeTransaction(ledger))
	slices.Reverse(transactions)

	return &dto.FeeLedgerResponse{
		Transactions:            transactions,
		TotalCollected:          total,
		TotalCollectedFormatted: helpers.FormatINR(total, s.locale),
		Count:                   len(transactions),
	}, nil
}

// WriteReceipt renders the receipt PDF of receiptID to w and returns its file name
func (s *feeServiceImpl) WriteReceipt(ctx context.Context, viewer auth.Viewer, receiptID string, w io.Writer) (string, error) {
	if err := s.authzService.Authorize(viewer, auth.ActionManageFees, ""); err != nil {
		return "", err
	}

	tx, ok := fees.Ledger(s.transactionRepo.All(ctx)).FindReceipt(receiptID)
	if !ok {
		return "", fmt.Errorf("receipt %q: %w", receiptID, apperrors.ErrTransactionNotFound)
	}
	if err := s.generator.Receipt(w, tx); err != nil {
		return "", err
	}
	return reports.ReceiptFileName(tx.ReceiptID), nil
}
