// Package fees records fee payments in an append-only ledger.
package fees

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/pkg/apperrors"
)

// DateLayout is the calendar date format of a payment
const DateLayout = "2006-01-02"

const (
	receiptPrefix      = "REC"
	receiptRandomChars = 10
	maxReceiptAttempts = 5
)

var receiptEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewReceiptID builds "REC" + the last six digits of the unix millisecond
// timestamp + ten base32 characters drawn from a random UUID.
func NewReceiptID(now time.Time) string {
	u := uuid.New()
	random := receiptEncoding.EncodeToString(u[:])[:receiptRandomChars]
	return fmt.Sprintf("%s%06d%s", receiptPrefix, now.UnixMilli()%1_000_000, random)
}

// PaymentRequest is the input to RecordPayment. Empty FeeType defaults to
// tuition and an empty Date to the day of now.
type PaymentRequest struct {
	StudentID string
	Amount    decimal.Decimal
	FeeType   models.FeeType
	Date      string
}

// Ledger is the ordered list of recorded payments. Entries are never
// modified once appended.
type Ledger []models.FeeTransaction

// RecordPayment validates req and returns the extended ledger together with
// the new transaction. The receiver is not modified.
func (l Ledger) RecordPayment(req PaymentRequest, students []models.Student, now time.Time) (Ledger, models.FeeTransaction, error) {
	return l.record(req, students, now, NewReceiptID)
}

func (l Ledger) record(req PaymentRequest, students []models.Student, now time.Time, newReceipt func(time.Time) string) (Ledger, models.FeeTransaction, error) {
	if !req.Amount.IsPositive() {
		return nil, models.FeeTransaction{}, fmt.Errorf("record payment of %s: %w", req.Amount.String(), apperrors.ErrInvalidAmount)
	}

	feeType := req.FeeType
	if feeType == "" {
		feeType = models.FeeTuition
	}
	if !feeType.Valid() {
		return nil, models.FeeTransaction{}, apperrors.NewValidationError(fmt.Sprintf("unknown fee type %q", feeType))
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = now.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, models.FeeTransaction{}, apperrors.NewValidationError(fmt.Sprintf("date %q must be YYYY-MM-DD", date))
	}

	var student *models.Student
	for i := range students {
		if students[i].ID == req.StudentID {
			student = &students[i]
			break
		}
	}
	if student == nil {
		return nil, models.FeeTransaction{}, fmt.Errorf("record payment for %q: %w", req.StudentID, apperrors.ErrUnknownStudent)
	}

	receiptID, err := l.uniqueReceipt(now, newReceipt)
	if err != nil {
		return nil, models.FeeTransaction{}, err
	}

	tx := models.FeeTransaction{
		ID:          uuid.NewString(),
		StudentID:   student.ID,
		StudentName: student.Name,
		FeeType:     feeType,
		Amount:      req.Amount.Round(2),
		Date:        date,
		ReceiptID:   receiptID,
	}

	out := make(Ledger, len(l), len(l)+1)
	copy(out, l)
	return append(out, tx), tx, nil
}

func (l Ledger) uniqueReceipt(now time.Time, newReceipt func(time.Time) string) (string, error) {
	for attempt := 0; attempt < maxReceiptAttempts; attempt++ {
		id := newReceipt(now)
		if _, taken := l.FindReceipt(id); !taken {
			return id, nil
		}
	}
	return "", apperrors.ErrReceiptIDExhausted
}

// FindReceipt looks a transaction up by receipt id
func (l Ledger) FindReceipt(receiptID string) (models.FeeTransaction, bool) {
	for _, tx := range l {
		if tx.ReceiptID == receiptID {
			return tx, true
		}
	}
	return models.FeeTransaction{}, false
}

// TotalCollected sums every amount in the ledger
func (l Ledger) TotalCollected() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l {
		total = total.Add(tx.Amount)
	}
	return total
}

// ForStudent returns the payment history of one student, oldest first
func (l Ledger) ForStudent(studentID string) Ledger {
	out := Ledger{}
	for _, tx := range l {
		if tx.StudentID == studentID {
			out = append(out, tx)
		}
	}
	return out
}
