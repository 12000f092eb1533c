package models

import (
	"github.com/shopspring/decimal"
)

// FeeType categorises a payment
type FeeType string

const (
	FeeTuition     FeeType = "tuition"
	FeeHostel      FeeType = "hostel"
	FeeLibrary     FeeType = "library"
	FeeLab         FeeType = "lab"
	FeeExamination FeeType = "examination"
	FeeMisc        FeeType = "misc"
)

var feeTypeLabels = map[FeeType]string{
	FeeTuition:     "Tuition Fee",
	FeeHostel:      "Hostel Fee",
	FeeLibrary:     "Library Fee",
	FeeLab:         "Laboratory Fee",
	FeeExamination: "Examination Fee",
	FeeMisc:        "Miscellaneous",
}

// Valid reports whether t is a known fee type
func (t FeeType) Valid() bool {
	_, ok := feeTypeLabels[t]
	return ok
}

// Label is the human-readable name printed on receipts
func (t FeeType) Label() string {
	if l, ok := feeTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// FeeTransaction is an immutable ledger entry. StudentName is a snapshot
// taken when the payment was recorded and is not resynced on rename.
type FeeTransaction struct {
	ID          string          `json:"id"`
	StudentID   string          `json:"studentId"`
	StudentName string          `json:"studentName"`
	FeeType     FeeType         `json:"feeType,omitempty"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"25000.00"`
	Date        string          `json:"date" example:"2025-01-15"`
	ReceiptID   string          `json:"receiptId" example:"REC123456ABCDEFGHJK"`
}
