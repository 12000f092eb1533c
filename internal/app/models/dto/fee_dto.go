package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tenacity/erp/internal/app/models"
)

// PaymentRequest records a fee payment. Amount accepts a JSON number or a
// decimal string.
type PaymentRequest struct {
	StudentID string          `json:"studentId" binding:"required,studentid" example:"s1"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"25000"`
	FeeType   string          `json:"feeType,omitempty" binding:"omitempty,oneof=tuition hostel library lab examination misc" example:"tuition"`
	Date      string          `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02" example:"2025-01-15"`
}

// PaymentResponse is the recorded transaction with its archived receipt
type PaymentResponse struct {
	Transaction     models.FeeTransaction `json:"transaction"`
	AmountFormatted string                `json:"amountFormatted" example:"₹25,000.00"`
	ReceiptURL      string                `json:"receiptUrl,omitempty" example:"/archive/receipts/REC123456ABCDEFGHJK.pdf"`
}

// FeeLedgerResponse lists transactions, newest first, with the total collected
type FeeLedgerResponse struct {
	Transactions            []models.FeeTransaction `json:"transactions"`
	TotalCollected          decimal.Decimal         `json:"totalCollected" swaggertype:"string" example:"25000"`
	TotalCollectedFormatted string                  `json:"totalCollectedFormatted" example:"₹25,000.00"`
	Count                   int                     `json:"count" example:"1"`
}
