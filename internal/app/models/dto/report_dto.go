package dto

import (
	"github.com/tenacity/erp/internal/domain/hostel"
	"github.com/tenacity/erp/internal/domain/stats"
)

// ReportSummaryResponse is the admin statistics panel
type ReportSummaryResponse struct {
	Institution    stats.Institution `json:"institution"`
	Hostel         hostel.Summary    `json:"hostel"`
	TotalCollected string            `json:"totalCollected" example:"₹25,000.00"`
	Transactions   int               `json:"transactions" example:"1"`
}

// ResetResponse reports which collections were restored
type ResetResponse struct {
	Collections []string `json:"collections"`
}
