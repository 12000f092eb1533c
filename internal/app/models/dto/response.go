package dto

import "time"

// APIResponse is the envelope every JSON endpoint answers with
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Warnings  []string     `json:"warnings,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse wraps data with the current timestamp
func NewAPIResponse(data interface{}, warnings ...string) APIResponse {
	return APIResponse{
		Data:      data,
		Warnings:  warnings,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
