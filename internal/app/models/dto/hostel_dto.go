package dto

// AllocateRequest places a student into a room
type AllocateRequest struct {
	StudentID string `json:"studentId" binding:"required,studentid" example:"s5"`
}
