package dto

// SessionRequest selects a dashboard role. StudentID is required for the
// Student role and names the record the student views.
type SessionRequest struct {
	Role      string `json:"role" binding:"required,oneof=Student Faculty Admin student faculty admin" example:"Faculty"`
	StudentID string `json:"studentId,omitempty" binding:"omitempty,studentid" example:"s1"`
}

// SessionResponse carries the signed role token
type SessionResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"43200"`
	Role        string `json:"role" example:"Faculty"`
	StudentID   string `json:"studentId,omitempty" example:"s1"`
}
