package dto

// ChatRequest is one message to the assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=1000" example:"When are the exams?"`
}

// ChatResponse is the assistant reply
type ChatResponse struct {
	Reply string `json:"reply" example:"Mid-semester exams are scheduled for March 15-20."`
	Topic string `json:"topic" example:"exam"`
}
