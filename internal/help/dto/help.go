package dto

type HelpRequest struct {
	Email   string `json:"email"`
	Comment string `json:"comment"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
