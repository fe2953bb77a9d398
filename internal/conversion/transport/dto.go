package transport

// ConvertRequest is the operator's payload for converting a conversation
// into a contact and a job.
type ConvertRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Phone       string `json:"phone" binding:"required,max=32"`
	Email       string `json:"email" binding:"omitempty,email,max=254"`
	Notes       string `json:"notes" binding:"omitempty,max=5000"`
	ServiceType string `json:"serviceType" binding:"omitempty,max=100"`
	Priority    string `json:"priority" binding:"omitempty,oneof=normal emergency"`
}

// ConvertResponse reports the contact and job the conversion produced.
type ConvertResponse struct {
	ContactID      string `json:"contactId"`
	ContactCreated bool   `json:"contactCreated"`
	JobID          string `json:"jobId"`
}
