package transport

// CreateJobRequest is the payload for creating a job directly.
type CreateJobRequest struct {
	ContactID   string `json:"contactId" binding:"required,uuid"`
	ServiceType string `json:"serviceType" binding:"omitempty,max=100"`
	Priority    string `json:"priority" binding:"omitempty,oneof=normal emergency"`
	Notes       string `json:"notes" binding:"omitempty,max=5000"`
}

// UpdateJobStatusRequest is the payload for advancing a job's status.
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new scheduled progress done"`
}

// ListJobsRequest holds query filters for listing jobs.
type ListJobsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=new scheduled progress done"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// JobResponse is the API representation of a job.
type JobResponse struct {
	ID           string  `json:"id"`
	ContactID    string  `json:"contactId"`
	ServiceType  string  `json:"serviceType"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	Notes        string  `json:"notes"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
	ContactName  *string `json:"contactName,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

// JobListResponse wraps a list of jobs.
type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int           `json:"total"`
}
