package transport

// CreateLeadRequest is the payload for registering a lead.
type CreateLeadRequest struct {
	CompanyName string `json:"companyName" binding:"required,min=2,max=200"`
	ContactName string `json:"contactName" binding:"omitempty,max=200"`
	Phone       string `json:"phone" binding:"omitempty,max=32"`
	Email       string `json:"email" binding:"omitempty,email,max=254"`
}

// ChangeStageRequest is the payload for the general stage selector.
type ChangeStageRequest struct {
	Stage string `json:"stage" binding:"required,max=100"`
	Note  string `json:"note" binding:"omitempty,max=2000"`
}

// StageResponse is the API representation of a pipeline stage.
type StageResponse struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// LeadResponse is the API representation of a lead.
type LeadResponse struct {
	ID          string  `json:"id"`
	CompanyName string  `json:"companyName"`
	ContactName string  `json:"contactName"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Stage       string  `json:"stage"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// LeadListResponse wraps a list of leads.
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
	Total int            `json:"total"`
}

// StageHistoryResponse is one recorded stage transition.
type StageHistoryResponse struct {
	FromStage string `json:"fromStage"`
	ToStage   string `json:"toStage"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// QuickActionResponse is one recommended next transition.
type QuickActionResponse struct {
	TargetStage string `json:"targetStage"`
	Label       string `json:"label"`
}

// QuickActionsResponse wraps the recommended transitions for a lead.
type QuickActionsResponse struct {
	Actions []QuickActionResponse `json:"actions"`
}
