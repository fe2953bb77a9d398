package transport

// CreateTenantRequest is the payload for registering a new company.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
}

// TenantResponse is the API representation of a tenant.
type TenantResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// TenantListResponse wraps a list of tenants.
type TenantListResponse struct {
	Tenants []TenantResponse `json:"tenants"`
	Total   int              `json:"total"`
}
