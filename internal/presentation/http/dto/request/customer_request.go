package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	NameAr  *string `json:"name_ar" binding:"omitempty,max=255"`
	CivilID *string `json:"civil_id" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	NameAr  *string `json:"name_ar" binding:"omitempty,max=255"`
	CivilID *string `json:"civil_id" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// CustomerFilterRequest represents customer filter parameters
type CustomerFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
