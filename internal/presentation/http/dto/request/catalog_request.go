package request

import "github.com/google/uuid"

// CreateServiceRequest represents a catalog service creation request
type CreateServiceRequest struct {
	GovernmentEntityID uuid.UUID `json:"government_entity_id" binding:"required"`
	Code               string    `json:"code" binding:"required,min=2,max=100"`
	Name               string    `json:"name" binding:"required,min=2,max=200"`
	NameAr             string    `json:"name_ar" binding:"max=200"`
	BaseOfficeFee      string    `json:"base_office_fee" binding:"required"`
	GovFeeType         string    `json:"gov_fee_type" binding:"required"`
	GovFeeValue        string    `json:"gov_fee_value" binding:"required"`
	VATApplicable      bool      `json:"vat_applicable"`
	TurnaroundDays     int       `json:"turnaround_days" binding:"min=0"`
	Active             bool      `json:"active"`
}

// UpdateServiceRequest represents a catalog service update request
type UpdateServiceRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=200"`
	NameAr         string `json:"name_ar" binding:"max=200"`
	BaseOfficeFee  string `json:"base_office_fee" binding:"required"`
	GovFeeType     string `json:"gov_fee_type" binding:"required"`
	GovFeeValue    string `json:"gov_fee_value" binding:"required"`
	VATApplicable  bool   `json:"vat_applicable"`
	TurnaroundDays int    `json:"turnaround_days" binding:"min=0"`
	Active         bool   `json:"active"`
}

// CreateGovernmentEntityRequest represents a government entity creation request
type CreateGovernmentEntityRequest struct {
	Code   string `json:"code" binding:"required,min=2,max=50"`
	Name   string `json:"name" binding:"required,min=2,max=200"`
	NameAr string `json:"name_ar" binding:"max=200"`
}

// ServiceFilterRequest represents catalog filter parameters
type ServiceFilterRequest struct {
	Search             string `form:"search"`
	GovernmentEntityID string `form:"government_entity_id"`
	ActiveOnly         bool   `form:"active_only"`
	Page               int    `form:"page"`
	PerPage            int    `form:"per_page"`
}
