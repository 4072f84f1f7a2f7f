package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/application/service"
	"github.com/sanadops/sanad-api/internal/domain/enum"
	"github.com/sanadops/sanad-api/internal/domain/repository"
	"github.com/sanadops/sanad-api/internal/presentation/http/dto/request"
	"github.com/sanadops/sanad-api/internal/presentation/http/dto/response"
	"github.com/sanadops/sanad-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CatalogHandler handles service catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func serviceInputFromRequest(govEntityID uuid.UUID, code string, req *request.UpdateServiceRequest) (*service.ServiceInput, error) {
	baseFee, err := decimal.NewFromString(req.BaseOfficeFee)
	if err != nil {
		return nil, err
	}
	govFee, err := decimal.NewFromString(req.GovFeeValue)
	if err != nil {
		return nil, err
	}

	return &service.ServiceInput{
		GovernmentEntityID: govEntityID,
		Code:               code,
		Name:               req.Name,
		NameAr:             req.NameAr,
		BaseOfficeFee:      baseFee,
		GovFeeType:         enum.GovFeeType(req.GovFeeType),
		GovFeeValue:        govFee,
		VATApplicable:      req.VATApplicable,
		TurnaroundDays:     req.TurnaroundDays,
		Active:             req.Active,
	}, nil
}

// CreateService handles adding a service to the catalog
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req request.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := serviceInputFromRequest(req.GovernmentEntityID, req.Code, &request.UpdateServiceRequest{
		Name:           req.Name,
		NameAr:         req.NameAr,
		BaseOfficeFee:  req.BaseOfficeFee,
		GovFeeType:     req.GovFeeType,
		GovFeeValue:    req.GovFeeValue,
		VATApplicable:  req.VATApplicable,
		TurnaroundDays: req.TurnaroundDays,
		Active:         req.Active,
	})
	if err != nil {
		response.BadRequest(c, "Invalid fee amount")
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", svc)
}

// GetService handles retrieving a catalog service
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", svc)
}

// ListServices handles listing catalog services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	var req request.ServiceFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.ServiceFilterParams{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		Search:     req.Search,
		ActiveOnly: req.ActiveOnly,
	}
	params.Pagination.Validate()

	if req.GovernmentEntityID != "" {
		govID, err := uuid.Parse(req.GovernmentEntityID)
		if err != nil {
			response.BadRequest(c, "Invalid government entity ID filter")
			return
		}
		params.GovernmentEntityID = &govID
	}

	result, err := h.catalogService.ListServices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Services retrieved successfully", result)
}

// UpdateService handles updating a catalog service
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req request.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := serviceInputFromRequest(uuid.Nil, "", &req)
	if err != nil {
		response.BadRequest(c, "Invalid fee amount")
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", svc)
}

// CreateGovernmentEntity handles adding a government entity
func (h *CatalogHandler) CreateGovernmentEntity(c *gin.Context) {
	var req request.CreateGovernmentEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ge, err := h.catalogService.CreateGovernmentEntity(c.Request.Context(), req.Code, req.Name, req.NameAr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Government entity created successfully", ge)
}

// ListGovernmentEntities handles listing government entities
func (h *CatalogHandler) ListGovernmentEntities(c *gin.Context) {
	entities, err := h.catalogService.ListGovernmentEntities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Government entities retrieved successfully", entities)
}
