package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
)

type createTaxCodeRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	RatePercent any     `json:"rate_percent"`
	Description *string `json:"description"`
	IsEnabled   *bool   `json:"is_enabled"`
}

type updateTaxCodeRequest struct {
	Name        *string `json:"name,omitempty"`
	Kind        *string `json:"kind,omitempty"`
	RatePercent any     `json:"rate_percent,omitempty"`
	Description *string `json:"description,omitempty"`
	IsEnabled   *bool   `json:"is_enabled,omitempty"`
}

func (s *Server) CreateTaxCode(c *gin.Context) {
	var req createTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxSvc.Create(c.Request.Context(), taxdomain.CreateRequest{
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		Kind:        taxdomain.Kind(strings.ToLower(strings.TrimSpace(req.Kind))),
		RatePercent: req.RatePercent,
		Description: trimOptionalString(req.Description),
		IsEnabled:   req.IsEnabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "tax_code.create", "tax_code", resp.ID, map[string]any{
		"code":         resp.Code,
		"kind":         string(resp.Kind),
		"rate_percent": resp.RatePercent.String(),
		"is_enabled":   resp.IsEnabled,
	})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListTaxCodes(c *gin.Context) {
	var query struct {
		Name      string `form:"name"`
		Code      string `form:"code"`
		Kind      string `form:"kind"`
		IsEnabled string `form:"is_enabled"`
		SortBy    string `form:"sort_by"`
		OrderBy   string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	isEnabled, err := parseOptionalBool(query.IsEnabled)
	if err != nil {
		AbortWithError(c, newValidationError("is_enabled", "invalid_is_enabled", "invalid is_enabled"))
		return
	}

	resp, err := s.taxSvc.List(c.Request.Context(), taxdomain.ListRequest{
		Name:      strings.TrimSpace(query.Name),
		Code:      strings.TrimSpace(query.Code),
		Kind:      taxdomain.Kind(strings.ToLower(strings.TrimSpace(query.Kind))),
		IsEnabled: isEnabled,
		SortBy:    strings.TrimSpace(query.SortBy),
		OrderBy:   strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetTaxCode resolves an enabled code, including presets from rates.yml that
// were never stored.
func (s *Server) GetTaxCode(c *gin.Context) {
	code, err := s.taxes.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := taxdomain.Response{
		Code:        code.Code,
		Name:        code.Name,
		Kind:        code.Kind,
		RatePercent: code.RatePercent,
		Description: code.Description,
		IsEnabled:   code.IsEnabled,
		CreatedAt:   code.CreatedAt,
		UpdatedAt:   code.UpdatedAt,
	}
	if code.ID != 0 {
		resp.ID = code.ID.String()
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTaxCode(c *gin.Context) {
	var req updateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var kind *taxdomain.Kind
	if req.Kind != nil {
		trimmed := taxdomain.Kind(strings.ToLower(strings.TrimSpace(*req.Kind)))
		kind = &trimmed
	}

	resp, err := s.taxSvc.Update(c.Request.Context(), taxdomain.UpdateRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Name:        trimOptionalString(req.Name),
		Kind:        kind,
		RatePercent: req.RatePercent,
		Description: trimOptionalString(req.Description),
		IsEnabled:   req.IsEnabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "tax_code.update", "tax_code", resp.ID, map[string]any{
		"code":         resp.Code,
		"kind":         string(resp.Kind),
		"rate_percent": resp.RatePercent.String(),
		"is_enabled":   resp.IsEnabled,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DisableTaxCode(c *gin.Context) {
	resp, err := s.taxSvc.Disable(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "tax_code.disable", "tax_code", resp.ID, map[string]any{
		"code":         resp.Code,
		"kind":         string(resp.Kind),
		"rate_percent": resp.RatePercent.String(),
		"is_enabled":   resp.IsEnabled,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
