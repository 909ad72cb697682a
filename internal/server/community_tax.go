package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/fmis/internal/communitytax"
	"github.com/smallbiznis/fmis/pkg/db/pagination"
)

func (s *Server) CommunityTaxInterestRate(c *gin.Context) {
	month := s.clock.Now().Month()

	value, err := parseOptionalInt64(c.Query("month"))
	if err != nil || (value != nil && (*value < 1 || *value > 12)) {
		AbortWithError(c, newValidationError("month", "invalid_month", "month must be 1-12"))
		return
	}
	if value != nil {
		month = time.Month(*value)
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"month":         int(month),
		"interest_rate": communitytax.InterestRateFor(month),
	}})
}

func (s *Server) AssessCommunityTax(c *gin.Context) {
	var req communitytax.AssessInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.communityTaxSvc.Assess(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) IssueCommunityTaxCertificate(c *gin.Context) {
	var req communitytax.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.communityTaxSvc.Issue(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Set("document_type", "community_tax_certificate")
	s.auditCertificate(c, resp)
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetCommunityTaxCertificate(c *gin.Context) {
	resp, err := s.communityTaxSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCommunityTaxCertificates(c *gin.Context) {
	var query struct {
		Year         string `form:"year"`
		TaxpayerType string `form:"taxpayer_type"`
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	year, err := parseOptionalInt64(query.Year)
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	req := communitytax.ListRequest{
		TaxpayerType: communitytax.TaxpayerType(strings.ToLower(strings.TrimSpace(query.TaxpayerType))),
		Page:         query.Pagination,
	}
	if year != nil {
		req.Year = int(*year)
	}

	resp, err := s.communityTaxSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
