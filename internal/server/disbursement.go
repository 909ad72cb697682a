package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	disbursementdomain "github.com/smallbiznis/fmis/internal/disbursement/domain"
	"github.com/smallbiznis/fmis/internal/docnumber"
)

func (s *Server) CreateDisbursementVoucher(c *gin.Context) {
	var req disbursementdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	c.Set("document_type", docnumber.TypeDisbursementVoucher)
	resp, err := s.disbursementSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditVoucher(c, "create", resp)
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListDisbursementVouchers(c *gin.Context) {
	var req disbursementdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.disbursementSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDisbursementVoucher(c *gin.Context) {
	resp, err := s.disbursementSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CertifyDisbursementVoucher(c *gin.Context) {
	resp, err := s.disbursementSvc.Certify(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditVoucher(c, "certify", resp)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ApproveDisbursementVoucher(c *gin.Context) {
	resp, err := s.disbursementSvc.Approve(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditVoucher(c, "approve", resp)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PayDisbursementVoucher(c *gin.Context) {
	var req disbursementdomain.MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resp, err := s.disbursementSvc.MarkPaid(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditVoucher(c, "pay", resp)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelDisbursementVoucher(c *gin.Context) {
	var req cancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resp, err := s.disbursementSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Reason)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditVoucher(c, "cancel", resp)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenderDisbursementVoucher(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	c.Set("document_type", docnumber.TypeDisbursementVoucher)

	body, err := s.disbursementSvc.RenderPDF(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	writePDF(c, "disbursement-voucher-"+id+".pdf", body)
}
