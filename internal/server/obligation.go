package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/fmis/internal/docnumber"
	"github.com/smallbiznis/fmis/internal/lineitem"
	obligationdomain "github.com/smallbiznis/fmis/internal/obligation/domain"
)

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) CreateObligationRequest(c *gin.Context) {
	var req obligationdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	c.Set("document_type", docnumber.TypeObligationRequest)
	resp, err := s.obligationSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditObligation(c, "create", resp)
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) PreviewObligationRequest(c *gin.Context) {
	var req struct {
		Items []lineitem.ItemInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.obligationSvc.Preview(c.Request.Context(), req.Items)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListObligationRequests(c *gin.Context) {
	var req obligationdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.obligationSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetObligationRequest(c *gin.Context) {
	resp, err := s.obligationSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateObligationRequest(c *gin.Context) {
	var req obligationdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.obligationSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditObligation(c, "update", resp)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SubmitObligationRequest(c *gin.Context) {
	resp, err := s.obligationSvc.Submit(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditObligation(c, "submit", resp)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ApproveObligationRequest(c *gin.Context) {
	resp, err := s.obligationSvc.Approve(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditObligation(c, "approve", resp)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelObligationRequest(c *gin.Context) {
	var req cancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resp, err := s.obligationSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Reason)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditObligation(c, "cancel", resp)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddObligationAttachment(c *gin.Context) {
	var req obligationdomain.AttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.obligationSvc.AddAttachment(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditObligation(c, "attach", resp)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenderObligationRequest(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	c.Set("document_type", docnumber.TypeObligationRequest)

	body, err := s.obligationSvc.RenderPDF(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	writePDF(c, "obligation-request-"+id+".pdf", body)
}

func writePDF(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
