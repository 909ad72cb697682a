package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/fmis/internal/audit/domain"
	"github.com/smallbiznis/fmis/internal/communitytax"
	disbursementdomain "github.com/smallbiznis/fmis/internal/disbursement/domain"
	obligationdomain "github.com/smallbiznis/fmis/internal/obligation/domain"
)

func (s *Server) ListAuditLogs(c *gin.Context) {
	var req auditdomain.ListAuditLogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.auditSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) recordAudit(c *gin.Context, action, targetType, targetID string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.AuditLog(c.Request.Context(), auditdomain.Entry{
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   metadata,
	})
}

func (s *Server) auditObligation(c *gin.Context, action string, req *obligationdomain.ObligationRequest) {
	if req == nil {
		return
	}
	s.recordAudit(c, "obligation_request."+action, "obligation_request", req.ID.String(), map[string]any{
		"number": req.Number,
		"status": string(req.Status),
		"net":    req.Totals.Net.StringFixed(2),
		"payee":  req.Payee.Data().Name,
		"tin":    req.Payee.Data().TIN,
	})
}

func (s *Server) auditVoucher(c *gin.Context, action string, v *disbursementdomain.Voucher) {
	if v == nil {
		return
	}
	metadata := map[string]any{
		"number":          v.Number,
		"status":          string(v.Status),
		"mode_of_payment": string(v.ModeOfPayment),
		"net":             v.Totals.Net.StringFixed(2),
		"payee":           v.Payee.Data().Name,
		"tin":             v.Payee.Data().TIN,
	}
	if v.ObligationRequestID != nil {
		metadata["obligation_request_id"] = v.ObligationRequestID.String()
	}
	if v.CheckNumber != "" {
		metadata["check_number"] = v.CheckNumber
	}
	if v.CancelReason != "" {
		metadata["reason"] = v.CancelReason
	}
	s.recordAudit(c, "disbursement_voucher."+action, "disbursement_voucher", v.ID.String(), metadata)
}

func (s *Server) auditCertificate(c *gin.Context, cert *communitytax.Certificate) {
	if cert == nil {
		return
	}
	s.recordAudit(c, "community_tax_certificate.issue", "community_tax_certificate", cert.ID.String(), map[string]any{
		"number":        cert.Number,
		"taxpayer_type": string(cert.TaxpayerType),
		"tin":           cert.TIN,
		"amount_due":    cert.AmountDue.StringFixed(2),
	})
}
