package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/fmis/internal/audit/domain"
	"github.com/smallbiznis/fmis/internal/communitytax"
	disbursementdomain "github.com/smallbiznis/fmis/internal/disbursement/domain"
	"github.com/smallbiznis/fmis/internal/lineitem"
	obligationdomain "github.com/smallbiznis/fmis/internal/obligation/domain"
	"github.com/smallbiznis/fmis/internal/payee"
	refdomain "github.com/smallbiznis/fmis/internal/reference/domain"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"github.com/smallbiznis/fmis/pkg/db/pagination"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var itemErr *lineitem.ItemError
	if errors.As(err, &itemErr) {
		code := validationErrorCode(itemErr.Err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   fmt.Sprintf("items[%d].%s", itemErr.Index, itemErr.Field),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog returns the response type and code logged for a
// failed request.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	} else if status == http.StatusConflict {
		code = payload.Message
	}
	return payload.Type, code
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, pagination.ErrInvalidPageToken),
		errors.Is(err, lineitem.ErrInvalidItems),
		errors.Is(err, auditdomain.ErrInvalidTimeRange),
		errors.Is(err, auditdomain.ErrInvalidAction):
		return true
	case isTaxValidationError(err),
		isReferenceValidationError(err),
		isPayeeValidationError(err),
		isDocumentValidationError(err),
		isCommunityTaxValidationError(err):
		return true
	default:
		return false
	}
}

func isTaxValidationError(err error) bool {
	switch {
	case errors.Is(err, taxdomain.ErrInvalidName),
		errors.Is(err, taxdomain.ErrInvalidID),
		errors.Is(err, taxdomain.ErrInvalidTaxCode),
		errors.Is(err, taxdomain.ErrInvalidTaxKind),
		errors.Is(err, taxdomain.ErrInvalidTaxRate),
		errors.Is(err, taxdomain.ErrTaxCodeKind):
		return true
	default:
		return false
	}
}

func isReferenceValidationError(err error) bool {
	switch {
	case errors.Is(err, refdomain.ErrInvalidID),
		errors.Is(err, refdomain.ErrInvalidName),
		errors.Is(err, refdomain.ErrInvalidCode),
		errors.Is(err, refdomain.ErrInvalidYear),
		errors.Is(err, refdomain.ErrInvalidDepartment),
		errors.Is(err, refdomain.ErrNoOpenFiscalYear):
		return true
	default:
		return false
	}
}

func isPayeeValidationError(err error) bool {
	switch {
	case errors.Is(err, payee.ErrInvalidKind),
		errors.Is(err, payee.ErrInvalidName),
		errors.Is(err, payee.ErrNotFound):
		return true
	default:
		return false
	}
}

func isDocumentValidationError(err error) bool {
	switch {
	case errors.Is(err, obligationdomain.ErrInvalidID),
		errors.Is(err, obligationdomain.ErrInvalidPurpose),
		errors.Is(err, obligationdomain.ErrInvalidDepartment),
		errors.Is(err, obligationdomain.ErrInvalidAttachment),
		errors.Is(err, disbursementdomain.ErrInvalidID),
		errors.Is(err, disbursementdomain.ErrInvalidParticulars),
		errors.Is(err, disbursementdomain.ErrInvalidModeOfPayment),
		errors.Is(err, disbursementdomain.ErrCheckNumberRequired):
		return true
	default:
		return false
	}
}

func isCommunityTaxValidationError(err error) bool {
	switch {
	case errors.Is(err, communitytax.ErrInvalidTaxpayerType),
		errors.Is(err, communitytax.ErrInvalidTaxpayerName),
		errors.Is(err, communitytax.ErrInvalidAmount),
		errors.Is(err, communitytax.ErrInvalidInterestRate),
		errors.Is(err, communitytax.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, taxdomain.ErrTaxCodeExists),
		errors.Is(err, refdomain.ErrDuplicate),
		errors.Is(err, obligationdomain.ErrInvalidStatusTransition),
		errors.Is(err, disbursementdomain.ErrInvalidStatusTransition),
		errors.Is(err, disbursementdomain.ErrObligationNotApproved),
		errors.Is(err, disbursementdomain.ErrAmountExceedsObligation):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, taxdomain.ErrNotFound),
		errors.Is(err, refdomain.ErrNotFound),
		errors.Is(err, obligationdomain.ErrNotFound),
		errors.Is(err, disbursementdomain.ErrNotFound),
		errors.Is(err, communitytax.ErrNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, pagination.ErrInvalidPageToken):
		return "invalid_page_token"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if strings.HasSuffix(code, "_required") {
		return strings.TrimSuffix(code, "_required")
	}
	if code == "payee_not_found" || code == "no_open_fiscal_year" {
		return strings.TrimSuffix(strings.TrimPrefix(code, "no_open_"), "_not_found")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "payee_not_found":
		return "payee not found"
	case "no_open_fiscal_year":
		return "no open fiscal year"
	default:
		if strings.HasSuffix(code, "_required") {
			return "value is required"
		}
		return "invalid value"
	}
}
