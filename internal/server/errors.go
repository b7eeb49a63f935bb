package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
	invoicedomain "github.com/waleedsheikh30/erp-inventory/internal/invoice/domain"
	"github.com/waleedsheikh30/erp-inventory/internal/observability/logger"
	paymentdomain "github.com/waleedsheikh30/erp-inventory/internal/payment/domain"
	productdomain "github.com/waleedsheikh30/erp-inventory/internal/product/domain"
	"go.uber.org/zap"
)

// apiError carries the HTTP mapping for an error the handlers return.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e apiError) Error() string { return e.Message }

var (
	ErrNotFound = apiError{Status: http.StatusNotFound, Code: "not_found", Message: "not found"}
)

func invalidRequestError() apiError {
	return apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request body"}
}

func newValidationError(field, code, message string) apiError {
	_ = field
	return apiError{Status: http.StatusBadRequest, Code: code, Message: message}
}

// AbortWithError translates domain errors into the HTTP error contract:
// validation failures and entity references missing on a create path are 400,
// lookups of absent entities are 404, everything else is 500.
func AbortWithError(c *gin.Context, err error) {
	var api apiError
	if errors.As(err, &api) {
		abort(c, api)
		return
	}

	switch {
	case isValidationError(err):
		abort(c, apiError{Status: http.StatusBadRequest, Code: "validation_error", Message: err.Error()})
	case errors.Is(err, invoicedomain.ErrCounterpartyNotFound),
		errors.Is(err, invoicedomain.ErrProductNotFound):
		// Missing references on invoice creation surface as 400, matching
		// the create-path contract.
		abort(c, apiError{Status: http.StatusBadRequest, Code: "not_found", Message: err.Error()})
	case errors.Is(err, counterpartydomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrCounterpartyNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, paymentdomain.ErrPaymentNotFound):
		abort(c, apiError{Status: http.StatusNotFound, Code: "not_found", Message: err.Error()})
	default:
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
		abort(c, apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal server error"})
	}
}

func abort(c *gin.Context, api apiError) {
	c.AbortWithStatusJSON(api.Status, gin.H{"message": api.Message, "code": api.Code})
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, counterpartydomain.ErrInvalidKind),
		errors.Is(err, counterpartydomain.ErrInvalidName),
		errors.Is(err, counterpartydomain.ErrInvalidMobileNo),
		errors.Is(err, productdomain.ErrInvalidCode),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidPrice),
		errors.Is(err, invoicedomain.ErrInvalidType),
		errors.Is(err, invoicedomain.ErrMissingCounterparty),
		errors.Is(err, invoicedomain.ErrAmbiguousCounterparty),
		errors.Is(err, invoicedomain.ErrNoProducts),
		errors.Is(err, invoicedomain.ErrInvalidQuantity),
		errors.Is(err, invoicedomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidAmount):
		return true
	default:
		return false
	}
}
