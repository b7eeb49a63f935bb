package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Invoice, error)
	List(ctx context.Context, typeFilter Type) ([]Invoice, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Invoice, error)
}

var (
	ErrInvalidType            = errors.New("invalid_invoice_type")
	ErrMissingCounterparty    = errors.New("missing_counterparty_id")
	ErrAmbiguousCounterparty  = errors.New("ambiguous_counterparty_id")
	ErrNoProducts             = errors.New("missing_products")
	ErrInvalidQuantity        = errors.New("invalid_quantity")
	ErrInvalidAmount          = errors.New("invalid_amount")
	ErrCounterpartyNotFound   = errors.New("counterparty_not_found")
	ErrProductNotFound        = errors.New("product_not_found")
	ErrInvoiceNotFound        = errors.New("invoice_not_found")
)

// ProductNotFoundError names the missing product so the caller can report
// which line item failed.
type ProductNotFoundError struct {
	ProductID snowflake.ID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %s not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}
