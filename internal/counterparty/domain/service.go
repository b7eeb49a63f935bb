package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Service covers the plain counterparty lookups and mutations. Balance
// arithmetic lives in the invoice and payment services, which operate on
// counterparties through their repositories inside their own transactions.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Counterparty, error)
	List(ctx context.Context, kind Kind) ([]Counterparty, error)
	GetByID(ctx context.Context, kind Kind, id snowflake.ID) (*Counterparty, error)
	UpdateName(ctx context.Context, kind Kind, id snowflake.ID, name string) (*Counterparty, error)
	Delete(ctx context.Context, kind Kind, id snowflake.ID) error
}

var (
	ErrInvalidKind     = errors.New("invalid_counterparty_kind")
	ErrInvalidName     = errors.New("invalid_counterparty_name")
	ErrInvalidMobileNo = errors.New("invalid_mobile_no")
	ErrNotFound        = errors.New("counterparty_not_found")
)
