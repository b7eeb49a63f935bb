package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
)

type Service interface {
	Create(ctx context.Context, kind counterpartydomain.Kind, counterpartyID snowflake.ID, amount float64) (*Result, error)
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Record, error)
}

var (
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrCounterpartyNotFound = errors.New("counterparty_not_found")
	ErrPaymentNotFound      = errors.New("payment_not_found")
	ErrSlipCounterMissing   = errors.New("slip_counter_missing")
)
