package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/waleedsheikh30/erp-inventory/internal/payment/domain"
	"gorm.io/gorm"
)

const counterPaymentSlip = "payment_slip"

type store struct{}

func Provide() domain.Repository { return &store{} }

func (store) Insert(ctx context.Context, db *gorm.DB, p *domain.Payment) error {
	return db.WithContext(ctx).Create(p).Error
}

func (store) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Record, error) {
	var rec domain.Record
	res := db.WithContext(ctx).Raw(
		`SELECT p.id, p.counterparty_id, p.payment_slip_id, p.paid_amount, p.created_at,
		        COALESCE(c.kind, '') AS counterparty_kind
		 FROM payments p
		 LEFT JOIN counterparties c ON c.id = p.counterparty_id
		 WHERE p.id = ?`,
		id,
	).Scan(&rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (store) List(ctx context.Context, db *gorm.DB) ([]domain.Record, error) {
	var out []domain.Record
	err := db.WithContext(ctx).Raw(
		`SELECT p.id, p.counterparty_id, p.payment_slip_id, p.paid_amount, p.created_at,
		        COALESCE(c.kind, '') AS counterparty_kind
		 FROM payments p
		 LEFT JOIN counterparties c ON c.id = p.counterparty_id
		 ORDER BY p.payment_slip_id`,
	).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NextSlipID is an atomic fetch-and-add on the shared counter row. The unique
// index on payments.payment_slip_id remains the backstop should the counter
// row ever be tampered with.
func (store) NextSlipID(ctx context.Context, db *gorm.DB) (int64, error) {
	var slip int64
	res := db.WithContext(ctx).Raw(
		`UPDATE counters SET value = value + 1 WHERE name = ? RETURNING value`,
		counterPaymentSlip,
	).Scan(&slip)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrSlipCounterMissing
	}
	return slip, nil
}
