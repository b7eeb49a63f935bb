package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
)

// FirstSlipID is the slip number handed to the very first payment; the
// counter row in storage is seeded one below it.
const FirstSlipID = 101

// Payment is an append-only record of money received from a customer or paid
// to a vendor. PaymentSlipID is the human-facing sequential number shared by
// both kinds.
type Payment struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	CounterpartyID snowflake.ID `gorm:"not null;index"`
	PaymentSlipID  int64        `gorm:"not null;uniqueIndex:ux_payments_slip"`
	PaidAmount     float64      `gorm:"not null"`
	CreatedAt      time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }

// Record is a payment joined with its counterparty's kind, for API output.
// Kind is empty when the counterparty has since been deleted.
type Record struct {
	ID               snowflake.ID
	CounterpartyID   snowflake.ID
	CounterpartyKind counterpartydomain.Kind
	PaymentSlipID    int64
	PaidAmount       float64
	CreatedAt        time.Time
}

// Result is what a successful payment returns: the persisted record and the
// counterparty with its recomputed balance.
type Result struct {
	Counterparty *counterpartydomain.Counterparty
	Payment      Payment
}
