package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind tags the two counterparty variants. Customers buy (sales invoices),
// vendors supply (purchase invoices).
type Kind string

const (
	KindCustomer Kind = "customer"
	KindVendor   Kind = "vendor"
)

func (k Kind) Valid() bool {
	return k == KindCustomer || k == KindVendor
}

// Label is the human-facing form used on rendered documents.
func (k Kind) Label() string {
	if k == KindVendor {
		return "Vendor"
	}
	return "Customer"
}

// Counterparty is the other party to an invoice or payment.
type Counterparty struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Kind           Kind         `gorm:"type:text;not null;index" json:"kind"`
	Name           string       `gorm:"type:text;not null" json:"name"`
	MobileNo       string       `gorm:"type:text;not null" json:"mobileNo"`
	Company        string       `gorm:"type:text;not null" json:"company"`
	CashType       string       `gorm:"type:text;not null" json:"cashType"`
	AccountBalance float64      `gorm:"not null;default:0" json:"accountBalance"`
	Khatta         float64      `gorm:"not null;default:0" json:"khatta"`
	TotalPayable   float64      `gorm:"not null;default:0" json:"totalPayable"`
	TotalPaid      float64      `gorm:"not null;default:0" json:"totalPaid"`
	Remaining      float64      `gorm:"not null;default:0" json:"remaining"`
	Status         Status       `gorm:"type:text;not null;default:'PAID'" json:"status"`
	CreatedAt      time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updatedAt"`
}

// TableName sets the database table name.
func (Counterparty) TableName() string { return "counterparties" }

// Balance returns the counterparty's ledger balance fields.
func (c Counterparty) Balance() Balance {
	return Balance{
		TotalPayable: c.TotalPayable,
		TotalPaid:    c.TotalPaid,
		Remaining:    c.Remaining,
		Status:       c.Status,
	}
}

// SetBalance writes ledger balance fields back onto the counterparty.
func (c *Counterparty) SetBalance(b Balance) {
	c.TotalPayable = b.TotalPayable
	c.TotalPaid = b.TotalPaid
	c.Remaining = b.Remaining
	c.Status = b.Status
}

type CreateRequest struct {
	Kind           Kind
	Name           string
	MobileNo       string
	Company        string
	CashType       string
	AccountBalance float64
}
