package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
)

// Type distinguishes sales invoices (issued to customers) from purchase
// invoices (received from vendors).
type Type string

const (
	TypeSales    Type = "sales"
	TypePurchase Type = "purchase"
)

func (t Type) Valid() bool {
	return t == TypeSales || t == TypePurchase
}

// CounterpartyKind maps the invoice type to the kind of counterparty it
// settles against.
func (t Type) CounterpartyKind() counterpartydomain.Kind {
	if t == TypePurchase {
		return counterpartydomain.KindVendor
	}
	return counterpartydomain.KindCustomer
}

// Invoice is an append-only ledger document. It is never updated or deleted;
// the counterparty name and every item price are snapshots taken at creation.
type Invoice struct {
	ID               snowflake.ID  `gorm:"primaryKey"`
	Type             Type          `gorm:"type:text;not null;index"`
	CounterpartyID   snowflake.ID  `gorm:"not null;index"`
	CounterpartyName string        `gorm:"type:text;not null"`
	Items            []InvoiceItem `gorm:"foreignKey:InvoiceID"`
	TotalAmount      float64       `gorm:"not null"`
	PaidAmount       float64       `gorm:"not null"`
	Paid             bool          `gorm:"not null;default:false"`
	CreatedAt        time.Time     `gorm:"not null"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one invoice line. Name, description and unit price are
// copied from the product at creation time so later product edits never
// alter a written invoice.
type InvoiceItem struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	InvoiceID   snowflake.ID `gorm:"not null;index"`
	ProductID   snowflake.ID `gorm:"not null"`
	ProductName string       `gorm:"type:text;not null"`
	Description string       `gorm:"type:text;not null"`
	Quantity    int64        `gorm:"not null"`
	Price       float64      `gorm:"not null"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

type CreateLine struct {
	ProductID snowflake.ID
	Quantity  int64
}

type CreateRequest struct {
	Type        Type
	CustomerID  snowflake.ID
	VendorID    snowflake.ID
	Lines       []CreateLine
	TotalAmount float64
	PaidAmount  float64
}

// CounterpartyID returns the id matching the invoice type, or 0 when the
// request does not carry exactly the right one.
func (r CreateRequest) CounterpartyID() snowflake.ID {
	switch {
	case r.CustomerID != 0 && r.VendorID != 0:
		return 0
	case r.Type == TypeSales:
		return r.CustomerID
	case r.Type == TypePurchase:
		return r.VendorID
	default:
		return 0
	}
}
