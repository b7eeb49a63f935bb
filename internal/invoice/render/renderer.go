package render

import "time"

// RenderInput is the deterministic input used for invoice rendering. The
// views are plain snapshots so rendering never reaches back into storage.
type RenderInput struct {
	Invoice      InvoiceView
	Counterparty CounterpartyView
	Items        []LineItemView
}

type InvoiceView struct {
	ID          string
	Type        string
	CreatedAt   time.Time
	TotalAmount float64
	PaidAmount  float64
}

type CounterpartyView struct {
	Label    string
	Name     string
	MobileNo string
	Company  string
	CashType string
}

type LineItemView struct {
	Name        string
	Description string
	Quantity    int64
	Price       float64
}

type Renderer interface {
	RenderPDF(input RenderInput) ([]byte, error)
}
