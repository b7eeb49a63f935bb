package events

// Ledger event types written to the outbox.
const (
	EventInvoiceCreated  = "invoice.created"
	EventPaymentRecorded = "payment.recorded"
)

// InvoiceCreatedPayload captures the minimal data a downstream reader needs
// to follow up on an invoice.
type InvoiceCreatedPayload struct {
	InvoiceID      string  `json:"invoice_id"`
	Type           string  `json:"type"`
	CounterpartyID string  `json:"counterparty_id"`
	TotalAmount    float64 `json:"total_amount"`
	PaidAmount     float64 `json:"paid_amount"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p InvoiceCreatedPayload) ToMap() map[string]any {
	return map[string]any{
		"invoice_id":      p.InvoiceID,
		"type":            p.Type,
		"counterparty_id": p.CounterpartyID,
		"total_amount":    p.TotalAmount,
		"paid_amount":     p.PaidAmount,
	}
}

// PaymentRecordedPayload captures the minimal data needed to follow up on a
// recorded payment.
type PaymentRecordedPayload struct {
	PaymentID      string  `json:"payment_id"`
	CounterpartyID string  `json:"counterparty_id"`
	PaymentSlipID  int64   `json:"payment_slip_id"`
	PaidAmount     float64 `json:"paid_amount"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p PaymentRecordedPayload) ToMap() map[string]any {
	return map[string]any{
		"payment_id":      p.PaymentID,
		"counterparty_id": p.CounterpartyID,
		"payment_slip_id": p.PaymentSlipID,
		"paid_amount":     p.PaidAmount,
	}
}
