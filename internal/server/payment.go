package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
	paymentdomain "github.com/waleedsheikh30/erp-inventory/internal/payment/domain"
)

// paymentView mirrors the legacy wire shape: the counterparty id is emitted
// under customerId or vendorId depending on its kind.
type paymentView struct {
	ID         string    `json:"id"`
	SlipNo     int64     `json:"slipNo"`
	Amount     float64   `json:"amount"`
	CustomerID string    `json:"customerId,omitempty"`
	VendorID   string    `json:"vendorId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newPaymentView(p paymentdomain.Payment, kind counterpartydomain.Kind) paymentView {
	view := paymentView{
		ID:        p.ID.String(),
		SlipNo:    p.PaymentSlipID,
		Amount:    p.PaidAmount,
		CreatedAt: p.CreatedAt,
	}
	if kind == counterpartydomain.KindVendor {
		view.VendorID = p.CounterpartyID.String()
	} else {
		view.CustomerID = p.CounterpartyID.String()
	}
	return view
}

func newPaymentRecordView(r paymentdomain.Record) paymentView {
	view := paymentView{
		ID:        r.ID.String(),
		SlipNo:    r.PaymentSlipID,
		Amount:    r.PaidAmount,
		CreatedAt: r.CreatedAt,
	}
	switch r.CounterpartyKind {
	case counterpartydomain.KindVendor:
		view.VendorID = r.CounterpartyID.String()
	case counterpartydomain.KindCustomer:
		view.CustomerID = r.CounterpartyID.String()
	}
	return view
}

// @Summary      List Payments
// @Description  List recorded payment slips
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  []paymentView
// @Router       /payments [get]
func (s *Server) ListPayments(c *gin.Context) {
	records, err := s.paymentSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]paymentView, 0, len(records))
	for _, r := range records {
		views = append(views, newPaymentRecordView(r))
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	record, err := s.paymentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newPaymentRecordView(*record)})
}
