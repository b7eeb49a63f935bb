package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
)

type createCounterpartyRequest struct {
	Name           string     `json:"name"`
	MobileNo       flexString `json:"mobileNo"`
	Company        string     `json:"company"`
	CashType       string     `json:"cashType"`
	AccountBalance flexNumber `json:"accountBalance"`
}

type updateNameRequest struct {
	Name string `json:"name"`
}

type payRequest struct {
	Amount flexNumber `json:"amount"`
}

// @Summary      Create Customer
// @Description  Register a new customer ledger account
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body createCounterpartyRequest true "Create Customer Request"
// @Success      201  {object}  counterpartydomain.Counterparty
// @Router       /customers [post]
func (s *Server) CreateCustomer(c *gin.Context) {
	s.createCounterparty(c, counterpartydomain.KindCustomer)
}

// @Summary      Create Vendor
// @Description  Register a new vendor ledger account
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request body createCounterpartyRequest true "Create Vendor Request"
// @Success      201  {object}  counterpartydomain.Counterparty
// @Router       /vendors [post]
func (s *Server) CreateVendor(c *gin.Context) {
	s.createCounterparty(c, counterpartydomain.KindVendor)
}

func (s *Server) createCounterparty(c *gin.Context, kind counterpartydomain.Kind) {
	var req createCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.counterpartySvc.Create(c.Request.Context(), counterpartydomain.CreateRequest{
		Kind:           kind,
		Name:           strings.TrimSpace(req.Name),
		MobileNo:       strings.TrimSpace(string(req.MobileNo)),
		Company:        strings.TrimSpace(req.Company),
		CashType:       strings.TrimSpace(req.CashType),
		AccountBalance: float64(req.AccountBalance),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	s.listCounterparties(c, counterpartydomain.KindCustomer)
}

func (s *Server) ListVendors(c *gin.Context) {
	s.listCounterparties(c, counterpartydomain.KindVendor)
}

func (s *Server) listCounterparties(c *gin.Context, kind counterpartydomain.Kind) {
	resp, err := s.counterpartySvc.List(c.Request.Context(), kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	s.getCounterpartyByID(c, counterpartydomain.KindCustomer)
}

func (s *Server) GetVendorByID(c *gin.Context) {
	s.getCounterpartyByID(c, counterpartydomain.KindVendor)
}

func (s *Server) getCounterpartyByID(c *gin.Context, kind counterpartydomain.Kind) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := s.counterpartySvc.GetByID(c.Request.Context(), kind, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCustomerName(c *gin.Context) {
	s.updateCounterpartyName(c, counterpartydomain.KindCustomer)
}

func (s *Server) UpdateVendorName(c *gin.Context) {
	s.updateCounterpartyName(c, counterpartydomain.KindVendor)
}

func (s *Server) updateCounterpartyName(c *gin.Context, kind counterpartydomain.Kind) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.counterpartySvc.UpdateName(c.Request.Context(), kind, id, strings.TrimSpace(req.Name))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	s.deleteCounterparty(c, counterpartydomain.KindCustomer)
}

func (s *Server) DeleteVendor(c *gin.Context) {
	s.deleteCounterparty(c, counterpartydomain.KindVendor)
}

func (s *Server) deleteCounterparty(c *gin.Context, kind counterpartydomain.Kind) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.counterpartySvc.Delete(c.Request.Context(), kind, id); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := id.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), string(kind)+".delete", string(kind), &targetID, map[string]any{
			"id": targetID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

func (s *Server) PayCustomer(c *gin.Context) {
	s.payCounterparty(c, counterpartydomain.KindCustomer)
}

func (s *Server) PayVendor(c *gin.Context) {
	s.payCounterparty(c, counterpartydomain.KindVendor)
}

// payCounterparty records a payment against an open balance and returns the
// updated account alongside the payment slip.
func (s *Server) payCounterparty(c *gin.Context, kind counterpartydomain.Kind) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), kind, id, float64(req.Amount))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.Payment.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "payment.record", string(kind), &targetID, map[string]any{
			"slip_no": resp.Payment.PaymentSlipID,
			"amount":  resp.Payment.PaidAmount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Payment successful",
		"payment":      newPaymentView(resp.Payment, kind),
		"counterparty": resp.Counterparty,
	})
}

// parseID reads a snowflake path parameter. Unparseable ids become a 404
// rather than a 400 so probing /customers/abc matches a missing record.
func parseID(c *gin.Context, name string) (snowflake.ID, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := snowflake.ParseString(raw)
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return 0, false
	}
	return id, true
}
