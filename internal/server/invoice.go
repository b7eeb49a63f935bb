package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
	invoicedomain "github.com/waleedsheikh30/erp-inventory/internal/invoice/domain"
	"github.com/waleedsheikh30/erp-inventory/internal/invoice/render"
)

type createInvoiceLine struct {
	ProductID string      `json:"productId"`
	Quantity  json.Number `json:"quantity"`
}

type createInvoiceRequest struct {
	Type        string              `json:"type"`
	CustomerID  string              `json:"customerId"`
	VendorID    string              `json:"vendorId"`
	Products    []createInvoiceLine `json:"products"`
	TotalAmount json.Number         `json:"totalAmount"`
	PaidAmount  json.Number         `json:"paidAmount"`
}

// invoiceView keeps the legacy wire shape: the counterparty comes back under
// customerId or vendorId depending on the invoice type.
type invoiceView struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	CustomerID   string            `json:"customerId,omitempty"`
	CustomerName string            `json:"customerName,omitempty"`
	VendorID     string            `json:"vendorId,omitempty"`
	VendorName   string            `json:"vendorName,omitempty"`
	Products     []invoiceItemView `json:"products"`
	TotalAmount  float64           `json:"totalAmount"`
	PaidAmount   float64           `json:"paidAmount"`
	Paid         bool              `json:"paid"`
	CreatedAt    time.Time         `json:"createdAt"`
}

type invoiceItemView struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
}

func newInvoiceView(inv *invoicedomain.Invoice) invoiceView {
	view := invoiceView{
		ID:          inv.ID.String(),
		Type:        string(inv.Type),
		Products:    make([]invoiceItemView, 0, len(inv.Items)),
		TotalAmount: inv.TotalAmount,
		PaidAmount:  inv.PaidAmount,
		Paid:        inv.Paid,
		CreatedAt:   inv.CreatedAt,
	}
	if inv.Type.CounterpartyKind() == counterpartydomain.KindVendor {
		view.VendorID = inv.CounterpartyID.String()
		view.VendorName = inv.CounterpartyName
	} else {
		view.CustomerID = inv.CounterpartyID.String()
		view.CustomerName = inv.CounterpartyName
	}
	for _, item := range inv.Items {
		view.Products = append(view.Products, invoiceItemView{
			ProductID:   item.ProductID.String(),
			Name:        item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return view
}

// @Summary      Create Invoice
// @Description  Write a sales or purchase invoice and settle its balance effects
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body createInvoiceRequest true "Create Invoice Request"
// @Success      201  {object}  invoiceView
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	create := invoicedomain.CreateRequest{
		Type:  invoicedomain.Type(strings.TrimSpace(req.Type)),
		Lines: make([]invoicedomain.CreateLine, 0, len(req.Products)),
	}

	if id, ok := parseOptionalID(req.CustomerID); ok {
		create.CustomerID = id
	} else {
		AbortWithError(c, newValidationError("customerId", "invalid_customer_id", "invalid customerId"))
		return
	}
	if id, ok := parseOptionalID(req.VendorID); ok {
		create.VendorID = id
	} else {
		AbortWithError(c, newValidationError("vendorId", "invalid_vendor_id", "invalid vendorId"))
		return
	}

	for _, line := range req.Products {
		productID, ok := parseOptionalID(line.ProductID)
		if !ok || productID == 0 {
			AbortWithError(c, newValidationError("products", "invalid_product_id", "invalid productId"))
			return
		}
		quantity, err := line.Quantity.Int64()
		if err != nil {
			AbortWithError(c, newValidationError("products", "invalid_quantity", "quantity must be an integer"))
			return
		}
		create.Lines = append(create.Lines, invoicedomain.CreateLine{
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	totalAmount, err := parseOptionalNumber(req.TotalAmount)
	if err != nil {
		AbortWithError(c, newValidationError("totalAmount", "invalid_total_amount", "totalAmount must be a number"))
		return
	}
	paidAmount, err := parseOptionalNumber(req.PaidAmount)
	if err != nil {
		AbortWithError(c, newValidationError("paidAmount", "invalid_paid_amount", "paidAmount must be a number"))
		return
	}
	create.TotalAmount = totalAmount
	create.PaidAmount = paidAmount

	resp, err := s.invoiceSvc.Create(c.Request.Context(), create)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "invoice.create", "invoice", &targetID, map[string]any{
			"type":         string(resp.Type),
			"total_amount": resp.TotalAmount,
			"paid_amount":  resp.PaidAmount,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"data": newInvoiceView(resp)})
}

// @Summary      List Invoices
// @Description  List invoices, optionally filtered by type
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        type  query  string  false  "Invoice Type (sales or purchase)"
// @Success      200  {object}  []invoiceView
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	filter := invoicedomain.Type(strings.TrimSpace(c.Query("type")))
	if filter != "" && !filter.Valid() {
		AbortWithError(c, newValidationError("type", "invalid_type", "type must be sales or purchase"))
		return
	}

	invoices, err := s.invoiceSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]invoiceView, 0, len(invoices))
	for i := range invoices {
		views = append(views, newInvoiceView(&invoices[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newInvoiceView(resp)})
}

// @Summary      Download Invoice
// @Description  Render an invoice as a PDF attachment
// @Tags         invoices
// @Produce      application/pdf
// @Param        invoiceId  path  string  true  "Invoice ID"
// @Success      200  {file}  binary
// @Router       /invoices/download/{invoiceId} [get]
func (s *Server) DownloadInvoice(c *gin.Context) {
	id, ok := parseID(c, "invoiceId")
	if !ok {
		return
	}

	if pdf, ok := s.pdfCache.Get(id.String()); ok {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", id.String()))
		c.Data(http.StatusOK, "application/pdf", pdf)
		return
	}

	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	kind := inv.Type.CounterpartyKind()
	cp, err := s.counterpartySvc.GetByID(c.Request.Context(), kind, inv.CounterpartyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	input := render.RenderInput{
		Invoice: render.InvoiceView{
			ID:          inv.ID.String(),
			Type:        string(inv.Type),
			CreatedAt:   inv.CreatedAt,
			TotalAmount: inv.TotalAmount,
			PaidAmount:  inv.PaidAmount,
		},
		Counterparty: render.CounterpartyView{
			Label:    kind.Label(),
			Name:     cp.Name,
			MobileNo: cp.MobileNo,
			Company:  cp.Company,
			CashType: cp.CashType,
		},
		Items: make([]render.LineItemView, 0, len(inv.Items)),
	}
	for _, item := range inv.Items {
		input.Items = append(input.Items, render.LineItemView{
			Name:        item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	pdf, err := s.renderer.RenderPDF(input)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Invoices never change after creation, so the rendered bytes can be
	// reused for a while.
	s.pdfCache.Set(inv.ID.String(), pdf, 10*time.Minute)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", inv.ID.String()))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// parseOptionalID treats an empty value as absent rather than malformed.
func parseOptionalID(raw string) (snowflake.ID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	parsed, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
