package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditrepo "github.com/waleedsheikh30/erp-inventory/internal/audit/repository"
	auditservice "github.com/waleedsheikh30/erp-inventory/internal/audit/service"
	"github.com/waleedsheikh30/erp-inventory/internal/cache"
	"github.com/waleedsheikh30/erp-inventory/internal/clock"
	"github.com/waleedsheikh30/erp-inventory/internal/config"
	counterpartyrepo "github.com/waleedsheikh30/erp-inventory/internal/counterparty/repository"
	counterpartyservice "github.com/waleedsheikh30/erp-inventory/internal/counterparty/service"
	"github.com/waleedsheikh30/erp-inventory/internal/events"
	invoicerepo "github.com/waleedsheikh30/erp-inventory/internal/invoice/repository"
	"github.com/waleedsheikh30/erp-inventory/internal/invoice/render"
	invoiceservice "github.com/waleedsheikh30/erp-inventory/internal/invoice/service"
	"github.com/waleedsheikh30/erp-inventory/internal/locks"
	paymentrepo "github.com/waleedsheikh30/erp-inventory/internal/payment/repository"
	paymentservice "github.com/waleedsheikh30/erp-inventory/internal/payment/service"
	productrepo "github.com/waleedsheikh30/erp-inventory/internal/product/repository"
	productservice "github.com/waleedsheikh30/erp-inventory/internal/product/service"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	statements := []string{
		`CREATE TABLE IF NOT EXISTS counterparties (
			id BIGINT PRIMARY KEY,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			mobile_no TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			cash_type TEXT NOT NULL DEFAULT '',
			account_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
			khatta DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_payable DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
			remaining DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'PAID',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT PRIMARY KEY,
			product_code TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			quantity BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id BIGINT PRIMARY KEY,
			type TEXT NOT NULL,
			counterparty_id BIGINT NOT NULL,
			counterparty_name TEXT NOT NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			paid_amount DOUBLE PRECISION NOT NULL,
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS invoice_items (
			id BIGINT PRIMARY KEY,
			invoice_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			product_name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			quantity BIGINT NOT NULL,
			price DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGINT PRIMARY KEY,
			counterparty_id BIGINT NOT NULL,
			payment_slip_id BIGINT NOT NULL UNIQUE,
			paid_amount DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			value BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_events (
			id BIGINT PRIMARY KEY,
			event_type TEXT NOT NULL,
			payload TEXT,
			dedupe_key TEXT UNIQUE,
			published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id BIGINT PRIMARY KEY,
			actor_type TEXT NOT NULL,
			action TEXT NOT NULL,
			target_type TEXT NOT NULL,
			target_id TEXT,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	if err := db.Exec(`INSERT INTO counters (name, value) VALUES ('payment_slip', 100)`).Error; err != nil {
		t.Fatalf("seed counter: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	log := zap.NewNop()
	sysClock := clock.SystemClock{}
	keyed := locks.NewKeyed()
	outbox := events.NewOutbox(db, node)
	cpRepo := counterpartyrepo.Provide()
	prodRepo := productrepo.Provide()

	srv := &Server{
		cfg:             config.Config{Environment: "test"},
		log:             log,
		db:              db,
		counterpartySvc: counterpartyservice.NewService(counterpartyservice.Params{DB: db, Log: log, GenID: node, Clock: sysClock, Repo: cpRepo}),
		productSvc:      productservice.NewService(productservice.Params{DB: db, Log: log, GenID: node, Clock: sysClock, Repo: prodRepo}),
		invoiceSvc: invoiceservice.NewService(invoiceservice.Params{
			DB: db, Log: log, GenID: node, Clock: sysClock, Locks: keyed,
			Repo: invoicerepo.Provide(), CounterpartyRepo: cpRepo, ProductRepo: prodRepo, Outbox: outbox,
		}),
		paymentSvc: paymentservice.NewService(paymentservice.Params{
			DB: db, Log: log, GenID: node, Clock: sysClock, Locks: keyed,
			Repo: paymentrepo.Provide(), CounterpartyRepo: cpRepo, Outbox: outbox,
		}),
		auditSvc:     auditservice.NewService(auditservice.Params{DB: db, Log: log, GenID: node, Clock: sysClock, Repo: auditrepo.Provide()}),
		renderer:     render.NewRenderer(),
		writeLimiter: newRateLimiter(1000, time.Minute),
		pdfCache:     cache.NewTTLCache[string, []byte](),
	}

	engine := gin.New()
	srv.RegisterRoutes(engine)
	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return payload.Data
}

func TestCreateCustomerEndpoint(t *testing.T) {
	engine, _ := setupServerTest(t)

	// mobileNo arrives as a bare JSON number from older clients.
	w := doJSON(t, engine, http.MethodPost, "/customers", map[string]any{
		"name":     "Ali Traders",
		"mobileNo": 3001234567,
		"company":  "Ali & Sons",
		"cashType": "cash",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeData(t, w)
	if data["name"] != "Ali Traders" {
		t.Fatalf("unexpected name: %v", data["name"])
	}
	if data["status"] != "PAID" {
		t.Fatalf("expected PAID status, got %v", data["status"])
	}
}

func TestCreateCustomerValidationError(t *testing.T) {
	engine, _ := setupServerTest(t)

	w := doJSON(t, engine, http.MethodPost, "/customers", map[string]any{
		"name": "No Mobile",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["code"] == nil || body["message"] == nil {
		t.Fatalf("expected code and message, got %v", body)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	engine, _ := setupServerTest(t)

	for _, path := range []string{"/customers/123456789", "/customers/not-a-number"} {
		w := doJSON(t, engine, http.MethodGet, path, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, w.Code)
		}
	}
}

func createTestCustomer(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/customers", map[string]any{
		"name":     "Flow Customer",
		"mobileNo": "0300111",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer: %d %s", w.Code, w.Body.String())
	}
	return decodeData(t, w)["id"].(string)
}

func createTestProduct(t *testing.T, engine *gin.Engine, price float64, quantity int64) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/products", map[string]any{
		"productID": "SKU-1",
		"name":      "Widget",
		"price":     price,
		"quantity":  quantity,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: %d %s", w.Code, w.Body.String())
	}
	return decodeData(t, w)["id"].(string)
}

func TestInvoiceFlowEndpoint(t *testing.T) {
	engine, _ := setupServerTest(t)

	customerID := createTestCustomer(t, engine)
	productID := createTestProduct(t, engine, 50, 10)

	w := doJSON(t, engine, http.MethodPost, "/invoices", map[string]any{
		"type":       "sales",
		"customerId": customerID,
		"products": []map[string]any{
			{"productId": productID, "quantity": 2},
		},
		"totalAmount": 100,
		"paidAmount":  40,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeData(t, w)
	if data["customerId"] != customerID {
		t.Fatalf("expected customerId %s, got %v", customerID, data["customerId"])
	}
	if data["vendorId"] != nil {
		t.Fatalf("expected no vendorId on a sales invoice, got %v", data["vendorId"])
	}
	if data["paid"] != false {
		t.Fatalf("expected unpaid invoice, got %v", data["paid"])
	}
	products, ok := data["products"].([]any)
	if !ok || len(products) != 1 {
		t.Fatalf("expected one product line, got %v", data["products"])
	}

	// Customer balance reflects the invoice.
	w = doJSON(t, engine, http.MethodGet, "/customers/"+customerID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get customer: %d", w.Code)
	}
	customer := decodeData(t, w)
	if customer["remaining"] != float64(60) {
		t.Fatalf("expected remaining 60, got %v", customer["remaining"])
	}
	if customer["khatta"] != float64(60) {
		t.Fatalf("expected khatta 60, got %v", customer["khatta"])
	}
}

func TestInvoiceUnknownProductReturns400(t *testing.T) {
	engine, _ := setupServerTest(t)

	customerID := createTestCustomer(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/invoices", map[string]any{
		"type":       "sales",
		"customerId": customerID,
		"products": []map[string]any{
			{"productId": "999", "quantity": 1},
		},
		"totalAmount": 10,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "999") {
		t.Fatalf("expected error naming the product, got %s", w.Body.String())
	}
}

func TestPayEndpoint(t *testing.T) {
	engine, _ := setupServerTest(t)

	customerID := createTestCustomer(t, engine)
	productID := createTestProduct(t, engine, 50, 10)

	w := doJSON(t, engine, http.MethodPost, "/invoices", map[string]any{
		"type":       "sales",
		"customerId": customerID,
		"products": []map[string]any{
			{"productId": productID, "quantity": 2},
		},
		"totalAmount": 100,
		"paidAmount":  40,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d %s", w.Code, w.Body.String())
	}

	// amount arrives as a string from some clients.
	w = doJSON(t, engine, http.MethodPost, "/customers/"+customerID+"/pay", map[string]any{
		"amount": "60",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Message string         `json:"message"`
		Payment map[string]any `json:"payment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode pay response: %v", err)
	}
	if body.Message != "Payment successful" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Payment["slipNo"] != float64(101) {
		t.Fatalf("expected slip 101, got %v", body.Payment["slipNo"])
	}
	if body.Payment["customerId"] != customerID {
		t.Fatalf("expected customerId %s, got %v", customerID, body.Payment["customerId"])
	}

	w = doJSON(t, engine, http.MethodGet, "/customers/"+customerID, nil)
	customer := decodeData(t, w)
	if customer["status"] != "PAID" {
		t.Fatalf("expected settled customer, got %v", customer["status"])
	}

	w = doJSON(t, engine, http.MethodGet, "/payments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list payments: %d", w.Code)
	}
}

func TestPayInvalidAmount(t *testing.T) {
	engine, _ := setupServerTest(t)

	customerID := createTestCustomer(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/customers/"+customerID+"/pay", map[string]any{
		"amount": -5,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDownloadInvoicePDF(t *testing.T) {
	engine, _ := setupServerTest(t)

	customerID := createTestCustomer(t, engine)
	productID := createTestProduct(t, engine, 50, 10)

	w := doJSON(t, engine, http.MethodPost, "/invoices", map[string]any{
		"type":       "sales",
		"customerId": customerID,
		"products": []map[string]any{
			{"productId": productID, "quantity": 1},
		},
		"totalAmount": 50,
		"paidAmount":  50,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d %s", w.Code, w.Body.String())
	}
	invoiceID := decodeData(t, w)["id"].(string)

	w = doJSON(t, engine, http.MethodGet, "/invoices/download/"+invoiceID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", ct)
	}
	wantDisposition := fmt.Sprintf("attachment; filename=invoice-%s.pdf", invoiceID)
	if cd := w.Header().Get("Content-Disposition"); cd != wantDisposition {
		t.Fatalf("expected %q, got %q", wantDisposition, cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected PDF payload")
	}

	w = doJSON(t, engine, http.MethodGet, "/invoices/download/987654321", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing invoice, got %d", w.Code)
	}
}

func TestAuditLogEndpoint(t *testing.T) {
	engine, _ := setupServerTest(t)

	customerID := createTestCustomer(t, engine)
	productID := createTestProduct(t, engine, 50, 10)

	w := doJSON(t, engine, http.MethodPost, "/invoices", map[string]any{
		"type":       "sales",
		"customerId": customerID,
		"products": []map[string]any{
			{"productId": productID, "quantity": 1},
		},
		"totalAmount": 50,
		"paidAmount":  50,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, "/audit-logs?action=invoice.create", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list audit logs: %d %s", w.Code, w.Body.String())
	}
	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode audit logs: %v", err)
	}
	if len(payload.Data) != 1 {
		t.Fatalf("expected one invoice.create entry, got %d", len(payload.Data))
	}

	w = doJSON(t, engine, http.MethodGet, "/audit-logs?limit=bad", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}
}

func TestTestCleanupEndpoint(t *testing.T) {
	engine, _ := setupServerTest(t)

	createTestCustomer(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/internal/test/cleanup", map[string]any{
		"prefix": "Flow",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("cleanup: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, "/customers", nil)
	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(payload.Data) != 0 {
		t.Fatalf("expected no customers after cleanup, got %d", len(payload.Data))
	}
}
