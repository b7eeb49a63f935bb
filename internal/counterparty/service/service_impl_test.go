package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
	"github.com/waleedsheikh30/erp-inventory/internal/counterparty/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func setupCounterpartyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
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
	).Error; err != nil {
		t.Fatalf("create counterparties: %v", err)
	}
	return db
}

func newCounterpartyTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return &Service{
		db:    db,
		log:   zap.NewNop(),
		genID: node,
		clock: fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		repo:  repository.Provide(),
	}
}

func TestCreateCounterparty(t *testing.T) {
	db := setupCounterpartyTestDB(t)
	svc := newCounterpartyTestService(t, db)

	cp, err := svc.Create(context.Background(), domain.CreateRequest{
		Kind:           domain.KindCustomer,
		Name:           "  Ali Traders  ",
		MobileNo:       "03001234567",
		Company:        "Ali & Sons",
		CashType:       "cash",
		AccountBalance: 500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cp.Name != "Ali Traders" {
		t.Fatalf("expected trimmed name, got %q", cp.Name)
	}
	if cp.Status != domain.StatusPaid {
		t.Fatalf("expected new account PAID, got %v", cp.Status)
	}
	if cp.AccountBalance != 500 {
		t.Fatalf("expected opening balance 500, got %v", cp.AccountBalance)
	}

	loaded, err := svc.GetByID(context.Background(), domain.KindCustomer, cp.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if loaded.MobileNo != "03001234567" {
		t.Fatalf("expected mobile kept, got %q", loaded.MobileNo)
	}
}

func TestCreateCounterpartyValidation(t *testing.T) {
	db := setupCounterpartyTestDB(t)
	svc := newCounterpartyTestService(t, db)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Kind: "partner", Name: "X", MobileNo: "1"})
	if !errors.Is(err, domain.ErrInvalidKind) {
		t.Fatalf("expected invalid kind, got %v", err)
	}

	_, err = svc.Create(context.Background(), domain.CreateRequest{Kind: domain.KindVendor, Name: "  ", MobileNo: "1"})
	if !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected invalid name, got %v", err)
	}

	_, err = svc.Create(context.Background(), domain.CreateRequest{Kind: domain.KindVendor, Name: "X", MobileNo: ""})
	if !errors.Is(err, domain.ErrInvalidMobileNo) {
		t.Fatalf("expected invalid mobile, got %v", err)
	}
}

func TestGetByIDChecksKind(t *testing.T) {
	db := setupCounterpartyTestDB(t)
	svc := newCounterpartyTestService(t, db)

	cp, err := svc.Create(context.Background(), domain.CreateRequest{
		Kind:     domain.KindVendor,
		Name:     "Bulk Supply Co",
		MobileNo: "03111234567",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A vendor id does not resolve as a customer.
	_, err = svc.GetByID(context.Background(), domain.KindCustomer, cp.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found across kinds, got %v", err)
	}
}

func TestListFiltersByKind(t *testing.T) {
	db := setupCounterpartyTestDB(t)
	svc := newCounterpartyTestService(t, db)

	if _, err := svc.Create(context.Background(), domain.CreateRequest{Kind: domain.KindCustomer, Name: "C1", MobileNo: "1"}); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.CreateRequest{Kind: domain.KindVendor, Name: "V1", MobileNo: "2"}); err != nil {
		t.Fatalf("create vendor: %v", err)
	}

	customers, err := svc.List(context.Background(), domain.KindCustomer)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 1 || customers[0].Kind != domain.KindCustomer {
		t.Fatalf("expected one customer, got %+v", customers)
	}
}

func TestUpdateNameAndDelete(t *testing.T) {
	db := setupCounterpartyTestDB(t)
	svc := newCounterpartyTestService(t, db)

	cp, err := svc.Create(context.Background(), domain.CreateRequest{Kind: domain.KindCustomer, Name: "Before", MobileNo: "1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateName(context.Background(), domain.KindCustomer, cp.ID, "After")
	if err != nil {
		t.Fatalf("update name: %v", err)
	}
	if updated.Name != "After" {
		t.Fatalf("expected renamed, got %q", updated.Name)
	}

	if _, err := svc.UpdateName(context.Background(), domain.KindCustomer, cp.ID, "  "); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected invalid name, got %v", err)
	}

	if err := svc.Delete(context.Background(), domain.KindCustomer, cp.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), domain.KindCustomer, cp.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
