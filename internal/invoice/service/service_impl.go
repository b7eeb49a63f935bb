package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/waleedsheikh30/erp-inventory/internal/clock"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
	"github.com/waleedsheikh30/erp-inventory/internal/events"
	invoicedomain "github.com/waleedsheikh30/erp-inventory/internal/invoice/domain"
	"github.com/waleedsheikh30/erp-inventory/internal/locks"
	productdomain "github.com/waleedsheikh30/erp-inventory/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB               *gorm.DB
	Log              *zap.Logger
	GenID            *snowflake.Node
	Clock            clock.Clock
	Locks            *locks.Keyed
	Repo             invoicedomain.Repository
	CounterpartyRepo counterpartydomain.Repository
	ProductRepo      productdomain.Repository
	Outbox           *events.Outbox
}

type Service struct {
	db               *gorm.DB
	log              *zap.Logger
	genID            *snowflake.Node
	clock            clock.Clock
	locks            *locks.Keyed
	repo             invoicedomain.Repository
	counterpartyRepo counterpartydomain.Repository
	productRepo      productdomain.Repository
	outbox           *events.Outbox
}

func NewService(p Params) invoicedomain.Service {
	return &Service{
		db:               p.DB,
		log:              p.Log.Named("invoice.service"),
		genID:            p.GenID,
		clock:            p.Clock,
		locks:            p.Locks,
		repo:             p.Repo,
		counterpartyRepo: p.CounterpartyRepo,
		productRepo:      p.ProductRepo,
		outbox:           p.Outbox,
	}
}

// Create runs the whole invoice flow as one logical transaction: resolve and
// validate everything first, then persist the invoice, apply the balance
// delta, mutate stock and rewrite the khatta carry. Writes to the same
// counterparty or products are serialized through the keyed lock, so
// concurrent invoices cannot lose updates to each other.
func (s *Service) Create(ctx context.Context, req invoicedomain.CreateRequest) (*invoicedomain.Invoice, error) {
	if !req.Type.Valid() {
		return nil, invoicedomain.ErrInvalidType
	}
	if req.CustomerID != 0 && req.VendorID != 0 {
		return nil, invoicedomain.ErrAmbiguousCounterparty
	}
	counterpartyID := req.CounterpartyID()
	if counterpartyID == 0 {
		return nil, invoicedomain.ErrMissingCounterparty
	}
	if len(req.Lines) == 0 {
		return nil, invoicedomain.ErrNoProducts
	}
	for _, line := range req.Lines {
		if line.ProductID == 0 || line.Quantity <= 0 {
			return nil, invoicedomain.ErrInvalidQuantity
		}
	}
	if req.TotalAmount < 0 || req.PaidAmount < 0 {
		return nil, invoicedomain.ErrInvalidAmount
	}

	keys := make([]string, 0, len(req.Lines)+1)
	keys = append(keys, "counterparty:"+counterpartyID.String())
	for _, line := range req.Lines {
		keys = append(keys, "product:"+line.ProductID.String())
	}
	release := s.locks.Acquire(keys...)
	defer release()

	var created *invoicedomain.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cp, err := s.counterpartyRepo.FindByID(ctx, tx, req.Type.CounterpartyKind(), counterpartyID)
		if err != nil {
			return err
		}
		if cp == nil {
			return invoicedomain.ErrCounterpartyNotFound
		}

		// Resolve every product before the first write.
		resolved := make([]*productdomain.Product, len(req.Lines))
		for i, line := range req.Lines {
			p, err := s.productRepo.FindByID(ctx, tx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return &invoicedomain.ProductNotFoundError{ProductID: line.ProductID}
			}
			resolved[i] = p
		}

		now := s.clock.Now()
		inv := invoicedomain.Invoice{
			ID:               s.genID.Generate(),
			Type:             req.Type,
			CounterpartyID:   cp.ID,
			CounterpartyName: cp.Name,
			TotalAmount:      req.TotalAmount,
			PaidAmount:       req.PaidAmount,
			Paid:             req.PaidAmount >= req.TotalAmount,
			CreatedAt:        now,
		}
		for i, line := range req.Lines {
			inv.Items = append(inv.Items, invoicedomain.InvoiceItem{
				ID:          s.genID.Generate(),
				InvoiceID:   inv.ID,
				ProductID:   resolved[i].ID,
				ProductName: resolved[i].Name,
				Description: resolved[i].Description,
				Quantity:    line.Quantity,
				Price:       resolved[i].Price,
			})
		}
		if err := s.repo.Insert(ctx, tx, &inv); err != nil {
			return err
		}

		// Stock moves opposite ways for the two invoice types. No floor:
		// selling unbooked goods drives quantity negative.
		for i, line := range req.Lines {
			p := resolved[i]
			if req.Type == invoicedomain.TypeSales {
				p.Quantity -= line.Quantity
			} else {
				p.Quantity += line.Quantity
			}
			p.UpdatedAt = now
			if err := s.productRepo.Update(ctx, tx, p); err != nil {
				return err
			}
		}

		cp.SetBalance(counterpartydomain.ApplyDelta(cp.Balance(), req.TotalAmount, req.PaidAmount))

		// Khatta carries only the most recent invoice's shortfall; a fully
		// paid invoice clears it.
		if shortfall := req.TotalAmount - req.PaidAmount; shortfall > 0 {
			cp.Khatta = shortfall
		} else {
			cp.Khatta = 0
		}
		cp.AccountBalance -= req.PaidAmount
		cp.UpdatedAt = now
		if err := s.counterpartyRepo.Update(ctx, tx, cp); err != nil {
			return err
		}

		if err := s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventInvoiceCreated,
			Payload: events.InvoiceCreatedPayload{
				InvoiceID:      inv.ID.String(),
				Type:           string(inv.Type),
				CounterpartyID: cp.ID.String(),
				TotalAmount:    inv.TotalAmount,
				PaidAmount:     inv.PaidAmount,
			}.ToMap(),
			DedupeKey: "invoice.created:" + inv.ID.String(),
		}); err != nil {
			return err
		}

		created = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("id", created.ID.String()),
		zap.String("type", string(created.Type)),
		zap.Float64("total_amount", created.TotalAmount),
		zap.Float64("paid_amount", created.PaidAmount),
	)
	return created, nil
}

func (s *Service) List(ctx context.Context, typeFilter invoicedomain.Type) ([]invoicedomain.Invoice, error) {
	if typeFilter != "" && !typeFilter.Valid() {
		return nil, invoicedomain.ErrInvalidType
	}
	return s.repo.List(ctx, s.db, typeFilter)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*invoicedomain.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, invoicedomain.ErrInvoiceNotFound
	}
	return inv, nil
}
