package service

import (
	"context"
	"math"

	"github.com/bwmarrin/snowflake"
	"github.com/waleedsheikh30/erp-inventory/internal/clock"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
	"github.com/waleedsheikh30/erp-inventory/internal/events"
	"github.com/waleedsheikh30/erp-inventory/internal/locks"
	paymentdomain "github.com/waleedsheikh30/erp-inventory/internal/payment/domain"
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
	Repo             paymentdomain.Repository
	CounterpartyRepo counterpartydomain.Repository
	Outbox           *events.Outbox
}

type Service struct {
	db               *gorm.DB
	log              *zap.Logger
	genID            *snowflake.Node
	clock            clock.Clock
	locks            *locks.Keyed
	repo             paymentdomain.Repository
	counterpartyRepo counterpartydomain.Repository
	outbox           *events.Outbox
}

func NewService(p Params) paymentdomain.Service {
	return &Service{
		db:               p.DB,
		log:              p.Log.Named("payment.service"),
		genID:            p.GenID,
		clock:            p.Clock,
		locks:            p.Locks,
		repo:             p.Repo,
		counterpartyRepo: p.CounterpartyRepo,
		outbox:           p.Outbox,
	}
}

// Create applies a payment to the counterparty's balance and persists the
// payment record, all inside one transaction serialized per counterparty.
// The slip id comes from an atomic counter increment, so concurrent payments
// can never collide on it.
func (s *Service) Create(ctx context.Context, kind counterpartydomain.Kind, counterpartyID snowflake.ID, amount float64) (*paymentdomain.Result, error) {
	if !kind.Valid() {
		return nil, counterpartydomain.ErrInvalidKind
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, paymentdomain.ErrInvalidAmount
	}

	release := s.locks.Acquire("counterparty:" + counterpartyID.String())
	defer release()

	var result *paymentdomain.Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cp, err := s.counterpartyRepo.FindByID(ctx, tx, kind, counterpartyID)
		if err != nil {
			return err
		}
		if cp == nil {
			return paymentdomain.ErrCounterpartyNotFound
		}

		slip, err := s.repo.NextSlipID(ctx, tx)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		cp.SetBalance(counterpartydomain.ApplyDelta(cp.Balance(), 0, amount))
		cp.UpdatedAt = now
		if err := s.counterpartyRepo.Update(ctx, tx, cp); err != nil {
			return err
		}

		payment := paymentdomain.Payment{
			ID:             s.genID.Generate(),
			CounterpartyID: cp.ID,
			PaymentSlipID:  slip,
			PaidAmount:     amount,
			CreatedAt:      now,
		}
		if err := s.repo.Insert(ctx, tx, &payment); err != nil {
			return err
		}

		if err := s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventPaymentRecorded,
			Payload: events.PaymentRecordedPayload{
				PaymentID:      payment.ID.String(),
				CounterpartyID: cp.ID.String(),
				PaymentSlipID:  payment.PaymentSlipID,
				PaidAmount:     payment.PaidAmount,
			}.ToMap(),
			DedupeKey: "payment.recorded:" + payment.ID.String(),
		}); err != nil {
			return err
		}

		result = &paymentdomain.Result{Counterparty: cp, Payment: payment}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.String("counterparty_id", result.Counterparty.ID.String()),
		zap.Int64("payment_slip_id", result.Payment.PaymentSlipID),
		zap.Float64("paid_amount", result.Payment.PaidAmount),
	)
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]paymentdomain.Record, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*paymentdomain.Record, error) {
	rec, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, paymentdomain.ErrPaymentNotFound
	}
	return rec, nil
}
