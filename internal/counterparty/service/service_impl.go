package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/waleedsheikh30/erp-inventory/internal/clock"
	"github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
	"github.com/waleedsheikh30/erp-inventory/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("counterparty.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Counterparty, error) {
	if !req.Kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	mobile := strings.TrimSpace(req.MobileNo)
	if mobile == "" {
		return nil, domain.ErrInvalidMobileNo
	}

	now := s.clock.Now()
	cp := domain.Counterparty{
		ID:             s.genID.Generate(),
		Kind:           req.Kind,
		Name:           name,
		MobileNo:       mobile,
		Company:        strings.TrimSpace(req.Company),
		CashType:       strings.TrimSpace(req.CashType),
		AccountBalance: req.AccountBalance,
		Status:         domain.StatusPaid,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, s.db, &cp); err != nil {
		return nil, err
	}

	s.log.Info("counterparty created",
		zap.String("kind", string(cp.Kind)),
		zap.String("id", cp.ID.String()),
		zap.String("mobile_no", logger.MaskMobile(cp.MobileNo)),
	)
	return &cp, nil
}

func (s *Service) List(ctx context.Context, kind domain.Kind) ([]domain.Counterparty, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	return s.repo.List(ctx, s.db, kind)
}

func (s *Service) GetByID(ctx context.Context, kind domain.Kind, id snowflake.ID) (*domain.Counterparty, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	cp, err := s.repo.FindByID(ctx, s.db, kind, id)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, domain.ErrNotFound
	}
	return cp, nil
}

func (s *Service) UpdateName(ctx context.Context, kind domain.Kind, id snowflake.ID, name string) (*domain.Counterparty, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	cp, err := s.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	cp.Name = name
	cp.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// Delete removes the counterparty only. Invoices and payments referencing it
// are kept; invoices carry a name snapshot for exactly this case.
func (s *Service) Delete(ctx context.Context, kind domain.Kind, id snowflake.ID) error {
	if !kind.Valid() {
		return domain.ErrInvalidKind
	}
	deleted, err := s.repo.Delete(ctx, s.db, kind, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
