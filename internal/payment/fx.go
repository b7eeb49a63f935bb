package payment

import (
	"github.com/waleedsheikh30/erp-inventory/internal/payment/repository"
	"github.com/waleedsheikh30/erp-inventory/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
