package counterparty

import (
	"github.com/waleedsheikh30/erp-inventory/internal/counterparty/repository"
	"github.com/waleedsheikh30/erp-inventory/internal/counterparty/service"
	"go.uber.org/fx"
)

var Module = fx.Module("counterparty.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
