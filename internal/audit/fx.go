package audit

import (
	"github.com/waleedsheikh30/erp-inventory/internal/audit/repository"
	"github.com/waleedsheikh30/erp-inventory/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
