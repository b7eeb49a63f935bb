package invoice

import (
	"github.com/waleedsheikh30/erp-inventory/internal/invoice/render"
	"github.com/waleedsheikh30/erp-inventory/internal/invoice/repository"
	"github.com/waleedsheikh30/erp-inventory/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
