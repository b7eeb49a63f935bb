package product

import (
	"github.com/waleedsheikh30/erp-inventory/internal/product/repository"
	"github.com/waleedsheikh30/erp-inventory/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
