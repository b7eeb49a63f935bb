package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/waleedsheikh30/erp-inventory/internal/audit"
	"github.com/waleedsheikh30/erp-inventory/internal/clock"
	"github.com/waleedsheikh30/erp-inventory/internal/config"
	"github.com/waleedsheikh30/erp-inventory/internal/counterparty"
	"github.com/waleedsheikh30/erp-inventory/internal/events"
	"github.com/waleedsheikh30/erp-inventory/internal/invoice"
	"github.com/waleedsheikh30/erp-inventory/internal/locks"
	"github.com/waleedsheikh30/erp-inventory/internal/migration"
	"github.com/waleedsheikh30/erp-inventory/internal/observability/logger"
	"github.com/waleedsheikh30/erp-inventory/internal/payment"
	"github.com/waleedsheikh30/erp-inventory/internal/product"
	"github.com/waleedsheikh30/erp-inventory/internal/seed"
	"github.com/waleedsheikh30/erp-inventory/internal/server"
	"github.com/waleedsheikh30/erp-inventory/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		fx.Provide(locks.NewKeyed),
		clock.Module,
		db.Module,
		fx.Invoke(func(conn *gorm.DB) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.EnsureSlipCounter(conn)
		}),
		events.Module,
		audit.Module,
		counterparty.Module,
		product.Module,
		invoice.Module,
		payment.Module,
		server.Module,
	)
	app.Run()
}
