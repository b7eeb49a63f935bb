package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, p *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Record, error)
	List(ctx context.Context, db *gorm.DB) ([]Record, error)
	// NextSlipID atomically advances the shared slip counter and returns the
	// new value.
	NextSlipID(ctx context.Context, db *gorm.DB) (int64, error)
}
