package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cp *Counterparty) error
	FindByID(ctx context.Context, db *gorm.DB, kind Kind, id snowflake.ID) (*Counterparty, error)
	List(ctx context.Context, db *gorm.DB, kind Kind) ([]Counterparty, error)
	Update(ctx context.Context, db *gorm.DB, cp *Counterparty) error
	Delete(ctx context.Context, db *gorm.DB, kind Kind, id snowflake.ID) (bool, error)
}
