package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Product is a stock item. Quantity is a plain signed count; invoice flows
// may drive it negative when goods are sold before being booked in.
type Product struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ProductCode string       `gorm:"type:text;not null" json:"productID"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Price       float64      `gorm:"not null" json:"price"`
	Quantity    int64        `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updatedAt"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }

type CreateRequest struct {
	ProductCode string
	Name        string
	Description string
	Price       float64
	Quantity    int64
}

type UpdateRequest struct {
	ID          snowflake.ID
	ProductCode *string
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Product, error)
	Update(ctx context.Context, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, p *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	List(ctx context.Context, db *gorm.DB) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, p *Product) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}

var (
	ErrInvalidCode  = errors.New("invalid_product_code")
	ErrInvalidName  = errors.New("invalid_product_name")
	ErrInvalidPrice = errors.New("invalid_product_price")
	ErrNotFound     = errors.New("product_not_found")
)
