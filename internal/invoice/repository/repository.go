package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/waleedsheikh30/erp-inventory/internal/invoice/domain"
	"gorm.io/gorm"
)

type store struct{}

func Provide() domain.Repository { return &store{} }

func (store) Insert(ctx context.Context, db *gorm.DB, inv *domain.Invoice) error {
	return db.WithContext(ctx).Create(inv).Error
}

func (store) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (store) List(ctx context.Context, db *gorm.DB, typeFilter domain.Type) ([]domain.Invoice, error) {
	q := db.WithContext(ctx).Preload("Items")
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	var out []domain.Invoice
	if err := q.Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
