package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
	"gorm.io/gorm"
)

type store struct{}

func Provide() domain.Repository { return &store{} }

func (store) Insert(ctx context.Context, db *gorm.DB, cp *domain.Counterparty) error {
	return db.WithContext(ctx).Create(cp).Error
}

func (store) FindByID(ctx context.Context, db *gorm.DB, kind domain.Kind, id snowflake.ID) (*domain.Counterparty, error) {
	var cp domain.Counterparty
	err := db.WithContext(ctx).
		Where("kind = ? AND id = ?", kind, id).
		First(&cp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cp, nil
}

func (store) List(ctx context.Context, db *gorm.DB, kind domain.Kind) ([]domain.Counterparty, error) {
	var out []domain.Counterparty
	err := db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("created_at").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (store) Update(ctx context.Context, db *gorm.DB, cp *domain.Counterparty) error {
	return db.WithContext(ctx).Save(cp).Error
}

func (store) Delete(ctx context.Context, db *gorm.DB, kind domain.Kind, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).
		Where("kind = ? AND id = ?", kind, id).
		Delete(&domain.Counterparty{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
