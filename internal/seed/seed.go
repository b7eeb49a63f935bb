package seed

import (
	"context"
	"errors"

	paymentdomain "github.com/waleedsheikh30/erp-inventory/internal/payment/domain"
	"gorm.io/gorm"
)

const slipCounterName = "payment_slip"

// EnsureSlipCounter seeds the payment slip counter row for startup bootstrap.
// The counter is stored one below the first slip handed out, so a fresh
// database issues slips starting at the first slip number. Existing rows are
// left untouched.
func EnsureSlipCounter(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).
			Raw(`SELECT COUNT(1) FROM counters WHERE name = ?`, slipCounterName).
			Scan(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		return tx.WithContext(ctx).
			Exec(`INSERT INTO counters (name, value) VALUES (?, ?)`,
				slipCounterName, int64(paymentdomain.FirstSlipID-1)).Error
	})
}
