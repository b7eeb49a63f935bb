package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type testCleanupRequest struct {
	Prefix string `json:"prefix"`
}

// TestCleanup wipes ledger data whose counterparty or product name matches a
// prefix. Registered outside production only; fixtures created by end-to-end
// runs use a shared prefix so they can be removed in one call.
func (s *Server) TestCleanup(c *gin.Context) {
	if s.cfg.IsProduction() {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req testCleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		AbortWithError(c, newValidationError("prefix", "required", "prefix is required"))
		return
	}

	ctx := c.Request.Context()
	if err := s.deleteCounterpartyData(ctx, prefix); err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.deleteProductData(ctx, prefix); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) deleteCounterpartyData(ctx context.Context, prefix string) error {
	like := prefix + "%"
	var ids []int64
	if err := s.db.WithContext(ctx).
		Table("counterparties").
		Select("id").
		Where("name LIKE ?", like).
		Scan(&ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	queries := []string{
		`DELETE FROM invoice_items WHERE invoice_id IN (SELECT id FROM invoices WHERE counterparty_id IN ?)`,
		`DELETE FROM invoices WHERE counterparty_id IN ?`,
		`DELETE FROM payments WHERE counterparty_id IN ?`,
		`DELETE FROM counterparties WHERE id IN ?`,
	}
	for _, query := range queries {
		if err := s.db.WithContext(ctx).Exec(query, ids).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) deleteProductData(ctx context.Context, prefix string) error {
	like := prefix + "%"
	return s.db.WithContext(ctx).
		Exec(`DELETE FROM products WHERE name LIKE ?`, like).Error
}
