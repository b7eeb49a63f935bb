package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/waleedsheikh30/erp-inventory/internal/product/domain"
)

type createProductRequest struct {
	ProductCode string      `json:"productID"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Quantity    json.Number `json:"quantity"`
}

type updateProductRequest struct {
	ProductCode *string      `json:"productID,omitempty"`
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Price       *json.Number `json:"price,omitempty"`
	Quantity    *json.Number `json:"quantity,omitempty"`
}

// @Summary      Create Product
// @Description  Create a new stock item
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body createProductRequest true "Create Product Request"
// @Success      201  {object}  productdomain.Product
// @Router       /products [post]
func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	price, err := parseOptionalNumber(req.Price)
	if err != nil {
		AbortWithError(c, newValidationError("price", "invalid_price", "price must be a number"))
		return
	}

	quantity, err := parseOptionalInt(req.Quantity)
	if err != nil {
		AbortWithError(c, newValidationError("quantity", "invalid_quantity", "quantity must be an integer"))
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateRequest{
		ProductCode: strings.TrimSpace(req.ProductCode),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		Quantity:    quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "product.create", "product", &targetID, map[string]any{
			"product_code": resp.ProductCode,
			"name":         resp.Name,
			"price":        resp.Price,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// @Summary      List Products
// @Description  List available stock items
// @Tags         products
// @Accept       json
// @Produce      json
// @Success      200  {object}  []productdomain.Product
// @Router       /products [get]
func (s *Server) ListProducts(c *gin.Context) {
	resp, err := s.productSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := s.productSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := productdomain.UpdateRequest{
		ID:          id,
		ProductCode: trimStringPtr(req.ProductCode),
		Name:        trimStringPtr(req.Name),
		Description: trimStringPtr(req.Description),
	}
	if req.Price != nil {
		price, err := req.Price.Float64()
		if err != nil {
			AbortWithError(c, newValidationError("price", "invalid_price", "price must be a number"))
			return
		}
		update.Price = &price
	}
	if req.Quantity != nil {
		quantity, err := req.Quantity.Int64()
		if err != nil {
			AbortWithError(c, newValidationError("quantity", "invalid_quantity", "quantity must be an integer"))
			return
		}
		update.Quantity = &quantity
	}

	resp, err := s.productSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		targetID := resp.ID.String()
		_ = s.auditSvc.AuditLog(c.Request.Context(), "product.update", "product", &targetID, map[string]any{
			"product_code": resp.ProductCode,
			"name":         resp.Name,
			"price":        resp.Price,
			"quantity":     resp.Quantity,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.productSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

func parseOptionalNumber(n json.Number) (float64, error) {
	if n == "" {
		return 0, nil
	}
	return n.Float64()
}

func parseOptionalInt(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	return n.Int64()
}

func trimStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
