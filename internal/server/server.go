package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/waleedsheikh30/erp-inventory/internal/audit/domain"
	"github.com/waleedsheikh30/erp-inventory/internal/cache"
	"github.com/waleedsheikh30/erp-inventory/internal/config"
	counterpartydomain "github.com/waleedsheikh30/erp-inventory/internal/counterparty/domain"
	invoicedomain "github.com/waleedsheikh30/erp-inventory/internal/invoice/domain"
	"github.com/waleedsheikh30/erp-inventory/internal/invoice/render"
	"github.com/waleedsheikh30/erp-inventory/internal/observability/logger"
	paymentdomain "github.com/waleedsheikh30/erp-inventory/internal/payment/domain"
	productdomain "github.com/waleedsheikh30/erp-inventory/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg             config.Config
	Log             *zap.Logger
	DB              *gorm.DB
	CounterpartySvc counterpartydomain.Service
	ProductSvc      productdomain.Service
	InvoiceSvc      invoicedomain.Service
	PaymentSvc      paymentdomain.Service
	AuditSvc        auditdomain.Service
	Renderer        render.Renderer
}

type Server struct {
	cfg             config.Config
	log             *zap.Logger
	db              *gorm.DB
	counterpartySvc counterpartydomain.Service
	productSvc      productdomain.Service
	invoiceSvc      invoicedomain.Service
	paymentSvc      paymentdomain.Service
	auditSvc        auditdomain.Service
	renderer        render.Renderer
	writeLimiter    *rateLimiter
	pdfCache        *cache.TTLCache[string, []byte]
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:             p.Cfg,
		log:             p.Log.Named("server"),
		db:              p.DB,
		counterpartySvc: p.CounterpartySvc,
		productSvc:      p.ProductSvc,
		invoiceSvc:      p.InvoiceSvc,
		paymentSvc:      p.PaymentSvc,
		auditSvc:        p.AuditSvc,
		renderer:        p.Renderer,
		writeLimiter:    newRateLimiter(120, time.Minute),
		pdfCache:        cache.NewTTLCache[string, []byte](),
	}
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		Logger:    log,
		SkipPaths: []string{"/healthz"},
	}))
	return r
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Use(s.rateLimitWrites())

	customers := r.Group("/customers")
	{
		customers.POST("", s.CreateCustomer)
		customers.GET("", s.ListCustomers)
		customers.GET("/:id", s.GetCustomerByID)
		customers.PUT("/:id/name", s.UpdateCustomerName)
		customers.DELETE("/:id", s.DeleteCustomer)
		customers.POST("/:id/pay", s.PayCustomer)
	}

	vendors := r.Group("/vendors")
	{
		vendors.POST("", s.CreateVendor)
		vendors.GET("", s.ListVendors)
		vendors.GET("/:id", s.GetVendorByID)
		vendors.PUT("/:id/name", s.UpdateVendorName)
		vendors.DELETE("/:id", s.DeleteVendor)
		vendors.POST("/:id/pay", s.PayVendor)
	}

	products := r.Group("/products")
	{
		products.POST("", s.CreateProduct)
		products.GET("", s.ListProducts)
		products.GET("/:id", s.GetProductByID)
		products.PUT("/:id", s.UpdateProduct)
		products.DELETE("/:id", s.DeleteProduct)
	}

	invoices := r.Group("/invoices")
	{
		invoices.POST("", s.CreateInvoice)
		invoices.GET("", s.ListInvoices)
		invoices.GET("/:id", s.GetInvoiceByID)
		invoices.GET("/download/:invoiceId", s.DownloadInvoice)
	}

	payments := r.Group("/payments")
	{
		payments.GET("", s.ListPayments)
		payments.GET("/:id", s.GetPaymentByID)
	}

	r.GET("/audit-logs", s.ListAuditLogs)

	if !s.cfg.IsProduction() {
		r.POST("/internal/test/cleanup", s.TestCleanup)
	}
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine, s *Server) {
	s.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)
