package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/fmis/internal/audit"
	auditdomain "github.com/smallbiznis/fmis/internal/audit/domain"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/communitytax"
	"github.com/smallbiznis/fmis/internal/config"
	"github.com/smallbiznis/fmis/internal/disbursement"
	disbursementdomain "github.com/smallbiznis/fmis/internal/disbursement/domain"
	"github.com/smallbiznis/fmis/internal/docnumber"
	"github.com/smallbiznis/fmis/internal/obligation"
	obligationdomain "github.com/smallbiznis/fmis/internal/obligation/domain"
	"github.com/smallbiznis/fmis/internal/observability"
	obslogger "github.com/smallbiznis/fmis/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/fmis/internal/observability/metrics"
	obstracing "github.com/smallbiznis/fmis/internal/observability/tracing"
	"github.com/smallbiznis/fmis/internal/payee"
	"github.com/smallbiznis/fmis/internal/providers/pdf"
	"github.com/smallbiznis/fmis/internal/reference"
	refdomain "github.com/smallbiznis/fmis/internal/reference/domain"
	"github.com/smallbiznis/fmis/internal/tax"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	docnumber.Module,
	tax.Module,
	reference.Module,
	payee.Module,
	pdf.Module,
	obligation.Module,
	disbursement.Module,
	communitytax.Module,
	audit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, cfg config.Config, httpMetrics *obsmetrics.Metrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	// Amounts arrive as JSON numbers; keep their exact text.
	binding.EnableDecoderUseNumber = true

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, cfg config.Config, httpMetrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, cfg, httpMetrics)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-User", "traceparent"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	clock           clock.Clock
	rates           *config.RatesConfigHolder
	taxes           taxdomain.Resolver
	taxSvc          taxdomain.Service
	referenceSvc    refdomain.Service
	obligationSvc   obligationdomain.Service
	disbursementSvc disbursementdomain.Service
	communityTaxSvc communitytax.Service
	auditSvc        auditdomain.Service
	metrics         *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Clock           clock.Clock
	Rates           *config.RatesConfigHolder
	Taxes           taxdomain.Resolver
	TaxSvc          taxdomain.Service
	ReferenceSvc    refdomain.Service
	ObligationSvc   obligationdomain.Service
	DisbursementSvc disbursementdomain.Service
	CommunityTaxSvc communitytax.Service
	AuditSvc        auditdomain.Service `optional:"true"`
	Metrics         *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		clock:           p.Clock,
		rates:           p.Rates,
		taxes:           p.Taxes,
		taxSvc:          p.TaxSvc,
		referenceSvc:    p.ReferenceSvc,
		obligationSvc:   p.ObligationSvc,
		disbursementSvc: p.DisbursementSvc,
		communityTaxSvc: p.CommunityTaxSvc,
		auditSvc:        p.AuditSvc,
		metrics:         p.Metrics,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Calculator --------
	api.POST("/calculator/line-items", s.CalculateLineItems)
	api.GET("/calculator/amount-in-words", s.AmountInWords)

	// -------- Community Tax --------
	api.GET("/community-tax/interest-rate", s.CommunityTaxInterestRate)
	api.POST("/community-tax/assess", s.AssessCommunityTax)
	api.GET("/community-tax/certificates", s.ListCommunityTaxCertificates)
	api.POST("/community-tax/certificates", s.IssueCommunityTaxCertificate)
	api.GET("/community-tax/certificates/:id", s.GetCommunityTaxCertificate)

	// -------- Tax Codes --------
	api.GET("/tax-codes", s.ListTaxCodes)
	api.POST("/tax-codes", s.CreateTaxCode)
	api.GET("/tax-codes/:code", s.GetTaxCode)
	api.PATCH("/tax-codes/:id", s.UpdateTaxCode)
	api.POST("/tax-codes/:id/disable", s.DisableTaxCode)

	// -------- Reference Data --------
	api.GET("/departments", s.ListDepartments)
	api.POST("/departments", s.CreateDepartment)
	api.GET("/departments/:id", s.GetDepartment)
	api.GET("/fiscal-years", s.ListFiscalYears)
	api.POST("/fiscal-years", s.CreateFiscalYear)
	api.GET("/fiscal-years/current", s.GetCurrentFiscalYear)
	api.GET("/employees", s.ListEmployees)
	api.POST("/employees", s.CreateEmployee)
	api.GET("/employees/:id", s.GetEmployee)
	api.GET("/vendors", s.ListVendors)
	api.POST("/vendors", s.CreateVendor)
	api.GET("/vendors/:id", s.GetVendor)

	// -------- Obligation Requests --------
	api.GET("/obligation-requests", s.ListObligationRequests)
	api.POST("/obligation-requests", s.CreateObligationRequest)
	api.POST("/obligation-requests/preview", s.PreviewObligationRequest)
	api.GET("/obligation-requests/:id", s.GetObligationRequest)
	api.PATCH("/obligation-requests/:id", s.UpdateObligationRequest)
	api.POST("/obligation-requests/:id/submit", s.SubmitObligationRequest)
	api.POST("/obligation-requests/:id/approve", s.ApproveObligationRequest)
	api.POST("/obligation-requests/:id/cancel", s.CancelObligationRequest)
	api.POST("/obligation-requests/:id/attachments", s.AddObligationAttachment)
	api.GET("/obligation-requests/:id/pdf", s.RenderObligationRequest)

	// -------- Disbursement Vouchers --------
	api.GET("/disbursement-vouchers", s.ListDisbursementVouchers)
	api.POST("/disbursement-vouchers", s.CreateDisbursementVoucher)
	api.GET("/disbursement-vouchers/:id", s.GetDisbursementVoucher)
	api.POST("/disbursement-vouchers/:id/certify", s.CertifyDisbursementVoucher)
	api.POST("/disbursement-vouchers/:id/approve", s.ApproveDisbursementVoucher)
	api.POST("/disbursement-vouchers/:id/pay", s.PayDisbursementVoucher)
	api.POST("/disbursement-vouchers/:id/cancel", s.CancelDisbursementVoucher)
	api.GET("/disbursement-vouchers/:id/pdf", s.RenderDisbursementVoucher)

	// -------- Audit --------
	if s.auditSvc != nil {
		api.GET("/audit-logs", s.ListAuditLogs)
	}
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
