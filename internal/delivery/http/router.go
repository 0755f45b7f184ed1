package http

import (
	"context"
	"net/http"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/delivery/http/handlers"
	"github.com/esgpulse/supplier-compliance-service/internal/delivery/http/middleware"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	// HealthCheck is called by /healthz; nil means always healthy.
	HealthCheck func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig, h *handlers.ComplianceHandler, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		if cfg.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/functions/v1/supplier-alerts", h.RunSupplierAlerts)

	api := r.Group("/api/v1")
	{
		api.GET("/companies/:company_id/alerts", h.GetCompanyAlerts)
		api.PATCH("/alerts/:id/status", h.UpdateAlertStatus)
		api.POST("/suppliers/:id/reactivate", h.ReactivateSupplier)
		api.GET("/scan-runs", h.GetScanRuns)
	}

	return r
}
