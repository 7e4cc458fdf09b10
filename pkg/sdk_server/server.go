package sdk_server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattiabonardi/endor-records/internal/middleware"
	"github.com/mattiabonardi/endor-records/internal/monitoring"
	"github.com/mattiabonardi/endor-records/pkg/sdk"
	"github.com/mattiabonardi/endor-records/pkg/sdk_records"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resource is a record collection that can mount its routes.
type Resource interface {
	Kind() sdk_records.Kind
	Register(router gin.IRouter)
}

// HealthCheck reports whether the backing store is reachable.
type HealthCheck func(ctx context.Context) error

type Endor struct {
	resources       []Resource
	logger          *sdk.Logger
	registry        *prometheus.Registry
	metrics         *monitoring.HTTPMetrics
	healthCheck     HealthCheck
	shutdownTimeout time.Duration
}

type EndorInitializer struct {
	endor *Endor
}

func NewEndorInitializer(logger *sdk.Logger) *EndorInitializer {
	return &EndorInitializer{
		endor: &Endor{
			logger:          logger,
			shutdownTimeout: 10 * time.Second,
		},
	}
}

func (b *EndorInitializer) WithResources(resources ...Resource) *EndorInitializer {
	b.endor.resources = append(b.endor.resources, resources...)
	return b
}

// WithRegistry sets the registry exposed on /metrics and used for HTTP metrics.
func (b *EndorInitializer) WithRegistry(registry *prometheus.Registry) *EndorInitializer {
	b.endor.registry = registry
	return b
}

func (b *EndorInitializer) WithHealthCheck(check HealthCheck) *EndorInitializer {
	b.endor.healthCheck = check
	return b
}

func (b *EndorInitializer) WithShutdownTimeout(timeout time.Duration) *EndorInitializer {
	b.endor.shutdownTimeout = timeout
	return b
}

func (b *EndorInitializer) Build() *Endor {
	if b.endor.registry == nil {
		b.endor.registry = prometheus.NewRegistry()
	}
	b.endor.metrics = monitoring.NewHTTPMetrics(b.endor.registry)
	return b.endor
}

// Handler builds the gin router with monitoring routes and every resource mounted.
func (h *Endor) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware(h.logger))
	router.Use(h.metrics.RequestMetricsMiddleware())

	// monitoring
	router.GET("/livez", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", h.readyz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))

	for _, resource := range h.resources {
		resource.Register(router)
		h.logger.InfoWithFields("Resource mounted", map[string]interface{}{
			"resource": resource.Kind().Name,
			"path":     "/" + resource.Kind().Path,
		})
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, sdk.NewMessage("404 page not found (uri: "+c.Request.RequestURI+", method: "+c.Request.Method+")"))
	})

	return router
}

func (h *Endor) readyz(c *gin.Context) {
	if h.healthCheck != nil {
		if err := h.healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves on addr until ctx is canceled, then drains in-flight requests.
func (h *Endor) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.InfoWithFields("HTTP server listening", map[string]interface{}{"addr": addr})
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	h.logger.Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
