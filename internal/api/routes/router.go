package routes

import (
	"net/http"

	"github.com/jaassure/proposal-intelligence/internal/api/handlers"
	"github.com/jaassure/proposal-intelligence/internal/api/middleware"
	"github.com/jaassure/proposal-intelligence/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	queryHandler  *handlers.QueryHandler
	recordHandler *handlers.RecordHandler
	healthHandler *handlers.HealthHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	queryHandler *handlers.QueryHandler,
	recordHandler *handlers.RecordHandler,
	healthHandler *handlers.HealthHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		queryHandler:  queryHandler,
		recordHandler: recordHandler,
		healthHandler: healthHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Query endpoint
	r.mux.HandleFunc("POST /query", r.queryHandler.HandleQuery)

	// Record inspection endpoints
	r.mux.HandleFunc("GET /api/records", r.recordHandler.ListRecords)
	r.mux.HandleFunc("GET /api/records/{id}", r.recordHandler.GetRecord)
	r.mux.HandleFunc("GET /api/chunks/search", r.recordHandler.SearchChunks)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
