// Package server wires the HTTP surface: routing, middleware, and graceful
// lifecycle for the marketplace API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/emberhall/bazaar/internal/account"
	"github.com/emberhall/bazaar/internal/auction"
	"github.com/emberhall/bazaar/internal/database"
	"github.com/emberhall/bazaar/internal/handler"
	"github.com/emberhall/bazaar/internal/identity"
	"github.com/emberhall/bazaar/internal/logger"
	"github.com/emberhall/bazaar/internal/metrics"
	"github.com/emberhall/bazaar/internal/trade"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	tradeService   trade.Service
	auctionService auction.Service
	accountService account.Service
}

// NewServer creates a new Server instance
func NewServer(port int, jwtSecret string, trustedProxies []string, dbPool database.Pool, tradeService trade.Service, auctionService auction.Service, accountService account.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost first
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes, all behind bearer-token identity
	tradeHandler := handler.NewTradeHandler(tradeService)
	auctionHandler := handler.NewAuctionHandler(auctionService)
	accountHandler := handler.NewAccountHandler(accountService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(identity.Middleware(jwtSecret))

		r.Route("/trade", func(r chi.Router) {
			r.Post("/create", tradeHandler.HandleCreateListing)
			r.Post("/cancel", tradeHandler.HandleCancelListing)
			r.Post("/buy", tradeHandler.HandleBuy)
			r.Get("/list", tradeHandler.HandleListPublic)
			r.Get("/mine", tradeHandler.HandleListMine)
			r.Get("/get", tradeHandler.HandleGetListing)
		})

		r.Route("/auction", func(r chi.Router) {
			r.Post("/create", auctionHandler.HandleCreateAuction)
			r.Post("/bid", auctionHandler.HandleBid)
			r.Post("/settle", auctionHandler.HandleSettle)
			r.Get("/list", auctionHandler.HandleListPublic)
			r.Get("/mine", auctionHandler.HandleListMine)
			r.Get("/bids", auctionHandler.HandleListMyBids)
			r.Get("/get", auctionHandler.HandleGetAuction)
		})

		r.Route("/account", func(r chi.Router) {
			r.Get("/balance", accountHandler.HandleGetBalance)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:         dbPool,
		tradeService:   tradeService,
		auctionService: auctionService,
		accountService: accountService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for debug logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
