// Package server exposes the projection engine as a JSON API over fasthttp.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/DavidGslade86/VCFEstimator/internal/calculation"
	"github.com/DavidGslade86/VCFEstimator/internal/config"
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	pathProjection = "/api/v1/projection"
	pathTables     = "/api/v1/tables"
	pathWorklife   = "/api/v1/worklife"
	pathVersion    = "/api/v1/version"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ProjectionResponse wraps a projection result with calculation metadata
type ProjectionResponse struct {
	CalculationMetadata domain.CalculationMetadata `json:"calculationMetadata"`
	Result              *domain.ProjectionResult   `json:"result"`
}

// VersionResponse reports the running build
type VersionResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Server serves projections over HTTP
type Server struct {
	engine   *calculation.CalculationEngine
	parser   *config.InputParser
	logger   *zap.Logger
	settings config.ServerSettings
	version  string
}

// New creates a server; a nil logger is replaced with a no-op logger
func New(settings config.ServerSettings, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger.Sugar())

	return &Server{
		engine:   engine,
		parser:   config.NewInputParser(),
		logger:   logger,
		settings: settings,
		version:  version,
	}
}

// Handler routes requests to the API handlers and logs each one
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		switch string(ctx.Path()) {
		case pathProjection:
			s.handleProjection(ctx)
		case pathTables:
			s.handleTables(ctx)
		case pathWorklife:
			s.handleWorklife(ctx)
		case pathVersion:
			s.handleVersion(ctx)
		default:
			writeError(ctx, fasthttp.StatusNotFound, "Not found")
		}

		s.logger.Info("request",
			zap.String("op", "server.Handler"),
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts the listener down
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "vcfestimator",
		MaxRequestBodySize: s.settings.MaxBodySize,
		ReadTimeout:        s.settings.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			zap.String("op", "server.ListenAndServe"),
			zap.String("address", s.settings.Address))
		errCh <- srv.ListenAndServe(s.settings.Address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("server stopping", zap.String("op", "server.ListenAndServe"))
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	start := time.Now()

	claim, err := s.parser.ParseJSON(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := s.parser.ToProjectionConfig(claim)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.RunProjection(context.Background(), cfg)
	if err != nil {
		s.logger.Error("projection failed",
			zap.String("op", "server.handleProjection"),
			zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "Projection failed")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, ProjectionResponse{
		CalculationMetadata: domain.NewCalculationMetadata(uuid.New().String(), start),
		Result:              result,
	})
}

func (s *Server) handleTables(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, calculation.References())
}

func (s *Server) handleWorklife(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	raw := ctx.QueryArgs().Peek("age")
	if len(raw) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "Query parameter 'age' is required")
		return
	}
	age, err := decimal.NewFromString(string(raw))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("Invalid age %q", raw))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, calculation.LookupWorklife(age))
}

func (s *Server) handleVersion(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, VersionResponse{Name: "vcfestimator", Version: s.version})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
