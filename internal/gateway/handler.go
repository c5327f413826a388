// Package gateway exposes the single HTTP endpoint that forwards translate,
// visual_explanation and infographic_prompt actions to the provider.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"cadet/internal/types"
	"cadet/internal/usage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Error messages returned in {"error": ...} bodies.
const (
	MsgMethodNotAllowed = "method not allowed"
	MsgConfiguration    = "configuration error"
	MsgInvalidAction    = "invalid action"
	MsgInvalidBody      = "invalid request body"
	MsgTextRequired     = "text is required"
)

const (
	corsAllowMethods = "GET,OPTIONS,PATCH,DELETE,POST,PUT"
	corsAllowHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version"
)

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	AllowOrigin     string
	MaxBodyBytes    int64
	ProviderTimeout time.Duration // zero = none
}

// Handler serves the gateway endpoint. A nil Actions means no provider
// credential was configured at start-up; every request then fails with a
// configuration error.
type Handler struct {
	actions *Actions
	opts    HandlerOptions
	logger  *zap.Logger
}

// NewHandler creates the endpoint handler.
func NewHandler(actions *Actions, opts HandlerOptions, logger *zap.Logger) *Handler {
	if opts.AllowOrigin == "" {
		opts.AllowOrigin = "*"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{actions: actions, opts: opts, logger: logger}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", requestID)
	h.setCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, tokens := usage.NewRequestContext(r.Context())
	status, action := h.serve(w, r.WithContext(ctx))

	h.logger.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("action", string(action)),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int64("input_tokens", tokens.Input),
		zap.Int64("output_tokens", tokens.Output))
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) (int, types.Action) {
	if r.Method != http.MethodPost {
		return writeError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed), ""
	}

	if h.actions == nil {
		return writeError(w, http.StatusInternalServerError, MsgConfiguration), ""
	}

	var req types.ActionRequest
	if h.opts.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("rejecting request body", zap.Error(err))
		return writeError(w, http.StatusBadRequest, MsgInvalidBody), ""
	}

	action, ok := types.ParseAction(string(req.Action))
	if !ok {
		return writeError(w, http.StatusBadRequest, MsgInvalidAction), action
	}
	if strings.TrimSpace(req.Text) == "" {
		return writeError(w, http.StatusBadRequest, MsgTextRequired), action
	}

	ctx := r.Context()
	if h.opts.ProviderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.ProviderTimeout)
		defer cancel()
	}

	body, err := h.actions.Run(ctx, action, req.Text)
	if err != nil {
		if errors.Is(err, ErrInvalidAction) {
			return writeError(w, http.StatusBadRequest, MsgInvalidAction), action
		}
		h.logger.Error("action failed", zap.String("action", string(action)), zap.Error(err))
		return writeError(w, http.StatusInternalServerError, err.Error()), action
	}
	return writeJSON(w, http.StatusOK, body), action
}

func (h *Handler) setCORS(w http.ResponseWriter) {
	hdr := w.Header()
	hdr.Set("Access-Control-Allow-Credentials", "true")
	hdr.Set("Access-Control-Allow-Origin", h.opts.AllowOrigin)
	hdr.Set("Access-Control-Allow-Methods", corsAllowMethods)
	hdr.Set("Access-Control-Allow-Headers", corsAllowHeaders)
}

func writeJSON(w http.ResponseWriter, status int, body any) int {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
	return status
}

func writeError(w http.ResponseWriter, status int, msg string) int {
	return writeJSON(w, status, types.ErrorResponse{Error: msg})
}
