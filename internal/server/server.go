// Package server exposes the optimizer over HTTP: a JSON API for one-shot
// runs and a websocket endpoint that streams per-character progress.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nicanica/mods-optimizer/internal/config"
	"github.com/nicanica/mods-optimizer/internal/optimizer"
	"github.com/nicanica/mods-optimizer/internal/profile"
	"github.com/nicanica/mods-optimizer/pkg/constants"
	"github.com/nicanica/mods-optimizer/pkg/optimization"
	"github.com/nicanica/mods-optimizer/pkg/output"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the optimizer API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// One-shot optimization API endpoint
	mux.HandleFunc("/api/optimize", h.handleOptimize)

	// Websocket endpoint streaming per-character progress
	mux.HandleFunc("/api/optimize/ws", h.handleOptimizeWS)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// optimizeRequest is the JSON payload accepted by both the HTTP and the
// websocket endpoints. Profile carries the raw roster/inventory export.
type optimizeRequest struct {
	Profile         json.RawMessage         `json:"profile"`
	Selection       []config.SelectionEntry `json:"selection"`
	ChangeThreshold float64                 `json:"changeThreshold"`
	LockUnselected  bool                    `json:"lockUnselected"`
	BeamWidth       int                     `json:"beamWidth"`
	Workers         int                     `json:"workers"`
}

type optimizeResponse struct {
	Result   *optimization.RunResult `json:"result"`
	CSV      string                  `json:"csv"`
	Duration string                  `json:"duration"`
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleOptimize")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleOptimize")
		return
	}

	result, err := h.runOptimize(r.Context(), req, nil)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleOptimize")
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("optimization computed",
		zap.String("op", "server.handleOptimize"),
		zap.Int("characters", len(result.Characters)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, optimizeResponse{
		Result:   result,
		CSV:      output.CsvString(result),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// runOptimize parses the uploaded profile, resolves the selection, and
// executes a run. Shared by the HTTP and websocket endpoints.
func (h *handler) runOptimize(ctx context.Context, req optimizeRequest, progress optimizer.ProgressFunc) (*optimization.RunResult, error) {
	if len(req.Profile) == 0 {
		return nil, fmt.Errorf("missing profile")
	}

	snap, err := profile.ParseSnapshot(req.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	conf := &config.Configuration{
		Optimizer: config.OptimizerConfig{
			ChangeThreshold: req.ChangeThreshold,
			BeamWidth:       req.BeamWidth,
			Workers:         req.Workers,
			LockUnselected:  req.LockUnselected,
		},
		Selection: req.Selection,
	}

	input, err := config.BuildRunInput(conf, snap)
	if err != nil {
		return nil, err
	}

	runner := optimizer.NewRunner(h.logger, optimizer.Options{
		BeamWidth: req.BeamWidth,
		Workers:   req.Workers,
	})
	return runner.Run(ctx, input, progress)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("optimize request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
