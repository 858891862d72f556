package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/parceldyn/shipment-balancer/internal/balancer"
	"github.com/parceldyn/shipment-balancer/internal/metrics"
	"github.com/parceldyn/shipment-balancer/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Strategy names accepted by the balance and compare endpoints.
const (
	StrategyLDM    = "ldm"
	StrategyGreedy = "greedy"
)

const defaultMaxWeightsPerRequest = 10000

// Handler wires balancer strategies and storage dependencies into HTTP handlers.
type Handler struct {
	ldm     balancer.Strategy
	greedy  balancer.Strategy
	storage storage.Storage
	metrics *metrics.Metrics

	maxWeights int
	clock      func() time.Time

	mu                      sync.RWMutex
	containerCountUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMetrics attaches Prometheus instruments to the handlers.
func WithMetrics(m *metrics.Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithMaxWeights caps how many weights a single request may carry.
func WithMaxWeights(limit int) HandlerOption {
	return func(h *Handler) {
		if limit > 0 {
			h.maxWeights = limit
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(ldm, greedy balancer.Strategy, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		ldm:        ldm,
		greedy:     greedy,
		storage:    store,
		maxWeights: defaultMaxWeightsPerRequest,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.containerCountUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetContainerCount(w http.ResponseWriter, r *http.Request) {
	_ = r
	count, err := h.storage.GetContainerCount()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := containerCountResponse{
		ContainerCount: count,
		UpdatedAt:      h.currentContainerCountUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutContainerCount(w http.ResponseWriter, r *http.Request) {
	var req containerCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if err := h.storage.SetContainerCount(req.ContainerCount); err != nil {
		if errors.Is(err, storage.ErrInvalidContainerCount) {
			writeError(w, http.StatusBadRequest, "Invalid container count", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markContainerCountUpdated()

	count, err := h.storage.GetContainerCount()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := containerCountResponse{
		ContainerCount: count,
		UpdatedAt:      h.currentContainerCountUpdatedAt(),
		Message:        "Container count updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	strategyName := req.Strategy
	if strategyName == "" {
		strategyName = StrategyLDM
	}
	strategy, ok := h.strategyByName(strategyName)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid strategy",
			fmt.Sprintf("strategy must be %q or %q, got %q", StrategyLDM, StrategyGreedy, req.Strategy))
		return
	}

	items, containerCount, ok := h.validateBalanceInput(w, req, strategyName)
	if !ok {
		return
	}

	result, err := h.runStrategy(strategyName, strategy, items, containerCount)
	if err != nil {
		h.metrics.ObserveRejected(strategyName)
		if errors.Is(err, balancer.ErrInvalidContainerCount) {
			writeError(w, http.StatusBadRequest, "Invalid container count", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{
		Strategy:       strategyName,
		ContainerCount: containerCount,
		Result:         result,
	})
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if req.Strategy != "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "compare always runs both strategies; omit the strategy field")
		return
	}

	items, containerCount, ok := h.validateBalanceInput(w, req, StrategyLDM)
	if !ok {
		return
	}

	ldmResult, err := h.runStrategy(StrategyLDM, h.ldm, items, containerCount)
	if err != nil {
		h.metrics.ObserveRejected(StrategyLDM)
		writeBalanceError(w, err)
		return
	}
	greedyResult, err := h.runStrategy(StrategyGreedy, h.greedy, items, containerCount)
	if err != nil {
		h.metrics.ObserveRejected(StrategyGreedy)
		writeBalanceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, compareResponse{
		ContainerCount: containerCount,
		LDM:            ldmResult,
		Greedy:         greedyResult,
		SpreadSavings:  greedyResult.Spread - ldmResult.Spread,
	})
}

// validateBalanceInput resolves the container count and converts raw weights
// into items, writing the error response itself when validation fails.
func (h *Handler) validateBalanceInput(w http.ResponseWriter, req balanceRequest, strategyName string) ([]balancer.Item, int, bool) {
	if len(req.Weights) > h.maxWeights {
		h.metrics.ObserveRejected(strategyName)
		writeError(w, http.StatusBadRequest, "Too many weights",
			fmt.Sprintf("a single request may carry at most %d weights, got %d", h.maxWeights, len(req.Weights)))
		return nil, 0, false
	}

	containerCount := req.Containers
	if containerCount == 0 {
		stored, err := h.storage.GetContainerCount()
		if err != nil {
			writeInternalError(w, err)
			return nil, 0, false
		}
		containerCount = stored
	}
	if containerCount < 1 {
		h.metrics.ObserveRejected(strategyName)
		writeError(w, http.StatusBadRequest, "Invalid container count", balancer.ErrInvalidContainerCount.Error())
		return nil, 0, false
	}

	items, err := balancer.NewItems(req.Weights)
	if err != nil {
		h.metrics.ObserveRejected(strategyName)
		writeError(w, http.StatusBadRequest, "Invalid weights", err.Error())
		return nil, 0, false
	}

	return items, containerCount, true
}

// runStrategy executes one packing and folds the outcome into the reporting
// shape shared by the balance and compare endpoints.
func (h *Handler) runStrategy(name string, strategy balancer.Strategy, items []balancer.Item, containerCount int) (strategyResult, error) {
	start := time.Now()
	containers, err := strategy.Pack(items, containerCount)
	elapsed := time.Since(start)
	if err != nil {
		return strategyResult{}, err
	}

	spread := balancer.Spread(containers)
	h.metrics.ObserveBalance(name, elapsed.Seconds(), spread)

	out := make([]containerPayload, len(containers))
	totalWeight := 0
	for i, c := range containers {
		out[i] = containerPayload{
			ItemWeights: c.ItemWeights(),
			TotalWeight: c.TotalWeight(),
		}
		totalWeight += c.TotalWeight()
	}

	return strategyResult{
		Containers:        out,
		TotalWeight:       totalWeight,
		Spread:            spread,
		CalculationTimeMs: elapsed.Milliseconds(),
	}, nil
}

func (h *Handler) strategyByName(name string) (balancer.Strategy, bool) {
	switch name {
	case StrategyLDM:
		return h.ldm, true
	case StrategyGreedy:
		return h.greedy, true
	default:
		return nil, false
	}
}

func (h *Handler) currentContainerCountUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.containerCountUpdatedAt
}

func (h *Handler) markContainerCountUpdated() {
	h.mu.Lock()
	h.containerCountUpdatedAt = h.clock()
	h.mu.Unlock()
}

func writeBalanceError(w http.ResponseWriter, err error) {
	if errors.Is(err, balancer.ErrInvalidContainerCount) || errors.Is(err, balancer.ErrInvalidWeight) {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	writeInternalError(w, err)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type containerCountRequest struct {
	ContainerCount int `json:"containerCount"`
}

type balanceRequest struct {
	Weights    []int  `json:"weights"`
	Containers int    `json:"containers,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
}

type containerPayload struct {
	ItemWeights []int `json:"itemWeights"`
	TotalWeight int   `json:"totalWeight"`
}

type strategyResult struct {
	Containers        []containerPayload `json:"containers"`
	TotalWeight       int                `json:"totalWeight"`
	Spread            int                `json:"spread"`
	CalculationTimeMs int64              `json:"calculationTimeMs"`
}

type balanceResponse struct {
	Strategy       string         `json:"strategy"`
	ContainerCount int            `json:"containerCount"`
	Result         strategyResult `json:"result"`
}

type compareResponse struct {
	ContainerCount int            `json:"containerCount"`
	LDM            strategyResult `json:"ldm"`
	Greedy         strategyResult `json:"greedy"`
	SpreadSavings  int            `json:"spreadSavings"`
}

type containerCountResponse struct {
	ContainerCount int       `json:"containerCount"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Message        string    `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
