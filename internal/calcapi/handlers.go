package calcapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"calcpad/internal/calculator"
	"calcpad/internal/handlers"
	"calcpad/internal/observability"
	"calcpad/internal/session"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("calculator")

var operationNames = map[calculator.Operator]string{
	calculator.OpAdd: "add",
	calculator.OpSub: "subtract",
	calculator.OpMul: "multiply",
	calculator.OpDiv: "divide",
}

// Handler serves the calculator API. Stateless endpoints replay keys from
// the initial state; session endpoints keep state in the store.
type Handler struct {
	store *session.Store
}

func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// ---------------------------------------------------------------------------
// Binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.evaluate(w, r, calculator.OpAdd)
}

// Subtract handles POST /calculator/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.evaluate(w, r, calculator.OpSub)
}

// Multiply handles POST /calculator/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.evaluate(w, r, calculator.OpMul)
}

// Divide handles POST /calculator/divide. Dividing by zero answers
// "Infinity", the same as the keypad does.
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.evaluate(w, r, calculator.OpDiv)
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request, op calculator.Operator) {
	opName := operationNames[op]
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req EvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	a, b := strings.TrimSpace(string(req.A)), strings.TrimSpace(string(req.B))
	if err := validOperands(a, b); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid numeric input", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.operand.a", a),
		attribute.String("calculator.operand.b", b),
	)

	start := time.Now()
	result := calculator.Evaluate(a, b, op)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	recordEvaluation(ctx, opName, result, elapsed)

	resp := EvalResponse{
		Operation: opName,
		A:         a,
		B:         b,
		Result:    calculator.Stringify(result),
		Display:   calculator.Format(result),
	}

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", resp.Result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.result", resp.Result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.String("a", a),
		zap.String("b", b),
		zap.String("result", resp.Result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

func validOperands(a, b string) error {
	for _, operand := range []struct{ name, value string }{{"a", a}, {"b", b}} {
		if operand.value == "" {
			return fmt.Errorf("operand %s is missing", operand.name)
		}
		if math.IsNaN(calculator.NumericValue(operand.value)) {
			return fmt.Errorf("operand %s is not a number: %q", operand.name, operand.value)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Key replay
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. The keys are reduced from the
// initial state, one child span per key.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	keys, ok := decodeKeys(ctx, span, logger, "chain", w, r)
	if !ok {
		return
	}

	state, ignored := replay(ctx, calculator.Initial(), keys)

	span.SetAttributes(
		attribute.Int("chain.keys_count", len(keys)),
		attribute.Int("chain.ignored_count", len(ignored)),
		attribute.String("chain.result", state.Current()),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("key chain completed",
		zap.Int("keys", len(keys)),
		zap.Strings("ignored", ignored),
		zap.String("result", state.Current()),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, newStateResponse("", state, ignored))
}

func decodeKeys(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return nil, false
	}
	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "no keys provided", errors.New("keys array is empty"), http.StatusBadRequest, w)
		return nil, false
	}
	return req.Keys, true
}

// replay reduces keys onto s in order. Keys that decode to no token are
// returned in ignored and leave the state untouched.
func replay(ctx context.Context, s calculator.State, keys []string) (calculator.State, []string) {
	var ignored []string
	for i, key := range keys {
		tok, ok := calculator.ParseLabel(strings.TrimSpace(key))
		if !ok {
			ignored = append(ignored, key)
			continue
		}
		s = pressKey(ctx, i, s, tok)
	}
	return s, ignored
}

func pressKey(ctx context.Context, i int, before calculator.State, tok calculator.Token) calculator.State {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.key.%d.%s", i, tok.Kind()),
		trace.WithAttributes(
			attribute.Int("key.index", i),
			attribute.String("key.name", tok.String()),
			attribute.String("key.kind", tok.Kind().String()),
			attribute.String("state.current", before.Current()),
		),
	)
	defer span.End()

	start := time.Now()
	after := calculator.Reduce(before, tok)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	keysCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", tok.Kind().String())))

	if op, result, ok := evaluation(before, tok, after); ok {
		recordEvaluation(ctx, operationNames[op], result, elapsed)
		span.AddEvent("evaluation.complete", trace.WithAttributes(
			attribute.String("operation", operationNames[op]),
			attribute.String("result", calculator.Stringify(result)),
		))
	}

	span.SetAttributes(attribute.String("state.result", after.Current()))
	span.SetStatus(codes.Ok, "")
	return after
}

// evaluation reports the operation tok evaluated while moving from before to
// after: equals on a pending operator, or a new operator chained onto one.
func evaluation(before calculator.State, tok calculator.Token, after calculator.State) (calculator.Operator, float64, bool) {
	op := before.Operator()
	if op == calculator.OpNone {
		return calculator.OpNone, 0, false
	}
	switch tok.Kind() {
	case calculator.KindEquals:
		return op, calculator.NumericValue(after.Current()), true
	case calculator.KindOperator:
		if !before.JustEvaluated() {
			return op, calculator.NumericValue(after.Previous()), true
		}
	}
	return calculator.OpNone, 0, false
}

func recordEvaluation(ctx context.Context, opName string, result, elapsedMs float64) {
	attrs := metric.WithAttributes(attribute.String("operation", opName))
	evalCounter.Add(ctx, 1, attrs)
	evalHistogram.Record(ctx, elapsedMs, attrs)
	if !math.IsInf(result, 0) && !math.IsNaN(result) {
		resultGauge.Record(ctx, result, attrs)
	}
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := h.startSessionSpan(r, "session.create", "")
	defer span.End()

	id, state, err := h.store.Create()
	if err != nil {
		h.sessionError(ctx, span, logger, "session.create", err, w)
		return
	}

	span.SetAttributes(attribute.String("session.id", id))
	span.SetStatus(codes.Ok, "")
	logger.Info("session created", zap.String("session_id", id))

	handlers.WriteJSON(w, http.StatusCreated, newStateResponse(id, state, nil))
}

// GetSession handles GET /sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span, logger := h.startSessionSpan(r, "session.get", id)
	defer span.End()

	state, err := h.store.Get(id)
	if err != nil {
		h.sessionError(ctx, span, logger, "session.get", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, newStateResponse(id, state, nil))
}

// PressKeys handles POST /sessions/{id}/keys. The keys of one request are
// reduced together, so concurrent requests never interleave.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span, logger := h.startSessionSpan(r, "session.keys", id)
	defer span.End()

	keys, ok := decodeKeys(ctx, span, logger, "session.keys", w, r)
	if !ok {
		return
	}

	var ignored []string
	state, err := h.store.Update(id, func(s calculator.State) calculator.State {
		s, ignored = replay(ctx, s, keys)
		return s
	})
	if err != nil {
		h.sessionError(ctx, span, logger, "session.keys", err, w)
		return
	}

	span.SetAttributes(
		attribute.Int("session.keys_count", len(keys)),
		attribute.String("session.current", state.Current()),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("session keys applied",
		zap.String("session_id", id),
		zap.Int("keys", len(keys)),
		zap.Strings("ignored", ignored),
		zap.String("current", state.Current()),
	)

	handlers.WriteJSON(w, http.StatusOK, newStateResponse(id, state, ignored))
}

// DeleteSession handles DELETE /sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span, logger := h.startSessionSpan(r, "session.delete", id)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		h.sessionError(ctx, span, logger, "session.delete", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("session deleted", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) startSessionSpan(r *http.Request, name, id string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	attrs := []attribute.KeyValue{
		attribute.String("request.id", observability.RequestIDFromContext(ctx)),
	}
	if id != "" {
		attrs = append(attrs, attribute.String("session.id", id))
	}
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span, observability.LoggerWithTrace(ctx)
}

func (h *Handler) sessionError(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session not found", err, http.StatusNotFound, w)
	case errors.Is(err, session.ErrClosed):
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session store is shutting down", err, http.StatusServiceUnavailable, w)
	default:
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session store failure", err, http.StatusInternalServerError, w)
	}
}
