package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	context_ "github.com/AyoPrez/sobuu-sub000/internal/infra/context"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/metrics"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/session"
)

var (
	// ErrRequestPanicked wraps a panic recovered from a request.
	ErrRequestPanicked = errors.New("request panicked")
	// ErrMissingRequest is returned for a call built without a request.
	ErrMissingRequest = errors.New("call has no request")
)

// Request performs the network part of a call with the resolved credential.
type Request[T any] func(ctx context.Context, credential domain.Credential) (*http_.Response[T], error)

// Call describes one remote operation.
type Call[T any, E Kind] struct {
	// Operation names the call in logs and metrics.
	Operation string
	// Credential is sent with the request. Ignored for anonymous calls.
	Credential domain.Credential
	// Anonymous calls run without a credential.
	Anonymous bool
	// Checks run in order before any I/O.
	Checks  []Check[E]
	Request Request[T]
}

// Executor runs calls for one feature and classifies their results.
type Executor[E Kind] struct {
	taxonomy Taxonomy[E]
	metrics  *metrics.Metrics
	log      logging.Logger
}

type executorOptions struct {
	metrics *metrics.Metrics
	log     logging.Logger
}

// Option configures an Executor.
type Option func(*executorOptions)

// WithMetrics records call counts, durations and invalidations in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *executorOptions) {
		o.metrics = m
	}
}

// WithLogger replaces the default logger.
func WithLogger(log logging.Logger) Option {
	return func(o *executorOptions) {
		o.log = log
	}
}

// NewExecutor creates an Executor for the given taxonomy.
func NewExecutor[E Kind](taxonomy Taxonomy[E], opts ...Option) *Executor[E] {
	//nolint:exhaustruct
	options := executorOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if options.log == nil {
		options.log = logging.GetLogger("remote." + taxonomy.Feature)
	}

	return &Executor[E]{
		taxonomy: taxonomy,
		metrics:  options.metrics,
		log:      options.log,
	}
}

// Taxonomy returns the taxonomy the executor classifies with.
func (ex *Executor[E]) Taxonomy() Taxonomy[E] {
	return ex.taxonomy
}

// Execute runs call and classifies its result. It never returns a Go error:
// every failure is a member of the executor's taxonomy.
func Execute[T any, E Kind](ctx context.Context, ex *Executor[E], call Call[T, E]) (out Outcome[T, E]) {
	ctx = context_.WithCall(ctx, ex.taxonomy.Feature, call.Operation)
	ctx, _ = context_.EnsureTraceID(ctx)

	start := time.Now()

	defer func() {
		result := metrics.ResultSuccess
		if kind, failed := out.Err(); failed {
			result = kind.Error()
		}

		ex.record(ctx, call.Operation, result, time.Since(start))
	}()

	if kind, ok := First(call.Checks...); !ok {
		return Failure[T](kind)
	}

	credential := call.Credential
	if call.Anonymous {
		credential = ""
	} else if credential.IsBlank() {
		return Failure[T](ex.taxonomy.InvalidSessionToken)
	}

	resp, err := invoke(ctx, ex.log, call.Request, credential)
	if err != nil {
		var statusErr *http_.StatusError
		if errors.As(err, &statusErr) {
			return Failure[T](ex.taxonomy.ClassifyStatus(statusErr.StatusCode))
		}

		ex.log.DebugContext(ctx, "request failed", "error", err)

		return Failure[T](ex.taxonomy.Unknown)
	}

	if resp == nil {
		return Success[T, E](nil)
	}

	if resp.Failed() {
		switch resp.StatusCode {
		case http.StatusUnauthorized, StatusInvalidSession:
			return Failure[T](ex.taxonomy.ClassifyStatus(resp.StatusCode))
		}

		return Failure[T](ex.classifyBody(ctx, resp.ErrorBody))
	}

	return Success[T, E](resp.Payload)
}

// ExecuteWithSession runs call with the credential held by sess.
// Without a credential it fails with InvalidSessionToken and performs no call.
// A server-reported InvalidSessionToken invalidates sess, unless the stored credential
// changed while the call was in flight.
func ExecuteWithSession[T any, E Kind](
	ctx context.Context,
	sess *session.Session,
	ex *Executor[E],
	call Call[T, E],
) Outcome[T, E] {
	credential, ok := sess.Credential(ctx)
	if !ok {
		ex.log.DebugContext(ctx, "no session", logging.Group("rpc",
			"feature", ex.taxonomy.Feature,
			"operation", call.Operation,
		))

		return Failure[T](ex.taxonomy.InvalidSessionToken)
	}

	call.Credential = credential
	call.Anonymous = false

	out := Execute(ctx, ex, call)

	if kind, failed := out.Err(); failed && kind == ex.taxonomy.InvalidSessionToken {
		ex.log.InfoContext(ctx, "session rejected by backend", logging.Group("rpc",
			"feature", ex.taxonomy.Feature,
			"operation", call.Operation,
		))

		if sess.InvalidateIf(ctx, credential) {
			ex.metrics.ObserveInvalidation(ex.taxonomy.Feature)
		}
	}

	return out
}

func invoke[T any](
	ctx context.Context,
	log logging.Logger,
	request Request[T],
	credential domain.Credential,
) (resp *http_.Response[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "panic in request", "panic", r, "stack", string(debug.Stack()))

			resp, err = nil, fmt.Errorf("%w: %v", ErrRequestPanicked, r)
		}
	}()

	if request == nil {
		return nil, ErrMissingRequest
	}

	return request(ctx, credential)
}

type errorBody struct {
	Code  *int   `json:"code"`
	Error string `json:"error"`
}

func (ex *Executor[E]) classifyBody(ctx context.Context, body []byte) E {
	var parsed errorBody

	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Code == nil {
		ex.log.DebugContext(ctx, "unparseable error body", "error", err)

		return ex.taxonomy.Unknown
	}

	return ex.taxonomy.Classify(*parsed.Code)
}

func (ex *Executor[E]) record(ctx context.Context, operation, result string, duration time.Duration) {
	ex.metrics.ObserveCall(ex.taxonomy.Feature, operation, result, duration)

	if result != metrics.ResultSuccess {
		ex.log.InfoContext(ctx, "call failed", "kind", result, "duration", duration)
	} else {
		ex.log.DebugContext(ctx, "call succeeded", "duration", duration)
	}
}
