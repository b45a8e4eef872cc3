package httpcontext

import (
	"context"
	"time"

	"github.com/google/uuid"

	appLogger "github.com/cantina/adminctl/pkg/logger"
)

// Key represents a context value key exported for reuse.
type Key string

const KeyRequestID Key = "request_id"

// Adapter derives per-call contexts for outbound API requests, attaching a
// deadline and a correlation ID that the transport client echoes as the
// X-Request-ID header.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Attach wraps the parent context with the adapter's timeout and a fresh
// request ID unless one is already present.
func (a *Adapter) Attach(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithTimeout(parent, a.timeout)

	if RequestID(ctx) == "" {
		reqID := uuid.NewString()
		ctx = context.WithValue(ctx, KeyRequestID, reqID)
		ctx = appLogger.ContextWithRequestID(ctx, reqID)
	}

	return ctx, cancel
}

// RequestID returns the correlation ID carried by the context, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if reqID, ok := ctx.Value(KeyRequestID).(string); ok {
		return reqID
	}
	return ""
}
