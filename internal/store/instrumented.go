package store

import (
	"context"
	"errors"
	"time"

	"github.com/recordkit/recordsvc/pkg/metrics"
)

// InstrumentedBackend wraps any Backend and records latency and failures
// of each operation under the given document label.
type InstrumentedBackend struct {
	Backend
	document string
}

// Compile-time check to ensure InstrumentedBackend implements Backend.
var _ Backend = (*InstrumentedBackend)(nil)

func NewInstrumented(document string, b Backend) *InstrumentedBackend {
	return &InstrumentedBackend{Backend: b, document: document}
}

// Unwrap returns the wrapped backend.
func (i *InstrumentedBackend) Unwrap() Backend { return i.Backend }

func (i *InstrumentedBackend) Read(ctx context.Context) ([]byte, error) {
	start := time.Now()
	b, err := i.Backend.Read(ctx)
	// a missing document is an expected state, not a failure
	i.observe("read", start, err, errors.Is(err, ErrNotExist))
	return b, err
}

func (i *InstrumentedBackend) Write(ctx context.Context, data []byte) error {
	start := time.Now()
	err := i.Backend.Write(ctx, data)
	i.observe("write", start, err, false)
	return err
}

func (i *InstrumentedBackend) observe(op string, start time.Time, err error, expected bool) {
	metrics.StoreOperationDuration.WithLabelValues(i.document, op).Observe(time.Since(start).Seconds())
	if err != nil && !expected {
		metrics.StoreOperationErrors.WithLabelValues(i.document, op).Inc()
	}
}
