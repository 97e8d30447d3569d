package trace

import (
	"context"
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// DefaultWorker owns executions started from contexts without a worker.
const DefaultWorker = "main"

type workerKey struct{}

// WithWorker tags ctx with a worker identity. Each concurrently running test
// case must use its own worker; the aggregator keeps one current execution
// per worker.
func WithWorker(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, workerKey{}, id)
}

// NewWorker tags ctx with a fresh, unique worker identity.
func NewWorker(ctx context.Context) context.Context {
	return WithWorker(ctx, newID())
}

// WorkerFrom returns the worker identity carried by ctx.
func WorkerFrom(ctx context.Context) string {
	if ctx != nil {
		if id, ok := ctx.Value(workerKey{}).(string); ok && id != "" {
			return id
		}
	}
	return DefaultWorker
}

// newID returns a 26 character ULID. crypto/rand is safe for concurrent use,
// so concurrent callers do not contend on a shared entropy source.
func newID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
