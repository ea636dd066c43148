package elemk

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
)

var traceCounter int64

// NextTraceSeq a global, increasing sequence number for trace records
func NextTraceSeq() int64 {
	return atomic.AddInt64(&traceCounter, 1)
}

// Trace starts a diagnostic record for op on the logger attached to ctx. With
// no logger attached the record is discarded.
func Trace(ctx context.Context, op string) *zerolog.Event {
	return log.Ctx(ctx).Debug().
		Str("op", op).
		Str("trace_id", uuid.NewV4().String()).
		Int64("seq", NextTraceSeq())
}
