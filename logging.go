package asyncrt

import (
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// eventLogger is the concrete logger type a Runtime accepts via WithLogger. It is
// fixed to stumpy's Event type because stumpy is the backend this module wires by
// default; a nil *logiface.Logger[*stumpy.Event] is a valid, fully functional
// no-op (every Logger method on this package tolerates a nil receiver), so no
// separate no-op implementation is needed.
type eventLogger = *logiface.Logger[*stumpy.Event]

// NewStderrLogger returns a logger that writes newline-delimited JSON trace
// events to os.Stderr via stumpy, suitable for passing to WithLogger.
func NewStderrLogger() eventLogger {
	return stumpy.L.New(stumpy.L.WithStumpy())
}

// diagnosticRates bounds how often the high-frequency trace categories below may
// fire, so a busy runtime's trace output does not drown out everything else.
var diagnosticRates = map[time.Duration]int{
	time.Second: 20,
}

// diagCategory names a rate-limited trace event kind.
type diagCategory string

const (
	diagTaskPending    diagCategory = "task.pending"
	diagChannelBackoff diagCategory = "channel.try_later"
)

// rateLimitedEvents throttles the categories above. Fixed categories (task
// spawned/completed, scope drain, nested loop) are always logged; only
// potentially-per-poll noise goes through this limiter.
type rateLimitedEvents struct {
	limiter *catrate.Limiter
}

func newRateLimitedEvents() *rateLimitedEvents {
	return &rateLimitedEvents{limiter: catrate.NewLimiter(diagnosticRates)}
}

func (r *rateLimitedEvents) allow(category diagCategory) bool {
	_, ok := r.limiter.Allow(category)
	return ok
}

// diag bundles a Runtime's logger and rate limiter behind a couple of small
// helper methods used throughout runtime.go/scope.go/mpsc.go, so call sites read
// as intent ("log a spawn", "log a backoff") rather than repeating Level()/Log()
// boilerplate.
type diag struct {
	logger eventLogger
	rates  *rateLimitedEvents
}

func newDiag(logger eventLogger) diag {
	return diag{logger: logger, rates: newRateLimitedEvents()}
}

func (d diag) taskSpawned(name string) {
	d.logger.Debug().Str("task", name).Log("task spawned")
}

func (d diag) taskCompleted(name string) {
	d.logger.Debug().Str("task", name).Log("task completed")
}

func (d diag) reactorWait() {
	d.logger.Trace().Log("reactor wait entered")
}

func (d diag) nestedLoopEnter() {
	d.logger.Debug().Log("nested loop entered")
}

func (d diag) nestedLoopExit(parked int) {
	d.logger.Debug().Int("parked_events", parked).Log("nested loop exited")
}

func (d diag) frozenEventParked() {
	if d.rates.allow(diagTaskPending) {
		d.logger.Trace().Log("event parked on frozen task")
	}
}

func (d diag) scopeDrainStart(name string) {
	d.logger.Debug().Str("scope", name).Log("scope drain started")
}

func (d diag) scopeDrainFinish(name string) {
	d.logger.Debug().Str("scope", name).Log("scope drain finished")
}

func (d diag) channelBackoff() {
	if d.rates.allow(diagChannelBackoff) {
		d.logger.Trace().Log("channel send backed off: try later")
	}
}

func (d diag) channelRendezvous(kind string) {
	d.logger.Trace().Str("kind", kind).Log("channel rendezvous")
}
