// pkg/engine/fault.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-armada/pkg/entity"
	"github.com/opd-ai/go-armada/pkg/logging"
)

// errStateReset marks one tick in which a vessel's physics state had to be
// reset after going non-finite.
var errStateReset = errors.New("vessel state reset")

// maxConsecutiveResets is how many ticks in a row a vessel's state may need
// resetting before the isolator retires the vessel.
const maxConsecutiveResets = 3

// faultIsolator tracks numeric faults per vessel through a circuit breaker.
// A single NaN blip is absorbed silently; a vessel whose state keeps going
// non-finite every tick has corrupted inputs somewhere, and the isolator
// trips so the game can retire it instead of resetting it forever.
type faultIsolator struct {
	breakers map[entity.ID]*gobreaker.CircuitBreaker
	logger   *logging.Logger
}

// newFaultIsolator creates a fault isolator
func newFaultIsolator(logger *logging.Logger) *faultIsolator {
	return &faultIsolator{
		breakers: make(map[entity.ID]*gobreaker.CircuitBreaker),
		logger:   logger,
	}
}

// record feeds one tick's sanitize outcome for a vessel into its breaker and
// reports whether the breaker has tripped, meaning the vessel should be
// retired from the battle.
func (f *faultIsolator) record(id entity.ID, reset bool) bool {
	breaker := f.breakerFor(id)

	_, err := breaker.Execute(func() (interface{}, error) {
		if reset {
			return nil, errStateReset
		}
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) {
		return true
	}
	return breaker.State() == gobreaker.StateOpen
}

// forget drops the breaker of a removed vessel
func (f *faultIsolator) forget(id entity.ID) {
	delete(f.breakers, id)
}

// breakerFor returns the vessel's breaker, creating it on first use
func (f *faultIsolator) breakerFor(id entity.ID) *gobreaker.CircuitBreaker {
	if breaker, ok := f.breakers[id]; ok {
		return breaker
	}

	logger := f.logger
	settings := gobreaker.Settings{
		Name: fmt.Sprintf("vessel-%d", uint64(id)),
		// One clean hour of game time would be absurd here; the breaker
		// never half-opens because a tripped vessel is removed immediately.
		Timeout: time.Hour,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxConsecutiveResets
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "fault isolator state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	breaker := gobreaker.NewCircuitBreaker(settings)
	f.breakers[id] = breaker
	return breaker
}
