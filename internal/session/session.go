// Package session holds the mutable inputs of interactive planning
// sessions. Input edits arrive faster than itineraries are worth
// computing, so each session debounces recomputation and tags every run
// with a generation id: a superseded run's result is discarded no matter
// when it lands. Replace, don't queue.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/engine"
)

// DefaultDebounce is how long a session waits after the last input edit
// before recomputing.
const DefaultDebounce = 450 * time.Millisecond

// ComputeFunc turns the session's current inputs into an itinerary.
// It runs on a background goroutine; the context is cancelled when a newer
// generation supersedes the run.
type ComputeFunc func(ctx context.Context, in engine.Input) (domain.Itinerary, error)

// ComputedItinerary is one finished recomputation.
type ComputedItinerary struct {
	Generation int64            `json:"generation"`
	ComputedAt time.Time        `json:"computed_at"`
	Itinerary  domain.Itinerary `json:"itinerary"`
}

// Planner is one session: the current inputs plus the latest computed
// itinerary. All methods are safe for concurrent use.
type Planner struct {
	compute   ComputeFunc
	log       *slog.Logger
	debounced func(f func())

	mu     sync.Mutex
	input  engine.Input
	gen    int64
	cancel context.CancelFunc
	last   *ComputedItinerary
}

// NewPlanner returns a session planner that recomputes through compute
// after input edits settle for wait.
func NewPlanner(compute ComputeFunc, wait time.Duration, log *slog.Logger) *Planner {
	return &Planner{
		compute:   compute,
		log:       log,
		debounced: debounce.New(wait),
	}
}

// UpdateSegments replaces the route legs. The caller hands over ownership
// of the slice.
func (p *Planner) UpdateSegments(segs []domain.RouteSegment) {
	p.mutate(func(in *engine.Input) { in.Segments = segs })
}

// UpdateSettings replaces the trip settings.
func (p *Planner) UpdateSettings(s domain.TripSettings) {
	p.mutate(func(in *engine.Input) { in.Settings = s })
}

// UpdateBudget replaces the budget.
func (p *Planner) UpdateBudget(b domain.TripBudget) {
	p.mutate(func(in *engine.Input) { in.Budget = b })
}

// UpdateVehicle replaces the vehicle profile; nil clears it.
func (p *Planner) UpdateVehicle(v *domain.VehicleProfile) {
	p.mutate(func(in *engine.Input) { in.Vehicle = v })
}

// UpdateDismissedStops replaces the set of dismissed planner stops.
func (p *Planner) UpdateDismissedStops(keys []domain.StopKey) {
	p.mutate(func(in *engine.Input) { in.DismissedStops = keys })
}

// Snapshot returns a copy of the current inputs.
func (p *Planner) Snapshot() engine.Input {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

// Latest returns the most recently computed itinerary, or false when no
// generation has finished yet.
func (p *Planner) Latest() (ComputedItinerary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return ComputedItinerary{}, false
	}
	return *p.last, true
}

func (p *Planner) mutate(apply func(in *engine.Input)) {
	p.mu.Lock()
	apply(&p.input)
	p.mu.Unlock()
	p.debounced(p.recompute)
}

// recompute starts a new generation, cancelling whichever run is still in
// flight. The finished run only publishes if its generation is still the
// newest one, so out-of-order completions can never clobber fresher state.
func (p *Planner) recompute() {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	input := p.input
	p.mu.Unlock()

	go func() {
		defer cancel()
		it, err := p.compute(ctx, input)

		p.mu.Lock()
		defer p.mu.Unlock()
		if gen != p.gen {
			return
		}
		if err != nil {
			p.log.Warn("session recompute failed", "generation", gen, "error", err)
			return
		}
		p.last = &ComputedItinerary{
			Generation: gen,
			ComputedAt: time.Now().UTC(),
			Itinerary:  it,
		}
	}()
}

// Manager tracks live sessions by id.
type Manager struct {
	compute ComputeFunc
	wait    time.Duration
	log     *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Planner
}

// NewManager returns an empty session manager. wait is the per-session
// debounce interval; pass DefaultDebounce outside of tests.
func NewManager(compute ComputeFunc, wait time.Duration, log *slog.Logger) *Manager {
	return &Manager{
		compute:  compute,
		wait:     wait,
		log:      log,
		sessions: make(map[uuid.UUID]*Planner),
	}
}

// Create starts a fresh session and returns its id.
func (m *Manager) Create() uuid.UUID {
	id := uuid.New()
	p := NewPlanner(m.compute, m.wait, m.log)

	m.mu.Lock()
	m.sessions[id] = p
	m.mu.Unlock()
	return id
}

// Get returns the session with the given id.
func (m *Manager) Get(id uuid.UUID) (*Planner, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.sessions[id]
	return p, ok
}

// Delete discards a session. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
