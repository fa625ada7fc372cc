package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// ClassifyPOIs returns copies of pois with bucket, tier and (on round
// trips) mirror index assigned, and the action state defaulted to pending.
// Terminal action states passed in by the caller are preserved untouched.
//
// Tier assignment is monotonic in detour time: holding everything else
// fixed, a larger detour can only move a POI to a worse tier.
func (e *Engine) ClassifyPOIs(pois []domain.DiscoveredPOI, destination domain.Location, settings domain.TripSettings, totalSegments int) []domain.DiscoveredPOI {
	out := make([]domain.DiscoveredPOI, len(pois))
	for i, p := range pois {
		p.Bucket = domain.BucketAlongWay
		if destination.HasCoordinates() &&
			haversineKm(p.Lat, p.Lng, destination.Lat, destination.Lng) <= e.policy.DestinationRadiusKm {
			p.Bucket = domain.BucketDestination
		}
		p.Tier = e.tierFor(p)
		if !p.ActionState.Valid() {
			p.ActionState = domain.POIPending
		}
		if settings.IsRoundTrip && p.SegmentIndex != nil && *p.SegmentIndex < totalSegments/2 {
			m := totalSegments - 1 - *p.SegmentIndex
			p.MirrorSegmentIndex = &m
		}
		out[i] = p
	}
	return out
}

func (e *Engine) tierFor(p domain.DiscoveredPOI) domain.POITier {
	switch {
	case p.DetourTimeMinutes <= e.policy.NoBrainerMaxDetourMinutes &&
		p.FitsInBreakWindow &&
		p.RankingScore >= e.policy.NoBrainerMinScore:
		return domain.TierNoBrainer
	case p.DetourTimeMinutes <= e.policy.WorthDetourMaxDetourMinutes &&
		p.RankingScore >= e.policy.WorthDetourMinScore:
		return domain.TierWorthDetour
	default:
		return domain.TierIfTime
	}
}

// FilterByTimeBudget selects POIs until their cumulative detour time would
// exceed budgetMinutes. Candidates are taken tier-priority-first, then in
// route order; the scan stops at the first POI that does not fit, so a
// cheaper POI further down the order is still excluded. Dismissed POIs are
// skipped entirely and consume no budget. The returned slice preserves the
// selection order.
func (e *Engine) FilterByTimeBudget(pois []domain.DiscoveredPOI, budgetMinutes int) []domain.DiscoveredPOI {
	if budgetMinutes < 0 {
		budgetMinutes = 0
	}
	if budgetMinutes > e.policy.MaxTimeBudgetMinutes {
		budgetMinutes = e.policy.MaxTimeBudgetMinutes
	}

	candidates := make([]domain.DiscoveredPOI, 0, len(pois))
	for _, p := range pois {
		if p.ActionState != domain.POIDismissed {
			candidates = append(candidates, p)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if ra, rb := a.Tier.Rank(), b.Tier.Rank(); ra != rb {
			return ra < rb
		}
		if oa, ob := routeOrder(a), routeOrder(b); oa != ob {
			return oa < ob
		}
		if a.DetourTimeMinutes != b.DetourTimeMinutes {
			return a.DetourTimeMinutes < b.DetourTimeMinutes
		}
		return a.ID < b.ID
	})

	var selected []domain.DiscoveredPOI
	used := 0
	for _, p := range candidates {
		if used+p.DetourTimeMinutes > budgetMinutes {
			break
		}
		used += p.DetourTimeMinutes
		selected = append(selected, p)
	}
	return selected
}

// DefaultTimeBudget returns the policy's stop time budget for requests
// that do not set one.
func (e *Engine) DefaultTimeBudget() int {
	return e.policy.DefaultTimeBudgetMinutes
}

// AddAllNoBrainers marks every pending no-brainer inside the
// budget-filtered set as added and returns the updated full set. Dismissed
// and already-added POIs are left alone.
func (e *Engine) AddAllNoBrainers(pois []domain.DiscoveredPOI, budgetMinutes int) []domain.DiscoveredPOI {
	eligible := make(map[string]bool)
	for _, p := range e.FilterByTimeBudget(pois, budgetMinutes) {
		if p.Tier == domain.TierNoBrainer && p.ActionState == domain.POIPending {
			eligible[p.ID] = true
		}
	}
	out := make([]domain.DiscoveredPOI, len(pois))
	for i, p := range pois {
		if eligible[p.ID] {
			p.ActionState = domain.POIAdded
		}
		out[i] = p
	}
	return out
}

// ApplyPOIAction moves one POI out of pending. Only pending→added and
// pending→dismissed are legal; both are terminal for the session.
func (e *Engine) ApplyPOIAction(pois []domain.DiscoveredPOI, id string, state domain.POIActionState) ([]domain.DiscoveredPOI, error) {
	if !state.Terminal() {
		return nil, fmt.Errorf("engine.Engine.ApplyPOIAction: state %q: %w", state, domain.ErrValidation)
	}
	out := make([]domain.DiscoveredPOI, len(pois))
	copy(out, pois)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if out[i].ActionState.Terminal() {
			return nil, fmt.Errorf("engine.Engine.ApplyPOIAction: poi %s already %s: %w", id, out[i].ActionState, domain.ErrValidation)
		}
		out[i].ActionState = state
		return out, nil
	}
	return nil, fmt.Errorf("engine.Engine.ApplyPOIAction: poi %s: %w", id, domain.ErrNotFound)
}

func routeOrder(p domain.DiscoveredPOI) int {
	if p.SegmentIndex == nil {
		return math.MaxInt32
	}
	return *p.SegmentIndex
}
