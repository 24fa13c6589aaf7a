package consolidation

import (
	"sort"

	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/spatialindex"
)

type candidate struct {
	delivery       Delivery
	index          int // position in the caller's delivery slice
	pickupDistance float64
}

// candidateSelector. eligible deliveries indexed by pickup point. a repeated delivery id keeps only
// its first eligible record.
type candidateSelector struct {
	cfg      Config
	eligible []Delivery
	pickups  *spatialindex.Rtree[int]
}

func newCandidateSelector(cfg Config, deliveries []Delivery) *candidateSelector {
	cs := &candidateSelector{
		cfg:     cfg,
		pickups: spatialindex.NewRtree[int](),
	}
	seen := make(map[string]struct{}, len(deliveries))
	for i, d := range deliveries {
		if !d.IsEligible() {
			continue
		}
		if _, dup := seen[d.ID]; dup {
			continue
		}
		seen[d.ID] = struct{}{}
		cs.eligible = append(cs.eligible, d)
		cs.pickups.Insert(d.Pickup, i)
	}
	return cs
}

func (cs *candidateSelector) numEligible() int {
	return len(cs.eligible)
}

// candidatesFor. eligible deliveries with pickup within the radius of the vehicle,
// nearest first (ties keep input order), at most MaxCandidatesPerVehicle.
func (cs *candidateSelector) candidatesFor(position geo.Coordinate, deliveries []Delivery) []candidate {
	hits := cs.pickups.SearchWithinRadius(position.Lat, position.Lon, cs.cfg.MaxPickupRadiusKm)

	cands := make([]candidate, 0, len(hits))
	for _, idx := range hits {
		d := deliveries[idx]
		dist := geo.HaversineBetween(position, d.Pickup)
		if dist > cs.cfg.MaxPickupRadiusKm {
			continue
		}
		cands = append(cands, candidate{delivery: d, index: idx, pickupDistance: dist})
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].pickupDistance != cands[j].pickupDistance {
			return cands[i].pickupDistance < cands[j].pickupDistance
		}
		return cands[i].index < cands[j].index
	})

	if len(cands) > cs.cfg.MaxCandidatesPerVehicle {
		cands = cands[:cs.cfg.MaxCandidatesPerVehicle]
	}
	return cands
}
