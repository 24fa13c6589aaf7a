package consolidation

import (
	"github.com/lintang-b-s/freightx/pkg/concurrent"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/util"
)

const defaultMaxWorkers = 8

type Matcher struct {
	cfg Config
}

func NewMatcher(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

func (m *Matcher) GetConfig() Config {
	return m.cfg
}

// MatchLoads. per vehicle best bundle of nearby deliveries, then a fleet-wide exclusive assignment.
// vehicles without a usable position, free capacity or candidates are skipped silently.
func (m *Matcher) MatchLoads(vehicles []Vehicle, deliveries []Delivery) Result {
	if len(vehicles) == 0 || len(deliveries) == 0 {
		return emptyResult()
	}

	selector := newCandidateSelector(m.cfg, deliveries)
	if selector.numEligible() == 0 {
		return emptyResult()
	}
	density := newDensityIndex(m.cfg, vehicles)

	views := make([]*vehicleView, 0, len(vehicles))
	for i := range vehicles {
		vv := m.newVehicleView(i, vehicles, deliveries, selector, density)
		if vv != nil {
			views = append(views, vv)
		}
	}
	if len(views) == 0 {
		return emptyResult()
	}

	workers := m.cfg.Workers
	if workers == 0 {
		workers = util.MinInt(len(views), defaultMaxWorkers)
	}

	// each job owns its view, the final sort in assign makes the outcome independent of completion order
	results := concurrent.Run(workers, views, func(vv *vehicleView) *vehicleSuggestion {
		return m.suggest(vv)
	})

	proposals := make([]vehicleSuggestion, 0, len(results))
	for _, r := range results {
		if r != nil {
			proposals = append(proposals, *r)
		}
	}

	return assign(m.cfg, proposals)
}

func (m *Matcher) newVehicleView(i int, vehicles []Vehicle, deliveries []Delivery, selector *candidateSelector,
	density *densityIndex) *vehicleView {
	v := vehicles[i]
	if !v.HasValidPosition() {
		return nil
	}
	available := v.AvailableCapacity()
	if available <= 0 {
		return nil
	}

	cands := selector.candidatesFor(*v.Position, deliveries)
	if len(cands) == 0 {
		return nil
	}

	profile, localDensity := density.trafficProfile(i)
	return &vehicleView{
		vehicle:       v,
		index:         i,
		start:         *v.Position,
		available:     available,
		profile:       profile,
		candidates:    cands,
		density:       localDensity,
		trafficFactor: profile.TrafficFactor,
	}
}

func (m *Matcher) suggest(vv *vehicleView) *vehicleSuggestion {
	vv.savings = newSavingsMatrix(m.cfg, vv.start, vv.candidates, vv.trafficFactor)

	best := buildBundle(m.cfg, vv)
	if best == nil {
		return nil
	}

	ids := make([]string, 0, len(best.members))
	pickups := make([]geo.Coordinate, 0, len(best.members))
	for _, b := range best.members {
		ids = append(ids, vv.candidates[b].delivery.ID)
		pickups = append(pickups, vv.candidates[b].delivery.Pickup)
	}

	ev := best.eval
	return &vehicleSuggestion{
		vehicleIndex: vv.index,
		pickups:      pickups,
		suggestion: Suggestion{
			VehicleID:    vv.vehicle.ID,
			DeliveryIDs:  ids,
			Route:        ev.route.stops,
			DistanceKm:   ev.route.distanceKm,
			DurationMin:  ev.route.durationMin,
			SavingsKm:    util.RoundFloat(ev.savingsKm, 2),
			SavingsRatio: util.RoundFloat(ev.savingsRatio, 4),
			Score:        ev.score,
			Utilization:  util.RoundFloat(ev.fillRatio*100, 1),
			TotalWeight:  ev.weight,
		},
	}
}

// MatchLoads. MatchLoads with DefaultConfig.
func MatchLoads(vehicles []Vehicle, deliveries []Delivery) Result {
	return NewMatcher(DefaultConfig()).MatchLoads(vehicles, deliveries)
}
