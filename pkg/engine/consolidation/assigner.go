package consolidation

import (
	"math"
	"sort"

	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/util"
)

type vehicleSuggestion struct {
	vehicleIndex int
	suggestion   Suggestion
	pickups      []geo.Coordinate
}

// assign. accept suggestions by score (ties: vehicle input order), skipping any that reuses an
// already accepted delivery. greedy first-come exclusivity, not a global optimum.
func assign(cfg Config, proposals []vehicleSuggestion) Result {
	sort.SliceStable(proposals, func(i, j int) bool {
		if proposals[i].suggestion.Score != proposals[j].suggestion.Score {
			return proposals[i].suggestion.Score > proposals[j].suggestion.Score
		}
		return proposals[i].vehicleIndex < proposals[j].vehicleIndex
	})

	res := emptyResult()
	taken := make(map[string]struct{})
	totalDeliveries := 0
	totalSavingsKm := 0.0

	for _, p := range proposals {
		conflict := false
		for _, id := range p.suggestion.DeliveryIDs {
			if _, ok := taken[id]; ok {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		for _, id := range p.suggestion.DeliveryIDs {
			taken[id] = struct{}{}
		}

		res.Suggestions = append(res.Suggestions, p.suggestion)
		res.Clusters = append(res.Clusters, Cluster{
			VehicleID:   p.suggestion.VehicleID,
			DeliveryIDs: p.suggestion.DeliveryIDs,
			Centroid:    geo.Centroid(p.pickups),
		})
		totalDeliveries += len(p.suggestion.DeliveryIDs)
		totalSavingsKm += p.suggestion.SavingsKm
	}

	res.TripsAvoided = totalDeliveries - len(res.Suggestions)
	res.FuelSaved = util.RoundFloat(totalSavingsKm*cfg.FuelLitresPerKm, 1)
	res.CostSaved = math.Round(res.FuelSaved * cfg.FuelPrice)
	return res
}
