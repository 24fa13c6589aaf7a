package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"go.uber.org/multierr"
)

// FleetRows. the raw vehicle and delivery rows of one fleet snapshot.
type FleetRows struct {
	Vehicles   []map[string]any `json:"vehicles"`
	Deliveries []map[string]any `json:"deliveries"`
}

func ReadFleetFile(filename string) (FleetRows, error) {
	f, err := os.Open(filename)
	if err != nil {
		return FleetRows{}, err
	}
	defer f.Close()

	var rows FleetRows
	if err := json.NewDecoder(f).Decode(&rows); err != nil {
		return FleetRows{}, fmt.Errorf("decode fleet file %s: %w", filename, err)
	}
	return rows, nil
}

// Normalize. both row sets through NormalizeVehicles and NormalizeDeliveries, row errors combined.
func (fr FleetRows) Normalize() ([]consolidation.Vehicle, []consolidation.Delivery, error) {
	vehicles, vErr := NormalizeVehicles(fr.Vehicles)
	deliveries, dErr := NormalizeDeliveries(fr.Deliveries)
	return vehicles, deliveries, multierr.Append(vErr, dErr)
}
