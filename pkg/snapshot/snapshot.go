package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/ingest"
	"go.uber.org/multierr"
)

// Snapshot. engine inputs captured at one point in time.
type Snapshot struct {
	Edges      []da.Edge
	Vehicles   []consolidation.Vehicle
	Deliveries []consolidation.Delivery
}

type edgeRow struct {
	ID         string         `json:"id"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	DistanceKm float64        `json:"distance_km"`
	Congestion float64        `json:"congestion"`
	AQI        float64        `json:"aqi"`
	Restricted bool           `json:"restricted"`
	FromCoord  geo.Coordinate `json:"from_coord"`
	ToCoord    geo.Coordinate `json:"to_coord"`
}

type document struct {
	Edges      []edgeRow                `json:"edges,omitempty"`
	Vehicles   []consolidation.Vehicle  `json:"vehicles,omitempty"`
	Deliveries []consolidation.Delivery `json:"deliveries,omitempty"`
}

// rawDocument. files are decoded row by row through pkg/ingest, so hand-written snapshots may use
// any of the accepted key synonyms.
type rawDocument struct {
	Edges      []map[string]any `json:"edges"`
	Vehicles   []map[string]any `json:"vehicles"`
	Deliveries []map[string]any `json:"deliveries"`
}

// Encode. bzip2 compressed json. non-finite values (e.g. a NaN coordinate) cannot be encoded.
func Encode(w io.Writer, s Snapshot) error {
	doc := document{
		Vehicles:   s.Vehicles,
		Deliveries: s.Deliveries,
	}
	doc.Edges = make([]edgeRow, 0, len(s.Edges))
	for _, e := range s.Edges {
		doc.Edges = append(doc.Edges, edgeRow{
			ID:         e.GetEdgeId(),
			From:       string(e.GetFrom()),
			To:         string(e.GetTo()),
			DistanceKm: e.GetLength(),
			Congestion: e.GetCongestion(),
			AQI:        e.GetAQI(),
			Restricted: e.IsRestricted(),
			FromCoord:  e.GetFromCoordinate(),
			ToCoord:    e.GetToCoordinate(),
		})
	}

	bz, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return err
	}
	if err := json.NewEncoder(bz).Encode(doc); err != nil {
		bz.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return bz.Close()
}

// Decode. rows that fail normalization are skipped, their errors are combined in the returned
// error next to a usable snapshot. a broken stream returns an empty snapshot.
func Decode(r io.Reader) (Snapshot, error) {
	bz, err := bzip2.NewReader(r, nil)
	if err != nil {
		return Snapshot{}, err
	}
	defer bz.Close()

	var raw rawDocument
	if err := json.NewDecoder(bz).Decode(&raw); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	var (
		s    Snapshot
		errs error
	)
	s.Edges, err = ingest.NormalizeEdges(raw.Edges)
	errs = multierr.Append(errs, err)
	s.Vehicles, err = ingest.NormalizeVehicles(raw.Vehicles)
	errs = multierr.Append(errs, err)
	s.Deliveries, err = ingest.NormalizeDeliveries(raw.Deliveries)
	errs = multierr.Append(errs, err)
	return s, errs
}

func WriteFile(filename string, s Snapshot) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadFile(filename string) (Snapshot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	return Decode(f)
}
