package snapshot

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/geo"
	"github.com/lintang-b-s/freightx/pkg/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func testSnapshot(t *testing.T) Snapshot {
	t.Helper()
	ab, err := da.NewEdge("ab", "A", "B", 10, 0.2, 40, false, geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.09))
	require.NoError(t, err)
	bc, err := da.NewEdge("bc", "B", "C", 3.5, 0, 0, true, geo.NewCoordinate(0, 0.09), geo.NewCoordinate(0.03, 0.09))
	require.NoError(t, err)

	p := geo.NewCoordinate(-6.2, 106.8)
	return Snapshot{
		Edges: []da.Edge{ab, bc},
		Vehicles: []consolidation.Vehicle{
			{ID: "v1", Capacity: 100, CurrentLoad: 10, Status: "available", Position: &p},
			{ID: "v2", Capacity: 50},
		},
		Deliveries: []consolidation.Delivery{
			{ID: "d1", Weight: 12, Pickup: geo.NewCoordinate(-6.21, 106.81), Drop: geo.NewCoordinate(-6.3, 106.9), Status: "pending"},
		},
	}
}

func TestWriteReadFile(t *testing.T) {
	want := testSnapshot(t)
	filename := filepath.Join(t.TempDir(), "snapshot.json.bz2")

	require.NoError(t, WriteFile(filename, want))
	got, err := ReadFile(filename)
	require.NoError(t, err)

	assert.Equal(t, want.Edges, got.Edges)
	assert.Equal(t, want.Vehicles, got.Vehicles)
	assert.Equal(t, want.Deliveries, got.Deliveries)
}

func TestDecodeAcceptsSynonymsAndReportsBadRows(t *testing.T) {
	raw := `{
		"vehicles": [{"vehicleId": "v1", "capacity_kg": 20, "location": {"lat": 1, "lng": 2}}, {"capacity": 3}],
		"deliveries": [{"shipment_id": "d1", "weight": 2, "pickup": [1, 2.01], "drop": [1, 2.05], "status": "Pending"}],
		"edges": [{"edge_id": "e1", "source": "A", "target": "B", "length": 1,
			"from_coord": {"lat": 0, "lon": 0}, "to_coord": {"lat": 0, "lon": 0.01}}]
	}`

	var buf bytes.Buffer
	bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(raw))
	require.NoError(t, err)
	require.NoError(t, bz.Close())

	s, err := Decode(&buf)
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 1)
	assert.True(t, errors.Is(err, ingest.ErrMissingField))

	require.Len(t, s.Vehicles, 1)
	assert.Equal(t, "v1", s.Vehicles[0].ID)
	assert.Equal(t, geo.NewCoordinate(1, 2), *s.Vehicles[0].Position)
	require.Len(t, s.Deliveries, 1)
	assert.Equal(t, "pending", s.Deliveries[0].Status)
	require.Len(t, s.Edges, 1)
	assert.Equal(t, 1.0, s.Edges[0].GetLength())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not bzip2")))
	assert.Error(t, err)
}
