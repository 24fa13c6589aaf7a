package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine"
	"github.com/lintang-b-s/freightx/pkg/engine/consolidation"
	"github.com/lintang-b-s/freightx/pkg/engine/routing"
	helper "github.com/lintang-b-s/freightx/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/freightx/pkg/http/usecases"
	"github.com/lintang-b-s/freightx/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPlanningService(t *testing.T) PlanningService {
	t.Helper()
	e, err := engine.NewEngine(costfunction.DefaultParams(), consolidation.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	ps, err := usecases.NewPlanningService(zap.NewNop(), e, 16)
	require.NoError(t, err)
	return ps
}

func newTestRouter(service PlanningService) *httprouter.Router {
	router := httprouter.New()
	New(service, time.Second, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

type apiResponse struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (int, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

const planBody = `{
	"start": "A", "end": "B", "battery_percentage": 80,
	"edges": [
		{"id": "ab", "from": "A", "to": "B", "distance_km": 10, "restricted": true,
			"from_coord": {"lat": 0, "lon": 0}, "to_coord": {"lat": 0, "lon": 0.09}},
		{"id": "ac", "from": "A", "to": "C", "distance_km": 6,
			"from_coord": {"lat": 0, "lon": 0}, "to_coord": {"lat": 0.05, "lon": 0.045}},
		{"id": "cb", "from": "C", "to": "B", "distance_km": 6,
			"from_coord": {"lat": 0.05, "lon": 0.045}, "to_coord": {"lat": 0, "lon": 0.09}}
	]
}`

func TestPlanRoutesHandler(t *testing.T) {
	router := newTestRouter(newTestPlanningService(t))

	code, resp := doRequest(t, router, http.MethodPost, "/api/routes/plan", planBody)
	require.Equal(t, http.StatusOK, code, resp.Error.Message)

	var data planRoutesResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotNil(t, data.Fastest)
	assert.Equal(t, "fastest", data.Fastest.Mode)
	assert.Equal(t, []string{"ac", "cb"}, data.Fastest.EdgeIds)
	assert.InDelta(t, 24.0, data.Fastest.Cost, 1e-9)
	assert.InDelta(t, 12.0, data.Fastest.DistanceKm, 1e-9)
	assert.NotEmpty(t, data.Fastest.Polyline)
	assert.Len(t, data.Fastest.Coordinates, 3)
	require.NotNil(t, data.Greenest)
	require.NotNil(t, data.Safest)
}

func TestPlanRoutesHandlerNoRoute(t *testing.T) {
	router := newTestRouter(newTestPlanningService(t))
	body := `{"start": "B", "end": "A", "edges": [{"id": "ab", "from": "A", "to": "B", "distance_km": 10,
		"from_coord": {"lat": 0, "lon": 0}, "to_coord": {"lat": 0, "lon": 0.09}}]}`

	code, resp := doRequest(t, router, http.MethodPost, "/api/routes/plan", body)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"fastest": null, "greenest": null, "safest": null}`, string(resp.Data))
}

func TestPlanRoutesHandlerBadRequest(t *testing.T) {
	router := newTestRouter(newTestPlanningService(t))

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{"start": `, "invalid request body"},
		{"missing start", `{"end": "B", "edges": [{"id": "ab", "from": "A", "to": "B", "distance_km": 1,
			"from_coord": {"lat": 0, "lon": 0}, "to_coord": {"lat": 0, "lon": 0.01}}]}`, "Start is a required field"},
		{"no edges", `{"start": "A", "end": "B", "edges": []}`, "validation error"},
		{"congestion out of range", `{"start": "A", "end": "B", "edges": [{"id": "ab", "from": "A", "to": "B",
			"distance_km": 1, "congestion": 2, "from_coord": {"lat": 0, "lon": 0}, "to_coord": {"lat": 0, "lon": 0.01}}]}`,
			"Congestion"},
		{"missing coordinate", `{"start": "A", "end": "B", "edges": [{"id": "ab", "from": "A", "to": "B",
			"distance_km": 1, "from_coord": {"lat": 0}, "to_coord": {"lat": 0, "lon": 0.01}}]}`, "Lon is a required field"},
		{"battery above 100", `{"start": "A", "end": "B", "battery_percentage": 120, "edges": [{"id": "ab",
			"from": "A", "to": "B", "distance_km": 1, "from_coord": {"lat": 0, "lon": 0},
			"to_coord": {"lat": 0, "lon": 0.01}}]}`, "BatteryPercentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doRequest(t, router, http.MethodPost, "/api/routes/plan", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, http.StatusText(http.StatusBadRequest), resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.message)
		})
	}
}

func TestMatchLoadsHandler(t *testing.T) {
	router := newTestRouter(newTestPlanningService(t))
	body := `{
		"vehicles": [
			{"id": "v1", "capacity": 10, "current_load": 0, "position": {"lat": 0, "lng": 0}},
			{"capacity": 3}
		],
		"deliveries": [
			{"id": "d4", "weight": 4, "status": "pending", "pickup": {"lat": 0, "lng": 0.01}, "drop": {"lat": 0, "lng": 0.05}},
			{"id": "d8", "weight": 8, "status": "pending", "pickup": {"lat": 0.01, "lng": 0}, "drop": {"lat": 0.05, "lng": 0}}
		]
	}`

	code, resp := doRequest(t, router, http.MethodPost, "/api/consolidation/match", body)
	require.Equal(t, http.StatusOK, code, resp.Error.Message)

	var data matchLoadsResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Suggestions, 1)
	assert.Equal(t, "v1", data.Suggestions[0].VehicleID)
	assert.Equal(t, []string{"d8"}, data.Suggestions[0].DeliveryIDs)
	assert.NotEmpty(t, data.Suggestions[0].RoutePolyline)
	require.Len(t, data.Clusters, 1)
	require.Len(t, data.RejectedRows, 1)
	assert.Contains(t, data.RejectedRows[0], "vehicle row 1")
}

func TestMatchLoadsHandlerEmpty(t *testing.T) {
	router := newTestRouter(newTestPlanningService(t))

	code, resp := doRequest(t, router, http.MethodPost, "/api/consolidation/match", `{"vehicles": [], "deliveries": []}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"suggestions": [], "clusters": [], "trips_avoided": 0, "fuel_saved": 0, "cost_saved": 0,
		"rejected_rows": []}`, string(resp.Data))

	code, _ = doRequest(t, router, http.MethodPost, "/api/consolidation/match", `{"vehicles": []}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetConfigHandler(t *testing.T) {
	router := newTestRouter(newTestPlanningService(t))

	code, resp := doRequest(t, router, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, code)

	var data configResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, costfunction.DefaultParams(), data.Cost)
	assert.Equal(t, consolidation.DefaultConfig(), data.Consolidation)
}

type timeoutService struct {
	PlanningService
}

func (timeoutService) PlanRoutes(ctx context.Context, edges []da.Edge, start, end da.NodeID,
	rctx costfunction.RouteContext) (routing.RoutePlan, error) {
	return routing.RoutePlan{}, util.WrapErrorf(context.DeadlineExceeded, util.ErrRequestTimeout, "planning")
}

func (timeoutService) MatchLoads(ctx context.Context, vehicleRows, deliveryRows []map[string]any) (
	consolidation.Result, []string, error) {
	return consolidation.Result{}, nil, errors.New("boom")
}

func TestHandlerErrorMapping(t *testing.T) {
	router := newTestRouter(timeoutService{})

	code, resp := doRequest(t, router, http.MethodPost, "/api/routes/plan", planBody)
	assert.Equal(t, http.StatusGatewayTimeout, code)
	assert.Equal(t, http.StatusText(http.StatusGatewayTimeout), resp.Error.Code)

	code, resp = doRequest(t, router, http.MethodPost, "/api/consolidation/match", `{"vehicles": [], "deliveries": []}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, util.MessageInternalServerError, resp.Error.Message)
}

func TestHubMatchLoadsOverWebsocket(t *testing.T) {
	hub := NewHub(newTestPlanningService(t), time.Second)
	server, client := net.Pipe()
	defer client.Close()

	user := hub.Register(server)
	assert.Equal(t, 1, hub.NumUsers())

	errc := make(chan error, 1)
	go func() {
		errc <- user.MatchLoads()
	}()

	body := []byte(`{"vehicles": [{"id": "v1", "capacity": 10, "position": [0, 0]}],
		"deliveries": [{"id": "d1", "weight": 2, "status": "pending", "pickup": [0, 0.01], "drop": [0, 0.02]}]}`)
	require.NoError(t, wsutil.WriteClientText(client, body))

	msg, err := wsutil.ReadServerText(client)
	require.NoError(t, err)
	require.NoError(t, <-errc)

	var resp apiResponse
	require.NoError(t, json.NewDecoder(bytes.NewReader(msg)).Decode(&resp))
	var data matchLoadsResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Suggestions, 1)
	assert.Equal(t, []string{"d1"}, data.Suggestions[0].DeliveryIDs)

	hub.Remove(user)
	assert.Equal(t, 0, hub.NumUsers())
}
