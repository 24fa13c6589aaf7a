package main

import (
	"encoding/json"
	"errors"
	"flag"
	"os"

	"github.com/lintang-b-s/freightx/pkg"
	"github.com/lintang-b-s/freightx/pkg/config"
	"github.com/lintang-b-s/freightx/pkg/costfunction"
	da "github.com/lintang-b-s/freightx/pkg/datastructure"
	"github.com/lintang-b-s/freightx/pkg/engine"
	"github.com/lintang-b-s/freightx/pkg/ingest"
	"github.com/lintang-b-s/freightx/pkg/logger"
	"github.com/lintang-b-s/freightx/pkg/snapshot"
	"github.com/lintang-b-s/freightx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	snapshotFile = flag.String("snapshot", "./data/network.snapshot", "snapshot written by cmd/preprocessor")
	command      = flag.String("cmd", "match", "route | match")
	start        = flag.String("start", "", "start node id (route)")
	end          = flag.String("end", "", "end node id (route)")
	battery      = flag.Float64("battery", pkg.DEFAULT_BATTERY_PERCENT, "vehicle battery percentage (route)")
	pollution    = flag.String("pollution", "", "pollution label carried with the route context (route)")
	mode         = flag.String("mode", "", "fastest | greenest | safest, empty prints all three (route)")
)

type routeOutput struct {
	Mode       string   `json:"mode"`
	EdgeIds    []string `json:"edge_ids"`
	Cost       float64  `json:"cost"`
	DistanceKm float64  `json:"distance_km"`
}

// offline planner: one engine call against a snapshot, result printed as json on stdout.
func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	engineConfig, err := config.Load(viper.GetViper())
	if err != nil {
		logger.Fatal("load engine config", zap.Error(err))
	}
	planningEngine, err := engine.NewEngine(engineConfig.Cost, engineConfig.Consolidation, logger)
	if err != nil {
		logger.Fatal("create engine", zap.Error(err))
	}

	snap, err := snapshot.ReadFile(*snapshotFile)
	var rowErr *ingest.RowError
	switch {
	case err == nil:
	case errors.As(err, &rowErr):
		logger.Warn("skipped snapshot rows", zap.Error(err))
	default:
		logger.Fatal("read snapshot", zap.Error(err))
	}

	var out any
	switch *command {
	case "route":
		if *start == "" || *end == "" {
			logger.Fatal("route needs -start and -end")
		}
		plan := planningEngine.PlanRoutes(snap.Edges, da.NodeID(*start), da.NodeID(*end),
			costfunction.NewRouteContext(*battery, *pollution, pkg.FASTEST))
		modes := pkg.Objectives[:]
		if *mode != "" {
			objective, ok := pkg.GetObjective(*mode)
			if !ok {
				logger.Fatal("unknown mode", zap.String("mode", *mode))
			}
			modes = []pkg.Objective{objective}
		}
		routes := make(map[string]*routeOutput, len(modes))
		for _, m := range modes {
			p := plan.Get(m)
			if p == nil {
				routes[m.String()] = nil
				continue
			}
			routes[m.String()] = &routeOutput{
				Mode:       m.String(),
				EdgeIds:    p.GetEdgeIds(),
				Cost:       p.GetCost(),
				DistanceKm: p.GetDistance(),
			}
		}
		out = routes
	case "match":
		out = planningEngine.MatchLoads(snap.Vehicles, snap.Deliveries)
	default:
		logger.Fatal("unknown command", zap.String("cmd", *command))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		logger.Fatal("write result", zap.Error(err))
	}
}
