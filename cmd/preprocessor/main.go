package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/freightx/pkg/ingest"
	"github.com/lintang-b-s/freightx/pkg/logger"
	"github.com/lintang-b-s/freightx/pkg/osmparser"
	"github.com/lintang-b-s/freightx/pkg/snapshot"
	"github.com/lintang-b-s/freightx/pkg/util"
	"go.uber.org/zap"
)

var (
	mapFile      = flag.String("map_file", "./data/solo_jogja.osm.pbf", "openstreetmap pbf file")
	fleetFile    = flag.String("fleet_file", "", "optional json file with vehicles and deliveries rows to bundle into the snapshot")
	snapshotFile = flag.String("out", "./data/network.snapshot", "output snapshot file")
)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	edges, err := osmparser.Parse(ctx, *mapFile, logger)
	if err != nil {
		logger.Fatal("parse osm", zap.Error(err))
	}

	snap := snapshot.Snapshot{Edges: edges}
	if *fleetFile != "" {
		fleet, err := ingest.ReadFleetFile(*fleetFile)
		if err != nil {
			logger.Fatal("read fleet file", zap.Error(err))
		}
		var rowErrs error
		snap.Vehicles, snap.Deliveries, rowErrs = fleet.Normalize()
		if rowErrs != nil {
			logger.Warn("skipped fleet rows", zap.Error(rowErrs))
		}
	}

	if err := snapshot.WriteFile(*snapshotFile, snap); err != nil {
		logger.Fatal("write snapshot", zap.Error(err))
	}

	logger.Info("preprocessing completed",
		zap.Int("edges", len(snap.Edges)),
		zap.Int("vehicles", len(snap.Vehicles)),
		zap.Int("deliveries", len(snap.Deliveries)),
		zap.String("out", *snapshotFile),
	)
}
