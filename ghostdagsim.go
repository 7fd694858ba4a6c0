package main

import (
	"fmt"
	"os"

	"github.com/eramoss/ghostdagsim/config"
	"github.com/eramoss/ghostdagsim/dbaccess"
	"github.com/eramoss/ghostdagsim/logger"
	"github.com/eramoss/ghostdagsim/signal"
	"github.com/eramoss/ghostdagsim/simnet"
	"github.com/eramoss/ghostdagsim/util/panics"
	"github.com/eramoss/ghostdagsim/version"
)

func main() {
	if err := ghostdagsimMain(); err != nil {
		os.Exit(1)
	}
}

// ghostdagsimMain is the real main function for ghostdagsim. It is
// separated from main so that defers run before os.Exit.
func ghostdagsimMain() error {
	// Load configuration and parse command line. This also initializes
	// logging and configures it accordingly.
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer logger.BackendLog.Close()
	defer panics.HandlePanic(log, nil)

	log.Infof("Version %s", version.Version())

	s, err := simnet.New(simnet.Params{
		K:                   cfg.K,
		NumNodes:            cfg.NumNodes,
		NumMiners:           cfg.NumMiners,
		TargetBlockInterval: cfg.TargetBlockInterval,
		TransactionInterval: cfg.TransactionInterval,
		Duration:            cfg.Duration,
		MaxPeers:            cfg.MaxPeers,
		MaxBlockSize:        cfg.MaxBlockSize,
		Seed:                cfg.Seed,
	})
	if err != nil {
		log.Errorf("Could not set up the simulation: %+v", err)
		return err
	}

	// An interrupt stops the run at the next event boundary; the stats
	// and the archive of whatever was simulated so far still happen.
	interrupt := signal.InterruptListener()
	go func() {
		<-interrupt
		s.Interrupt()
	}()

	allStats := s.Run()
	for _, stats := range allStats {
		log.Debugf("Node %d [%s] accepted %d blocks (%d blue, %d red), "+
			"mined %d, orphan rate %.3f, mean propagation %.3fs, width up to %d",
			stats.NodeID, stats.Region, stats.TotalBlocks, stats.BlueBlocks, stats.RedBlocks,
			stats.MinerGeneratedBlocks, stats.OrphanRate, stats.MeanBlockPropagationTime,
			stats.MaxDagWidthSeen)
	}

	if cfg.ArchiveDir != "" {
		err = archiveObserverDAG(cfg.ArchiveDir, s)
		if err != nil {
			log.Errorf("Could not archive the observer DAG: %+v", err)
			return err
		}
	}

	return nil
}

// archiveObserverDAG persists the observer node's accepted DAG and its
// total order for offline analysis.
func archiveObserverDAG(archiveDir string, s *simnet.Simulation) error {
	databaseContext, err := dbaccess.New(archiveDir)
	if err != nil {
		return err
	}
	defer func() {
		err := databaseContext.Close()
		if err != nil {
			log.Errorf("Error closing the archive: %+v", err)
		}
	}()

	return dbaccess.ArchiveDAG(databaseContext, s.ObserverNode().DAG())
}
