package simnet

import (
	"math/rand"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/eramoss/ghostdagsim/blockdag"
	"github.com/eramoss/ghostdagsim/logger"
	"github.com/eramoss/ghostdagsim/mempool"
)

// Params configures a simulation run.
type Params struct {
	// K is the GHOSTDAG anticone tolerance every node runs with.
	K uint32

	// NumNodes is the total number of nodes; the first NumMiners of
	// them mine.
	NumNodes  int
	NumMiners int

	// TargetBlockInterval is the network-wide mean seconds between
	// blocks.
	TargetBlockInterval float64

	// TransactionInterval is the network-wide mean seconds between
	// injected transactions. Zero disables transaction traffic.
	TransactionInterval float64

	// Duration is the simulated time horizon in seconds.
	Duration float64

	// MaxPeers bounds every node's connection count.
	MaxPeers int

	// MaxBlockSize bounds mined block sizes in bytes.
	MaxBlockSize int

	// Seed drives every random choice of the run; equal seeds replay
	// identical runs.
	Seed int64
}

// Simulation is a discrete-event simulation of a GHOSTDAG peer-to-peer
// network. Everything happens on one goroutine: events fire in
// timestamp order and run to completion, which is what serialises
// access to every node's consensus core.
type Simulation struct {
	params Params
	rng    *rand.Rand

	clock  float64
	seq    uint64
	events eventQueue

	nodes         []*Node
	totalHashRate float64

	// nextBlockID is the network-wide id allocator. Nodes never assign
	// their own block ids; genesis everywhere is 0 and producers draw
	// from here.
	nextBlockID       int64
	nextTransactionID int64

	interrupted int32
}

// New builds a simulation: nodes placed into regions, wired to random
// peers, miners armed, and transaction traffic scheduled.
func New(params Params) (*Simulation, error) {
	if params.NumNodes < 1 {
		return nil, errors.Errorf("a simulation needs at least one node, got %d", params.NumNodes)
	}
	if params.NumMiners < 1 || params.NumMiners > params.NumNodes {
		return nil, errors.Errorf("miner count %d must be between 1 and the node count %d",
			params.NumMiners, params.NumNodes)
	}
	if params.TargetBlockInterval <= 0 {
		return nil, errors.Errorf("target block interval must be positive, got %f", params.TargetBlockInterval)
	}
	if params.Duration <= 0 {
		return nil, errors.Errorf("duration must be positive, got %f", params.Duration)
	}
	if params.MaxPeers < 1 {
		return nil, errors.Errorf("max peers must be at least 1, got %d", params.MaxPeers)
	}

	s := &Simulation{
		params:      params,
		rng:         rand.New(rand.NewSource(params.Seed)),
		nextBlockID: 1, // genesis is 0 on every node
	}

	for i := 0; i < params.NumNodes; i++ {
		node := newNode(int64(i), s, pickRegion(s.rng))
		if i < params.NumMiners {
			node.isMiner = true
			node.hashRate = 1
			s.totalHashRate++
		}
		s.nodes = append(s.nodes, node)
	}
	connectPeers(s.nodes, params.MaxPeers, s.rng)

	for _, node := range s.nodes {
		if node.isMiner {
			node.scheduleMining()
		}
	}
	if params.TransactionInterval > 0 {
		s.scheduleNextTransaction()
	}

	return s, nil
}

// allocateBlockID hands out the next network-wide unique block id.
func (s *Simulation) allocateBlockID() int64 {
	id := s.nextBlockID
	s.nextBlockID++
	return id
}

// scheduleNextTransaction injects a transaction at a random node after
// an exponential delay and re-arms itself.
func (s *Simulation) scheduleNextTransaction() {
	delay := s.rng.ExpFloat64() * s.params.TransactionInterval
	s.schedule(delay, func() {
		s.nextTransactionID++
		transaction := &mempool.Transaction{
			ID:          s.nextTransactionID,
			ArrivalTime: s.clock,
			SizeInBytes: 250 + s.rng.Intn(400),
		}
		origin := s.nodes[s.rng.Intn(len(s.nodes))]
		origin.acceptLocalTransaction(transaction)
		s.scheduleNextTransaction()
	})
}

// Run drives the event loop until the configured duration is reached,
// the event queue drains, or the run is interrupted. It returns the
// per-node stats of the finished run.
func (s *Simulation) Run() []NodeStats {
	defer logger.LogAndMeasureExecutionTime(log, "Simulation.Run")()

	log.Infof("Simulating %d nodes (%d miners) for %.0f seconds, k=%d, seed=%d",
		s.params.NumNodes, s.params.NumMiners, s.params.Duration, s.params.K, s.params.Seed)

	for {
		if atomic.LoadInt32(&s.interrupted) != 0 {
			log.Warnf("Simulation interrupted at time %.3f", s.clock)
			break
		}
		e := s.nextEvent()
		if e == nil {
			break
		}
		if e.time > s.params.Duration {
			s.clock = s.params.Duration
			break
		}
		s.clock = e.time
		e.fn()
	}

	observer := s.ObserverNode()
	allStats := make([]NodeStats, 0, len(s.nodes))
	for _, node := range s.nodes {
		allStats = append(allStats, collectStats(node, observer))
	}

	logSummary(allStats, observer)
	return allStats
}

// Interrupt stops the run at the next event boundary. Safe to call
// from another goroutine.
func (s *Simulation) Interrupt() {
	atomic.StoreInt32(&s.interrupted, 1)
}

// ObserverNode returns the node whose view is used for archiving and
// cross-node comparisons.
func (s *Simulation) ObserverNode() *Node {
	return s.nodes[0]
}

// DAG exposes a node's consensus core, primarily for archiving the
// observer's view after a run.
func (n *Node) DAG() *blockdag.BlockDAG {
	return n.dag
}

// logSummary prints the aggregate outcome of a run.
func logSummary(allStats []NodeStats, observer *Node) {
	totalMined := 0
	orphansSeen := 0
	maxWidth := 0
	meanPropagation := 0.0
	for _, stats := range allStats {
		totalMined += stats.MinerGeneratedBlocks
		orphansSeen += stats.OrphansSeen
		if stats.MaxDagWidthSeen > maxWidth {
			maxWidth = stats.MaxDagWidthSeen
		}
		meanPropagation += stats.MeanBlockPropagationTime
	}
	meanPropagation /= float64(len(allStats))

	log.Infof("Mined %d blocks; observer accepted %d (width seen up to %d)",
		totalMined, observer.dag.BlockCount(), maxWidth)
	log.Infof("Mean propagation time %.3fs; %d orphan arrivals across the network",
		meanPropagation, orphansSeen)
	log.Infof("Observer tip %d at blue score %d", observer.dag.SelectTip(),
		mustBlueScore(observer.dag, observer.dag.SelectTip()))
}

func mustBlueScore(dag *blockdag.BlockDAG, id int64) uint64 {
	score, _ := dag.BlueScore(id)
	return score
}
