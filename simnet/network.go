package simnet

import (
	"math/rand"
)

// Region is the coarse geographic location of a simulated node. It
// determines the node's link latencies and internet speeds.
type Region int

// Region constants, in the distribution order used when spreading
// nodes over the globe.
const (
	NorthAmerica Region = iota
	Europe
	SouthAmerica
	AsiaPacific
	Japan
	Australia
	Other

	regionCount
)

var regionNames = [...]string{
	"NorthAmerica", "Europe", "SouthAmerica", "AsiaPacific", "Japan", "Australia", "Other",
}

func (r Region) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return "Unknown"
	}
	return regionNames[r]
}

// regionShare is the fraction of nodes placed in each region.
var regionShare = [regionCount]float64{
	NorthAmerica: 0.33,
	Europe:       0.35,
	SouthAmerica: 0.05,
	AsiaPacific:  0.12,
	Japan:        0.07,
	Australia:    0.02,
	Other:        0.06,
}

// regionLatency holds one-way propagation delay in seconds between
// regions.
var regionLatency = [regionCount][regionCount]float64{
	NorthAmerica: {0.019, 0.059, 0.080, 0.100, 0.071, 0.104, 0.111},
	Europe:       {0.059, 0.012, 0.115, 0.132, 0.125, 0.152, 0.089},
	SouthAmerica: {0.080, 0.115, 0.028, 0.170, 0.135, 0.163, 0.158},
	AsiaPacific:  {0.100, 0.132, 0.170, 0.040, 0.025, 0.059, 0.109},
	Japan:        {0.071, 0.125, 0.135, 0.025, 0.006, 0.056, 0.118},
	Australia:    {0.104, 0.152, 0.163, 0.059, 0.056, 0.009, 0.141},
	Other:        {0.111, 0.089, 0.158, 0.109, 0.118, 0.141, 0.045},
}

// Internet speeds per region in bytes per second.
var (
	regionDownloadSpeed = [regionCount]float64{
		NorthAmerica: 6.4e6,
		Europe:       5.4e6,
		SouthAmerica: 1.9e6,
		AsiaPacific:  2.6e6,
		Japan:        4.3e6,
		Australia:    2.2e6,
		Other:        0.9e6,
	}
	regionUploadSpeed = [regionCount]float64{
		NorthAmerica: 1.4e6,
		Europe:       1.2e6,
		SouthAmerica: 0.5e6,
		AsiaPacific:  0.9e6,
		Japan:        1.9e6,
		Australia:    0.6e6,
		Other:        0.3e6,
	}
)

// pickRegion draws a region according to the configured global
// distribution.
func pickRegion(rng *rand.Rand) Region {
	draw := rng.Float64()
	cumulative := 0.0
	for region := NorthAmerica; region < regionCount; region++ {
		cumulative += regionShare[region]
		if draw < cumulative {
			return region
		}
	}
	return Other
}

// transferDelay returns the simulated time needed to move sizeInBytes
// from one node to another: the regions' propagation latency plus the
// serialization time over the slower of the sender's uplink and the
// receiver's downlink.
func transferDelay(from, to *Node, sizeInBytes int) float64 {
	latency := regionLatency[from.region][to.region]
	bottleneck := from.uploadSpeed
	if to.downloadSpeed < bottleneck {
		bottleneck = to.downloadSpeed
	}
	return latency + float64(sizeInBytes)/bottleneck
}

// connectPeers wires every node to up to maxPeers random distinct
// peers, symmetrically, mirroring the discovery outcome of the real
// network without simulating discovery itself.
func connectPeers(nodes []*Node, maxPeers int, rng *rand.Rand) {
	for _, node := range nodes {
		// Degrees fill up toward the end of the wiring; bounded attempts
		// accept a sparser neighbourhood rather than spin forever.
		for attempts := 0; len(node.peers) < maxPeers && attempts < len(nodes)*8; attempts++ {
			candidate := nodes[rng.Intn(len(nodes))]
			if candidate == node || node.isPeerOf(candidate) || len(candidate.peers) >= maxPeers {
				continue
			}
			node.peers = append(node.peers, candidate)
			candidate.peers = append(candidate.peers, node)
		}
	}

	// No node may end up isolated: fall back to linking each one to its
	// index neighbour, even where that nudges a degree past maxPeers.
	for i, node := range nodes {
		if len(node.peers) == 0 && len(nodes) > 1 {
			neighbour := nodes[(i+1)%len(nodes)]
			node.peers = append(node.peers, neighbour)
			neighbour.peers = append(neighbour.peers, node)
		}
	}
}
