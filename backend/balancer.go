package backend

import (
	"fmt"
	"sync/atomic"
)

// Balancer picks one backend server out of the fleet's currently
// discovered set, the same interface shape as the teacher's
// loadbalance.Balancer, repointed at backend.Server.
type Balancer interface {
	Pick(servers []Server) (*Server, error)
	Name() string
}

// RoundRobin distributes connections evenly across the fleet. Good
// enough for a login gateway: unlike RPC calls, a Minecraft connection
// is long-lived, so per-request weighting matters far less than even
// spread at connect time.
type RoundRobin struct {
	counter int64
}

func (b *RoundRobin) Pick(servers []Server) (*Server, error) {
	if len(servers) == 0 {
		return nil, fmt.Errorf("backend: no servers available")
	}
	index := atomic.AddInt64(&b.counter, 1) % int64(len(servers))
	return &servers[index], nil
}

func (b *RoundRobin) Name() string { return "RoundRobin" }
