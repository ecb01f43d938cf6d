package api

import (
	"sync"
	"time"

	"github.com/reneeli0223/Flight-Scheduler/internal/cache"
	"github.com/reneeli0223/Flight-Scheduler/internal/metrics"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
)

// travelCacheTTL bounds how stale a cached travel result may get even
// without a mutation.
const travelCacheTTL = 5 * time.Minute

// Deps wires the handlers to the shared network, the result cache and
// the metrics registry.
//
// The network is single-writer; the RWMutex here is the one
// concurrency boundary, so the conflict check and the route search
// always run against a consistent snapshot of the edge lists.
type Deps struct {
	mu      sync.RWMutex
	Net     *network.Network
	Cache   cache.Interface
	Metrics *metrics.Registry
}

// InitDependencies builds the dependency container around an existing
// network.
func InitDependencies(net *network.Network, reg *metrics.Registry) *Deps {
	return &Deps{
		Net:     net,
		Cache:   cache.NewService(travelCacheTTL, 10*time.Minute),
		Metrics: reg,
	}
}

// read runs fn under the read lock.
func (d *Deps) read(fn func()) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn()
}

// write runs fn under the write lock and flushes the travel cache,
// since any mutation can shift prices and schedules.
func (d *Deps) write(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
	d.Cache.Flush()
}
