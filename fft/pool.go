package fft

import (
	"fmt"
	"runtime"

	"github.com/nulltea/evaldomain/core"
	"golang.org/x/sync/errgroup"
)

// Pool is a fixed number of parallel lanes. Every call on a Pool is a scoped
// fan-out: it returns only once all the tasks it spawned have returned.
type Pool struct {
	lanes int
}

// NewPool returns a pool of the given number of lanes, lanes <= 0 selects
// runtime.GOMAXPROCS(0).
func NewPool(lanes int) *Pool {
	if lanes <= 0 {
		lanes = runtime.GOMAXPROCS(0)
	}
	return &Pool{lanes: lanes}
}

// Lanes returns the number of parallel lanes.
func (p *Pool) Lanes() int {
	return p.lanes
}

// LogLanes returns floor(log2(lanes)).
func (p *Pool) LogLanes() int {
	return core.Log2(p.lanes)
}

// Run calls fn(i) for every i in [0, tasks), at most Lanes() at a time, and
// waits for all of them.
func (p *Pool) Run(tasks int, fn func(task int)) {
	if tasks <= 0 {
		return
	}

	if p.lanes == 1 || tasks == 1 {
		for i := 0; i < tasks; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(p.lanes)
	for i := 0; i < tasks; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}

	// tasks never fail, Wait only joins
	_ = g.Wait()
}

// ChunkSize returns the length of the contiguous chunks a buffer of n
// elements is split into, one chunk per lane.
func (p *Pool) ChunkSize(n int) int {
	if n < p.lanes {
		return 1
	}
	return (n + p.lanes - 1) / p.lanes
}

// Chunks splits a into disjoint contiguous sub-slices of at most size elements.
// The sub-slices share a's backing array but never overlap, so each one can be
// handed to a different task.
func Chunks[T any](a []T, size int) [][]T {
	if size <= 0 {
		panic(fmt.Sprintf("invalid chunk size %d", size))
	}

	chunks := make([][]T, 0, (len(a)+size-1)/size)
	for start := 0; start < len(a); start += size {
		end := min(start+size, len(a))
		chunks = append(chunks, a[start:end:end])
	}

	return chunks
}
