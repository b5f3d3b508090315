//go:build (linux || darwin) && (amd64 || arm64)

/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mallocx

import (
	"fmt"
	"io"
	"os"

	"github.com/cloudwego/mallocx/mempage"
)

// PoolStats is a snapshot of one size class. Counters are advisory: they are
// updated with independent atomics, so a snapshot taken under load may be
// slightly inconsistent with itself.
type PoolStats struct {
	// AllocCalls counts pop attempts on this class, including the cascading
	// pops a lower class performs while refilling.
	AllocCalls uint64

	// AllocCount is the number of blocks of this class currently live.
	AllocCount int64

	// FreeCount is the number of blocks currently sitting in this pool.
	FreeCount int64
}

// Stats is a snapshot of a Heap's counters.
type Stats struct {
	PageSize  int
	PoolCount int

	Malloc       uint64
	AlignedAlloc uint64
	Realloc      uint64
	Mallopt      uint64
	BadFree      uint64

	Pools []PoolStats
}

// Stats snapshots the heap counters.
func (h *Heap) Stats() Stats {
	s := Stats{
		PageSize:     int(mempage.Size()),
		PoolCount:    len(h.pools),
		Malloc:       h.mallocCalls.Load(),
		AlignedAlloc: h.alignedCalls.Load(),
		Realloc:      h.reallocCalls.Load(),
		Mallopt:      h.malloptCalls.Load(),
		BadFree:      h.badFrees.Load(),
		Pools:        make([]PoolStats, len(h.pools)),
	}
	for i := range h.pools {
		p := &h.pools[i]
		s.Pools[i] = PoolStats{
			AllocCalls: p.allocCalls.Load(),
			AllocCount: p.allocCount.Load(),
			FreeCount:  p.freeCount.Load(),
		}
	}
	return s
}

// WriteStats writes a human-readable counter report to w.
func (h *Heap) WriteStats(w io.Writer) error {
	s := h.Stats()
	_, err := fmt.Fprintf(w, `-------
page size.......: %d
pool count......: %d
bad free........: %d
malloc..........: %d
aligned alloc...: %d
realloc.........: %d
mallopt.........: %d
`, s.PageSize, s.PoolCount, s.BadFree, s.Malloc, s.AlignedAlloc, s.Realloc, s.Mallopt)
	if err != nil {
		return err
	}
	for i, p := range s.Pools {
		if _, err = fmt.Fprintf(w, "%d: %d %d %d\n", i, p.AllocCalls, p.AllocCount, p.FreeCount); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, "-------")
	return err
}

// DumpStats writes the WriteStats report to the configured StatsPath,
// truncating any previous report. Callers that want a report at process
// exit should defer this from main.
func (h *Heap) DumpStats() error {
	f, err := os.Create(h.statsPath)
	if err != nil {
		return err
	}
	if err = h.WriteStats(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
