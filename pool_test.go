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
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadPacking(t *testing.T) {
	assert.Nil(t, headPtr(0))
	assert.Nil(t, headPtr(packHead(0, 7)), "tag bits alone are not an address")

	var hd header
	w := packHead(hd.addr(), 42)
	assert.Same(t, &hd, headPtr(w))
	assert.Equal(t, uint64(42), headTag(w))
}

func TestPushPop(t *testing.T) {
	var p pool
	assert.Nil(t, p.tryPop())

	blocks := make([]header, 3)
	for i := range blocks {
		p.push(&blocks[i])
	}
	// LIFO order, tag bumped once per pop
	assert.Equal(t, &blocks[2], p.tryPop())
	assert.Equal(t, &blocks[1], p.tryPop())
	assert.Equal(t, uint64(2), headTag(p.head.Load()))
	assert.Equal(t, &blocks[0], p.tryPop())
	assert.Nil(t, p.tryPop())
}

func TestSplitCascade(t *testing.T) {
	h := newTestHeap(t)

	// the first class-7 request walks the empty pools up to the top, maps one
	// span and leaves one spare buddy in every class it split on the way down
	p := h.Malloc(100)
	require.NotNil(t, p)
	first := hdrOf(p)
	assert.Equal(t, uintptr(7), first.size)

	s := h.Stats()
	for i := 7; i < h.top; i++ {
		assert.Equal(t, int64(1), s.Pools[i].FreeCount, "class %d", i)
		spare := headPtr(h.pools[i].head.Load())
		require.NotNil(t, spare)
		assert.Equal(t, uintptr(i), spare.size)
		assert.Zero(t, spare.loadNext(), "spare must be the only block in class %d", i)
		// the spare is the high buddy of the block split one class up
		assert.Equal(t, first.addr()+uintptr(1)<<i, spare.addr())
	}
	assert.Zero(t, s.Pools[h.top].FreeCount)

	// the neighbouring spare serves the next request of the same class
	q := h.Malloc(100)
	require.NotNil(t, q)
	assert.Equal(t, uintptr(p)+128, uintptr(q))

	h.Free(p)
	h.Free(q)
}

func TestPoolAccounting(t *testing.T) {
	h := newTestHeap(t)

	ptrs := make([]unsafe.Pointer, 0, 32)
	for _, n := range []int{1, 40, 100, 500, 4000, 100, 40, 1} {
		p := h.Malloc(n)
		require.NotNil(t, p)
		ptrs = append(ptrs, p)
	}
	for _, p := range ptrs {
		h.Free(p)
	}

	s := h.Stats()
	for i, ps := range s.Pools {
		assert.Zero(t, ps.AllocCount, "class %d must have no live blocks", i)
	}
	// every byte of every mapped span is either live or pooled; with nothing
	// live the pooled blocks must add up to whole top-class spans
	var pooled uintptr
	for i, ps := range s.Pools {
		pooled += uintptr(ps.FreeCount) * (uintptr(1) << i)
	}
	assert.Zero(t, pooled%h.topSize)
}

func TestHeapConcurrent(t *testing.T) {
	h := newTestHeap(t)

	const goroutines = 8
	const cycles = 2000
	sizes := []int{1, 24, 100, 255, 1000, 4000, 40000}

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(seed byte) {
			defer wg.Done()
			for c := 0; c < cycles; c++ {
				buf := h.Bytes(sizes[c%len(sizes)])
				if !assert.NotNil(t, buf) {
					return
				}
				pat := seed + byte(c)
				for i := range buf {
					buf[i] = pat
				}
				for i := range buf {
					if buf[i] != pat {
						t.Errorf("goroutine %d cycle %d: byte %d clobbered", seed, c, i)
						return
					}
				}
				h.FreeBytes(buf)
			}
		}(byte(g))
	}
	wg.Wait()

	s := h.Stats()
	for i, ps := range s.Pools {
		assert.Zero(t, ps.AllocCount, "class %d leaked", i)
	}
	assert.Zero(t, s.BadFree)
}
