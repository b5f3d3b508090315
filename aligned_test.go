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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/mallocx/mempage"
)

func TestAlignedAlloc(t *testing.T) {
	h := newTestHeap(t)
	ps := int(mempage.Size())

	aligns := []int{1, 2, 8, 16, 64, 512, ps, 2 * ps, 4 * ps}
	sizes := []int{0, 1, 100, 5000}
	for _, a := range aligns {
		for _, n := range sizes {
			t.Run(fmt.Sprintf("align_%d_size_%d", a, n), func(t *testing.T) {
				p := h.AlignedAlloc(a, n)
				require.NotNil(t, p)
				assert.Zero(t, uintptr(p)%uintptr(a))
				require.GreaterOrEqual(t, h.UsableSize(p), n)

				buf := unsafe.Slice((*byte)(p), h.UsableSize(p))
				for i := range buf {
					buf[i] = byte(i ^ a)
				}
				for i := range buf {
					require.Equal(t, byte(i^a), buf[i])
				}
				h.Free(p)
			})
		}
	}

	s := h.Stats()
	for i, ps := range s.Pools {
		assert.Zero(t, ps.AllocCount, "class %d leaked", i)
	}
	assert.Zero(t, s.BadFree)
}

func TestAlignedAllocBadArgs(t *testing.T) {
	h := newTestHeap(t)
	assert.Nil(t, h.AlignedAlloc(3, 100))
	assert.Nil(t, h.AlignedAlloc(0, 100))
	assert.Nil(t, h.AlignedAlloc(-8, 100))
	assert.Nil(t, h.AlignedAlloc(16, -1))
}

func TestMemalign(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Memalign(64, 100)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%64)
	h.Free(p)

	_, err = h.Memalign(3, 100)
	assert.ErrorIs(t, err, ErrBadAlignment)
	_, err = h.Memalign(0, 100)
	assert.ErrorIs(t, err, ErrBadAlignment)
}

func TestValloc(t *testing.T) {
	h := newTestHeap(t)
	ps := mempage.Size()

	p := h.Valloc(100)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%ps)
	assert.GreaterOrEqual(t, h.UsableSize(p), 100)
	h.Free(p)
}

func TestPvalloc(t *testing.T) {
	h := newTestHeap(t)
	ps := mempage.Size()

	p := h.Pvalloc(100)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%ps)
	assert.GreaterOrEqual(t, h.UsableSize(p), int(ps),
		"request is rounded up to whole pages before allocating")
	h.Free(p)

	assert.Nil(t, h.Pvalloc(-1))
}

func TestAlignedReallocRoundTrip(t *testing.T) {
	h := newTestHeap(t)
	ps := int(mempage.Size())

	// growing an allocation whose header sits mid-page must copy exactly the
	// usable bytes, no more
	p := h.AlignedAlloc(2*ps, 100)
	require.NotNil(t, p)
	buf := unsafe.Slice((*byte)(p), 100)
	for i := range buf {
		buf[i] = byte(i)
	}
	usable := h.UsableSize(p)

	q := h.Realloc(p, usable+1)
	require.NotNil(t, q)
	out := unsafe.Slice((*byte)(q), 100)
	for i := range out {
		require.Equal(t, byte(i), out[i])
	}
	h.Free(q)
}
