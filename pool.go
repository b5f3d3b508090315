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
	"sync/atomic"
	"unsafe"

	"github.com/cloudwego/mallocx/mempage"
)

// pool is a Treiber LIFO of free blocks of one size class. The head word
// packs a 16-bit tag above the 48-bit block address; the tag is bumped on
// every successful pop, so a stalled popper holding a stale head/next pair
// can never CAS a reused block back in (the classic ABA reuse hazard).
//
// User-space addresses fit in 48 bits on linux and darwin for amd64 and
// arm64, which the build tags pin.
type pool struct {
	head atomic.Uint64

	allocCalls atomic.Uint64
	allocCount atomic.Int64
	freeCount  atomic.Int64
}

const (
	headAddrBits = 48
	headAddrMask = 1<<headAddrBits - 1
)

func packHead(addr uintptr, tag uint64) uint64 {
	return tag<<headAddrBits | uint64(addr)&headAddrMask
}

func headPtr(w uint64) *header {
	if w&headAddrMask == 0 {
		return nil
	}
	return (*header)(unsafe.Pointer(uintptr(w & headAddrMask)))
}

func headTag(w uint64) uint64 {
	return w >> headAddrBits
}

// push publishes a free block. The block's header must already carry the
// pool's class index.
func (p *pool) push(h *header) {
	for {
		old := p.head.Load()
		h.storeNext(uintptr(old & headAddrMask))
		if p.head.CompareAndSwap(old, packHead(h.addr(), headTag(old))) {
			return
		}
	}
}

// tryPop removes and returns the head block, or nil if the pool is empty.
func (p *pool) tryPop() *header {
	for {
		old := p.head.Load()
		h := headPtr(old)
		if h == nil {
			return nil
		}
		next := h.loadNext()
		if p.head.CompareAndSwap(old, packHead(next, headTag(old)+1)) {
			return h
		}
	}
}

// popPool hands out one block of class i, refilling on demand. The returned
// block carries the live sentinel.
func (h *Heap) popPool(i int) *header {
	p := &h.pools[i]
	p.allocCalls.Add(1)
	hd := p.tryPop()
	if hd != nil {
		p.allocCount.Add(1)
		p.freeCount.Add(-1)
	} else {
		hd = h.refill(i)
		if hd == nil {
			return nil
		}
	}
	hd.markLive()
	return hd
}

// refill produces a class-i block for an empty pool: the top class maps a
// fresh span, every other class pops one block from the class above and
// halves it. The low buddy goes to the caller, the high buddy to the pool.
func (h *Heap) refill(i int) *header {
	p := &h.pools[i]
	if i == h.top {
		mem := mempage.Alloc(h.topSize)
		if mem == nil {
			return nil
		}
		hd := (*header)(mem)
		hd.size = uintptr(i)
		p.allocCount.Add(1)
		return hd
	}
	hd := h.popPool(i + 1)
	if hd == nil {
		return nil
	}
	cls := hd.size - 1
	spare := (*header)(unsafe.Add(unsafe.Pointer(hd), uintptr(1)<<cls))
	hd.size = cls
	spare.size = cls
	// one class-(i+1) block became two class-i blocks
	h.pools[i+1].allocCount.Add(-1)
	p.allocCount.Add(2)
	h.pushPool(spare, i)
	return hd
}

// pushPool returns a block to pool i. The header's class index must be i.
func (h *Heap) pushPool(hd *header, i int) {
	p := &h.pools[i]
	p.allocCount.Add(-1)
	p.freeCount.Add(1)
	p.push(hd)
}
