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
	"math/bits"
	"unsafe"

	"github.com/cloudwego/mallocx/mempage"
)

// poolID returns the smallest class index i with 1<<i >= total.
// total must be >= 1, which holds since the header is always added first.
func poolID(total uintptr) int {
	return bits.Len64(uint64(total - 1))
}

// UsableSize reports the payload capacity behind p: the class capacity for
// pooled blocks, or the recorded mapping length minus the header for
// directly mapped ones. UsableSize(nil) is 0.
func (h *Heap) UsableSize(p unsafe.Pointer) int {
	if p == nil {
		return 0
	}
	hd := hdrOf(p)
	sz := hd.size
	if sz < uintptr(len(h.pools)) {
		return int(uintptr(1)<<sz - headerSize)
	}
	// sz spans from the start of the header's page; an aligned allocation
	// may have shifted the header into that page, so subtract the shift to
	// get the true payload capacity
	intra := hd.addr() - pageFloor(hd.addr())
	return int(sz - intra - headerSize)
}

// GoodSize reports the payload capacity Malloc(n) would deliver, letting
// callers pre-round request sizes to avoid slack.
func (h *Heap) GoodSize(n int) int {
	if n < 0 {
		return 0
	}
	total := uintptr(n) + headerSize
	if id := poolID(total); id <= h.top {
		return int(uintptr(1)<<id - headerSize)
	}
	return int(mempage.Round(total) - headerSize)
}
