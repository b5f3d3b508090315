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
	"unsafe"

	"github.com/cloudwego/mallocx/mempage"
)

// Malloc allocates n bytes and returns a 16-byte aligned pointer, or nil if
// the OS is out of memory. Malloc(0) returns a valid, freeable pointer.
// The memory is not zeroed; use Calloc for that.
func (h *Heap) Malloc(n int) unsafe.Pointer {
	if n < 0 {
		return nil
	}
	h.mallocCalls.Add(1)
	return h.alloc(uintptr(n) + headerSize)
}

// alloc services a request of total bytes, header included.
func (h *Heap) alloc(total uintptr) unsafe.Pointer {
	if id := poolID(total); id <= h.top {
		hd := h.popPool(id)
		if hd == nil {
			return nil
		}
		return hd.payload()
	}
	// beyond the largest class: dedicated page-multiple mapping
	rounded := mempage.Round(total)
	mem := mempage.Alloc(rounded)
	if mem == nil {
		return nil
	}
	hd := (*header)(mem)
	hd.size = rounded
	hd.markLive()
	return hd.payload()
}

// Free returns p to its size class, or unmaps it if it came from a dedicated
// mapping. Free(nil) is a no-op. A pointer whose header lacks the live
// sentinel is counted as a bad free and otherwise ignored; this catches
// stray double frees but is not a security boundary.
func (h *Heap) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	hd := hdrOf(p)
	if !hd.isLive() {
		h.badFrees.Add(1)
		return
	}
	if hd.size < uintptr(len(h.pools)) {
		h.pushPool(hd, int(hd.size))
		return
	}
	// The aligned path may have placed the header mid-page; the mapping
	// base is the start of the header's own page, and size records the
	// mapped length from exactly there.
	intra := hd.addr() - pageFloor(hd.addr())
	mempage.Free(unsafe.Add(unsafe.Pointer(hd), -int(intra)), hd.size)
}

func pageFloor(addr uintptr) uintptr {
	return addr &^ (mempage.Size() - 1)
}
