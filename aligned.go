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

// AlignedAlloc allocates n bytes whose address is a multiple of align.
// align must be a power of two; otherwise nil is returned. Alignments up to
// the header size are satisfied by the normal class path, larger ones by a
// dedicated mapping with the header placed so that the payload lands on the
// alignment boundary.
func (h *Heap) AlignedAlloc(align, n int) unsafe.Pointer {
	h.alignedCalls.Add(1)
	if n < 0 || align <= 0 || align&(align-1) != 0 {
		return nil
	}
	a := uintptr(align)
	total := uintptr(n) + headerSize
	if a <= headerSize {
		// class blocks sit on 1<<i boundaries of a page-aligned span, so
		// their payloads are already header-size aligned
		return h.alloc(total)
	}

	ps := mempage.Size()
	var prePad, slack uintptr
	if a <= ps {
		prePad = a - headerSize
	} else {
		prePad = ps - headerSize
		slack = a - ps
	}
	rounded := mempage.Round(prePad + total + slack)
	mem := mempage.Alloc(rounded)
	if mem == nil {
		return nil
	}

	hp := unsafe.Add(mem, prePad)
	// forward distance from the candidate payload to the next aligned address
	off := (a - (uintptr(hp)+headerSize)&(a-1)) & (a - 1)
	hp = unsafe.Add(hp, off)
	live := rounded
	if slack > 0 {
		// align is a page multiple here, so off and the leftover slack are
		// whole-page runs on either side of the live region; hand them back
		post := slack - off
		if off > 0 {
			mempage.Free(mem, off)
		}
		if post > 0 {
			mempage.Free(unsafe.Add(mem, rounded-post), post)
			live -= post
		}
	}

	hd := (*header)(hp)
	// live span length measured from the start of the header's page, which
	// is what Free reconstructs
	hd.size = uintptr(mem) + live - pageFloor(hd.addr())
	hd.markLive()
	return hd.payload()
}

// Memalign is the posix_memalign-shaped variant of AlignedAlloc: it reports
// a non-power-of-two alignment as ErrBadAlignment and a failed mapping as
// ErrOutOfMemory instead of folding both into nil.
func (h *Heap) Memalign(align, n int) (unsafe.Pointer, error) {
	if align <= 0 || align&(align-1) != 0 {
		return nil, ErrBadAlignment
	}
	p := h.AlignedAlloc(align, n)
	if p == nil {
		return nil, ErrOutOfMemory
	}
	return p, nil
}

// Valloc allocates n bytes aligned to the page size.
func (h *Heap) Valloc(n int) unsafe.Pointer {
	return h.AlignedAlloc(int(mempage.Size()), n)
}

// Pvalloc is Valloc with n rounded up to a whole number of pages.
func (h *Heap) Pvalloc(n int) unsafe.Pointer {
	if n < 0 {
		return nil
	}
	return h.AlignedAlloc(int(mempage.Size()), int(mempage.Round(uintptr(n))))
}
