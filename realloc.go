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

import "unsafe"

// Realloc resizes the allocation behind p to n bytes.
//
// Requests that still fit the current block return p unchanged; the
// allocator never shrinks in place, so callers chasing a high-water mark
// must free and re-allocate themselves. n == 0 frees p and returns nil.
// Growth allocates, copies and frees; if the new allocation fails, p is
// left untouched and nil is returned.
func (h *Heap) Realloc(p unsafe.Pointer, n int) unsafe.Pointer {
	h.reallocCalls.Add(1)
	if n < 0 {
		return nil
	}
	if p == nil {
		if n == 0 {
			return nil
		}
		return h.Malloc(n)
	}
	if n == 0 {
		h.Free(p)
		return nil
	}
	usable := h.UsableSize(p)
	if n <= usable {
		return p
	}
	np := h.Malloc(n)
	if np == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(np), usable), unsafe.Slice((*byte)(p), usable))
	h.Free(p)
	return np
}

// Calloc allocates num*size bytes, zeroed. A product that overflows fails
// without touching the heap; num or size of zero is a legal zero-byte
// request.
func (h *Heap) Calloc(num, size int) unsafe.Pointer {
	if num < 0 || size < 0 {
		return nil
	}
	total := num * size
	if num != 0 && total/num != size {
		return nil
	}
	p := h.Malloc(total)
	if p != nil && total > 0 {
		clear(unsafe.Slice((*byte)(p), total))
	}
	return p
}

// ReallocArray is Realloc with a counted size and the Calloc overflow guard.
func (h *Heap) ReallocArray(p unsafe.Pointer, num, size int) unsafe.Pointer {
	if num < 0 || size < 0 {
		return nil
	}
	total := num * size
	if num != 0 && total/num != size {
		return nil
	}
	return h.Realloc(p, total)
}
