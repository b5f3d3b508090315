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
)

// header is the in-band descriptor placed immediately before every pointer
// handed to a caller. Its two words double as maximum-alignment padding, so
// payloads start 16-byte aligned.
//
// size holds either a pool index (size < pool count: the block is 1<<size
// bytes, header included, and belongs to that pool) or the raw byte length
// of a dedicated page-multiple mapping.
//
// next is the free-list link while the block sits in a pool. While the block
// is live it holds the header's own address; Free rejects pointers whose
// header fails that check.
type header struct {
	size uintptr
	next uintptr
}

const headerSize = unsafe.Sizeof(header{})

// hdrOf returns the header in front of a user pointer.
func hdrOf(p unsafe.Pointer) *header {
	return (*header)(unsafe.Add(p, -int(headerSize)))
}

// payload returns the user pointer one header past h.
func (h *header) payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(h), headerSize)
}

func (h *header) addr() uintptr {
	return uintptr(unsafe.Pointer(h))
}

// markLive installs the self-reference sentinel. Called with exclusive
// ownership of the block.
func (h *header) markLive() {
	atomic.StoreUintptr(&h.next, h.addr())
}

func (h *header) isLive() bool {
	return atomic.LoadUintptr(&h.next) == h.addr()
}

// loadNext reads the free-list link. Atomic because a stalled popper may
// read next on a block that another goroutine already popped.
func (h *header) loadNext() uintptr {
	return atomic.LoadUintptr(&h.next)
}

func (h *header) storeNext(v uintptr) {
	atomic.StoreUintptr(&h.next, v)
}
