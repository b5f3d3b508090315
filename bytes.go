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

// Bytes allocates an off-heap buf of len n. The cap is the full payload
// capacity of the underlying block, so resizing within cap is free.
// Tips for usage:
// * buf may not be initialized with zeros, use at your own risk.
// * call FreeBytes with the original buf, not a reslice.
// * DO NOT REUSE buf after calling FreeBytes.
func (h *Heap) Bytes(n int) []byte {
	if n < 0 {
		return nil
	}
	if n == 0 {
		return []byte{}
	}
	p := h.Malloc(n)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), h.UsableSize(p))[:n]
}

// FreeBytes returns a buf created by Bytes. Zero-cap bufs are ignored.
func (h *Heap) FreeBytes(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	h.Free(unsafe.Pointer(unsafe.SliceData(buf)))
}
