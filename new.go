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

// New allocates a zeroed T off-heap, honouring T's alignment, and returns
// nil when out of memory. T must not contain Go pointers; see the package
// comment.
func New[T any](h *Heap) *T {
	var zero T
	p := h.AlignedAlloc(int(unsafe.Alignof(zero)), int(unsafe.Sizeof(zero)))
	if p == nil {
		return nil
	}
	t := (*T)(p)
	*t = zero
	return t
}

// MustNew is New for callers that treat allocation failure as fatal; it
// panics with ErrOutOfMemory instead of returning nil.
func MustNew[T any](h *Heap) *T {
	t := New[T](h)
	if t == nil {
		panic(ErrOutOfMemory)
	}
	return t
}

// NewArray allocates a zeroed off-heap slice of n Ts. n <= 0 or a size
// computation overflow yields nil.
func NewArray[T any](h *Heap, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elem := int(unsafe.Sizeof(zero))
	total := n * elem
	if elem != 0 && total/n != elem {
		return nil
	}
	p := h.AlignedAlloc(int(unsafe.Alignof(zero)), total)
	if p == nil {
		return nil
	}
	s := unsafe.Slice((*T)(p), n)
	for i := range s {
		s[i] = zero
	}
	return s
}

// MustNewArray is NewArray panicking with ErrOutOfMemory on failure.
func MustNewArray[T any](h *Heap, n int) []T {
	s := NewArray[T](h, n)
	if s == nil {
		panic(ErrOutOfMemory)
	}
	return s
}

// Delete frees a pointer obtained from New. Delete(nil) is a no-op.
func Delete[T any](h *Heap, p *T) {
	if p == nil {
		return
	}
	h.Free(unsafe.Pointer(p))
}

// DeleteArray frees a slice obtained from NewArray. It must be the original
// slice, not a reslice.
func DeleteArray[T any](h *Heap, s []T) {
	if cap(s) == 0 {
		return
	}
	h.Free(unsafe.Pointer(unsafe.SliceData(s)))
}
