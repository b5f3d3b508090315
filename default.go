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

var defaultHeap, _ = NewHeap(nil)

// Default returns the process-wide heap used by the package-level functions.
func Default() *Heap {
	return defaultHeap
}

// Malloc allocates n bytes from the default heap.
func Malloc(n int) unsafe.Pointer { return defaultHeap.Malloc(n) }

// Free returns p to the default heap.
func Free(p unsafe.Pointer) { defaultHeap.Free(p) }

// Realloc resizes p on the default heap.
func Realloc(p unsafe.Pointer, n int) unsafe.Pointer { return defaultHeap.Realloc(p, n) }

// Calloc allocates zeroed num*size bytes from the default heap.
func Calloc(num, size int) unsafe.Pointer { return defaultHeap.Calloc(num, size) }

// ReallocArray resizes p to num*size bytes on the default heap.
func ReallocArray(p unsafe.Pointer, num, size int) unsafe.Pointer {
	return defaultHeap.ReallocArray(p, num, size)
}

// AlignedAlloc allocates n align-aligned bytes from the default heap.
func AlignedAlloc(align, n int) unsafe.Pointer { return defaultHeap.AlignedAlloc(align, n) }

// Memalign allocates n align-aligned bytes from the default heap, reporting
// failures as errors.
func Memalign(align, n int) (unsafe.Pointer, error) { return defaultHeap.Memalign(align, n) }

// Valloc allocates n page-aligned bytes from the default heap.
func Valloc(n int) unsafe.Pointer { return defaultHeap.Valloc(n) }

// Pvalloc allocates page-aligned whole pages covering n bytes from the
// default heap.
func Pvalloc(n int) unsafe.Pointer { return defaultHeap.Pvalloc(n) }

// UsableSize reports the payload capacity behind a default-heap pointer.
func UsableSize(p unsafe.Pointer) int { return defaultHeap.UsableSize(p) }

// GoodSize reports the capacity Malloc(n) would deliver.
func GoodSize(n int) int { return defaultHeap.GoodSize(n) }

// Mallopt accepts and ignores a tuning request.
func Mallopt(param, value int) bool { return defaultHeap.Mallopt(param, value) }

// Bytes allocates an off-heap buf of len n from the default heap.
func Bytes(n int) []byte { return defaultHeap.Bytes(n) }

// FreeBytes returns a buf created by Bytes to the default heap.
func FreeBytes(buf []byte) { defaultHeap.FreeBytes(buf) }

// DumpStats writes the default heap's counter report to its StatsPath.
func DumpStats() error { return defaultHeap.DumpStats() }
