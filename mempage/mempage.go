//go:build linux || darwin

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

// Package mempage wraps the OS anonymous page mapping primitives.
//
// It deals in raw pointers rather than slices so that callers holding only a
// block address can release page-aligned subranges of a mapping without
// carrying the original slice around.
package mempage

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

var pageSize = uintptr(unix.Getpagesize())

// Size returns the OS page size in bytes.
func Size() uintptr {
	return pageSize
}

// Round rounds n up to a whole number of pages.
func Round(n uintptr) uintptr {
	return (n + pageSize - 1) &^ (pageSize - 1)
}

// Alloc maps size bytes of zeroed anonymous memory.
// size should be a multiple of the page size; the kernel rounds up otherwise.
// Returns nil if the mapping fails.
func Alloc(size uintptr) unsafe.Pointer {
	b, err := unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b))
}

// Free unmaps size bytes at p. p must be page-aligned and the range must lie
// within a mapping previously returned by Alloc; it need not be the whole
// mapping.
func Free(p unsafe.Pointer, size uintptr) {
	_ = unix.Munmap(unsafe.Slice((*byte)(p), size))
}
