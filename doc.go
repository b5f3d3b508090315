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

// Package mallocx is a general-purpose off-heap allocator built on
// segregated power-of-two free lists backed by anonymous page mappings.
//
// A Heap keeps one lock-free LIFO per size class. Class i holds blocks of
// exactly 1<<i bytes, a 16-byte in-band header included. An empty class
// refills by splitting a block popped from the class above; the largest
// class maps fresh spans from the OS. Requests too large for the largest
// class are mapped directly in whole pages and unmapped again on Free.
//
// Memory returned by a Heap is invisible to the garbage collector. Never
// store Go pointers in it; the collector will not find them and will reclaim
// or move the referents. Plain data (integers, floats, byte payloads,
// pointer-free structs) is safe.
//
// All Heap operations are safe for concurrent use by any number of
// goroutines and never take a lock; the only blocking calls are the mmap
// and munmap system calls on refill and on the oversized paths.
package mallocx
