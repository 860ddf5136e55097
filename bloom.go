// Copyright 2026 The Waypost Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package waypost

import "hash/fnv"

// bloomFilter guards the literal fast-path table against lookups for paths
// that are definitely not in it, so misses skip the map probe entirely.
// A hit only means "possibly present" and is always confirmed by the map.
//
// Implementation: FNV-1a base hash, varied per function by XOR with a seed.
type bloomFilter struct {
	bits  []uint64 // Bit array (each uint64 holds 64 bits)
	size  uint64   // Total number of bits
	seeds []uint64 // One seed per hash function
}

// newBloomFilter creates a bloom filter with the given bit count and number
// of hash functions. Callers size it via optimalBloomSize.
func newBloomFilter(size uint64, hashFuncs int) *bloomFilter {
	bf := &bloomFilter{
		bits:  make([]uint64, (size+63)/64),
		size:  size,
		seeds: make([]uint64, hashFuncs),
	}
	for i := range hashFuncs {
		bf.seeds[i] = uint64(i + 1)
	}

	return bf
}

// optimalBloomSize returns a bit count for the expected number of entries.
// Ten bits per entry gives roughly a 1% false positive rate with three hash
// functions; clamped to avoid degenerate and runaway sizes.
func optimalBloomSize(entries int) uint64 {
	if entries <= 0 {
		return defaultBloomFilterSize
	}
	size := uint64(entries) * 10
	if size < 100 {
		return 100
	}
	if size > 1_000_000 {
		return 1_000_000
	}

	return size
}

func (bf *bloomFilter) position(baseHash, seed uint64) uint64 {
	return (baseHash ^ seed) % bf.size
}

// add records a key in the filter.
func (bf *bloomFilter) add(key string) {
	h := fnv.New64a()
	h.Write([]byte(key))
	base := h.Sum64()

	for _, seed := range bf.seeds {
		pos := bf.position(base, seed)
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// test reports whether the key might be present. A false return is
// definitive; early exit on the first unset bit keeps misses cheap.
func (bf *bloomFilter) test(key string) bool {
	h := fnv.New64a()
	h.Write([]byte(key))
	base := h.Sum64()

	for _, seed := range bf.seeds {
		pos := bf.position(base, seed)
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}

	return true
}
