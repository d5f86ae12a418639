// Package seeded provides reproducible pseudo-randomness keyed by strings.
//
// Seeds are derived with 64-bit FNV-1a and expanded with SplitMix64, both fully specified
// algorithms, so the same key yields the same sequence on every platform and process.
package seeded

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"
)

// Hash returns the 64-bit FNV-1a hash of s
func Hash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Source is a SplitMix64 generator. It satisfies math/rand/v2.Source.
type Source struct {
	state uint64
}

// NewSource returns a SplitMix64 source starting at seed
func NewSource(seed uint64) *Source {
	return &Source{state: seed}
}

// Uint64 advances the generator and returns the next value
func (s *Source) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns a uniform sample in [0,1) built from the top 53 bits of the next value
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// ForKey returns a source seeded from the hash of key
func ForKey(key string) *Source {
	return NewSource(Hash(key))
}

// ForParts joins parts with "_" and seeds a source from the result
func ForParts(parts ...string) *Source {
	return ForKey(strings.Join(parts, "_"))
}

// Rand wraps a keyed source in a *rand.Rand for shuffles and bounded draws
func Rand(key string) *rand.Rand {
	return rand.New(ForKey(key))
}
