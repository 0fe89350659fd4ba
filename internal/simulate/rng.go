package simulate

import (
	"fmt"
	"math/rand"
)

// StreamSeed derives a deterministic per-replicate seed from the root seed
// and the replicate index. Every replicate owns its own non-overlapping
// stream, so results are reproducible regardless of worker count or
// scheduling order.
func StreamSeed(rootSeed int64, replicate int) int64 {
	return rootSeed + int64(hashString(fmt.Sprintf("replicate_%d", replicate)))
}

// Stream creates the replicate-local random source for a given index.
func Stream(rootSeed int64, replicate int) *rand.Rand {
	return rand.New(rand.NewSource(StreamSeed(rootSeed, replicate)))
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
