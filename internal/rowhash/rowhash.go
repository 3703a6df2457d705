// Package rowhash derives a stable 64-bit key for a trip row from its
// identifying columns and a seed. The key is a SHA256 prefix, so it is
// reproducible bit-for-bit across runs and platforms and does not depend
// on any PRNG's seeding convention.
package rowhash

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
)

// Key computes the sampling key for one row.
// Formula: first 8 bytes (big-endian) of
// SHA256(seed|pickup_ns|dropoff_ns|location|fare_bits|distance_bits).
// Monetary and distance values are keyed by their exact float64 bit
// patterns to avoid any formatting ambiguity.
func Key(seed uint64, pickupUnixNano, dropoffUnixNano, locationID int64, fare, distance float64) uint64 {
	data := fmt.Sprintf("%d|%d|%d|%d|%d|%d",
		seed,
		pickupUnixNano,
		dropoffUnixNano,
		locationID,
		math.Float64bits(fare),
		math.Float64bits(distance),
	)

	hash := sha256.Sum256([]byte(data))
	return binary.BigEndian.Uint64(hash[:8])
}
