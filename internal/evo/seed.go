package evo

import (
	"math/rand"
	"time"
)

// ResolveSeed returns seed unchanged when fixed is set, otherwise a fresh
// non-negative seed the caller should record to reproduce the run.
func ResolveSeed(seed int64, fixed bool) int64 {
	if fixed {
		return seed
	}
	return rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
}
