// Package idgen issues record ids derived from the wall clock, the same
// shape as the millisecond ids already present in persisted data.
package idgen

import (
	"strconv"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	last int64
)

// Next returns the current Unix millisecond, bumped past the previously
// issued value when calls land on the same millisecond, so ids are unique
// and increasing within the process.
func Next() int64 {
	mu.Lock()
	defer mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= last {
		now = last + 1
	}
	last = now
	return now
}

// NextString is Next in the decimal string form user ids are stored as.
func NextString() string {
	return strconv.FormatInt(Next(), 10)
}
