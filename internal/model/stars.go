package model

import "time"

type StarCacheEntry struct {
	StarCount   int64
	LastFetched time.Time
}

// Fetched reports whether the entry has ever been filled from upstream.
func (e StarCacheEntry) Fetched() bool {
	return !e.LastFetched.IsZero()
}
