package psb

import "time"

// EpochBase is the reference point for all capture timestamps in the
// shared-stream catalog: January 1, 2001 00:00:00 UTC.
var EpochBase = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// Album is a named shared photo stream tracked by the local cache.
type Album struct {
	Name string
	ID   string // catalog GUID; also the album's directory name under assets/
}

// Asset is one logical photo/video unit within an album. An asset may be
// materialized on disk as up to two files (a still image and a short motion
// clip for live photos).
type Asset struct {
	ID            string // UUID-like catalog GUID
	CaptureOffset int64  // seconds since EpochBase; 0 when the catalog has no capture time
}

// CaptureTime returns the asset's capture time in UTC. An unknown capture
// offset maps to the epoch base itself.
func (a Asset) CaptureTime() time.Time {
	return EpochBase.Add(time.Duration(a.CaptureOffset) * time.Second)
}
