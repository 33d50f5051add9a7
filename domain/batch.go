package domain

import (
	"math"
	"time"
)

// BatchID identifies an auction batch. Batch b spans
// [b*batchTime, (b+1)*batchTime) seconds since the unix epoch.
type BatchID uint32

// MaxBatchID is the sentinel used by orders that never expire.
const MaxBatchID BatchID = math.MaxUint32

// TimeSource returns the current wall clock time.
type TimeSource func() time.Time

// BatchIDAt returns the id of the batch running at now.
// batchTime is in seconds and must be positive.
func BatchIDAt(now time.Time, batchTime uint64) BatchID {
	return BatchID(uint64(now.Unix()) / batchTime)
}

// SecondsRemainingAt returns the number of seconds left in the batch running at now.
// The result is always in (0, batchTime].
func SecondsRemainingAt(now time.Time, batchTime uint64) uint64 {
	return batchTime - uint64(now.Unix())%batchTime
}

// BatchStart returns the wall clock time at which batch id starts.
func BatchStart(id BatchID, batchTime uint64) time.Time {
	return time.Unix(int64(uint64(id)*batchTime), 0).UTC()
}

// BatchEnd returns the wall clock time at which batch id ends (exclusive).
func BatchEnd(id BatchID, batchTime uint64) time.Time {
	return BatchStart(id, batchTime).Add(time.Duration(batchTime) * time.Second)
}

// BatchState is a snapshot of the batch clock for a network.
type BatchState struct {
	NetworkID        uint64  `json:"network_id"`
	BatchTime        uint64  `json:"batch_time"`
	CurrentBatchID   BatchID `json:"current_batch_id"`
	SecondsRemaining uint64  `json:"seconds_remaining"`
}
