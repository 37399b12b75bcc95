package engine

import "time"

// DefaultSafetyFactor is the share of the move budget the search may use.
// The rest covers unwinding the aborted pass and returning the move.
const DefaultSafetyFactor = 0.85

// nodeCheckMask sets how often the clock is read: every 64 nodes.
const nodeCheckMask = 63

// TimeManager turns a per-move budget into a search deadline.
type TimeManager struct {
	startTime time.Time
	deadline  time.Time
}

// Init starts the clock for a search of the given budget.
func (tm *TimeManager) Init(budget time.Duration, safety float64) {
	tm.startTime = time.Now()
	tm.deadline = tm.startTime.Add(time.Duration(float64(budget) * safety))
}

// Expired reports whether the deadline has passed.
func (tm *TimeManager) Expired() bool {
	return !time.Now().Before(tm.deadline)
}

// Elapsed returns the time since Init.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// Remaining returns the time left before the deadline, never negative.
func (tm *TimeManager) Remaining() time.Duration {
	return max(time.Until(tm.deadline), 0)
}
