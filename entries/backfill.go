package entries

import "time"

// BackfillThreshold is the delay between the event time and the recording time
// after which an entry counts as backfilled.
const BackfillThreshold = time.Hour

// IsBackfilled reports whether the entry was recorded more than an hour after the
// measurement happened. Entries recorded before their event time are recorded early,
// not late, and are not backfilled. The classification only decides whether a live
// alert should react; backfilled entries are still part of every score and trend.
func IsBackfilled(timestamp, createdAt time.Time) bool {
	return createdAt.Sub(timestamp) > BackfillThreshold
}

func (e MetricEntry) IsBackfilled() bool {
	return IsBackfilled(e.Timestamp, e.CreatedAt)
}
