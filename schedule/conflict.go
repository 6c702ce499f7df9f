// Package schedule holds the course-time conflict detector and the parsing
// helpers that turn portal schedule rows into comparable sessions.
package schedule

import (
	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
)

// Conflicts reports whether two scheduled sessions collide: same weekday,
// compatible week parity, overlapping half-open intervals.
func Conflicts(x, y models.ScheduledSession) bool {
	if x.Weekday != y.Weekday {
		return false
	}
	if !x.Parity.CompatibleWith(y.Parity) {
		return false
	}
	return x.Interval.Overlaps(y.Interval)
}

// FirstConflict scans existing sessions for the first one colliding with
// the candidate. Short-circuits on the first hit.
func FirstConflict(existing []models.ScheduledSession, candidate models.ScheduledSession) (models.ScheduledSession, bool) {
	for _, s := range existing {
		if Conflicts(s, candidate) {
			return s, true
		}
	}
	return models.ScheduledSession{}, false
}
