package models

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay bounds interval endpoints.
const MinutesPerDay = 24 * 60

// ErrInvalidInterval reports a malformed scheduling input. It is a data
// error: the operation carrying it fails and is not retried.
var ErrInvalidInterval = errors.New("invalid time interval")

// TimeInterval is a half-open clock interval [Start, End) in minutes from
// midnight (e.g., 480 for 8:00 AM).
type TimeInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewTimeInterval validates bounds and ordering.
func NewTimeInterval(start, end int) (TimeInterval, error) {
	if start < 0 || end > MinutesPerDay || start >= end {
		return TimeInterval{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidInterval, start, end)
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any minute.
// Touching endpoints do not overlap. Commutative.
func (a TimeInterval) Overlaps(b TimeInterval) bool {
	return a.Start < b.End && b.Start < a.End
}

func (a TimeInterval) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", a.Start/60, a.Start%60, a.End/60, a.End%60)
}

// WeekParity says which weeks of the term a meeting occurs in.
type WeekParity int

const (
	WeekAll WeekParity = iota
	WeekOdd
	WeekEven
)

// CompatibleWith reports whether two parities can land on the same week.
// All is compatible with anything; Odd and Even are disjoint.
func (p WeekParity) CompatibleWith(q WeekParity) bool {
	return p == WeekAll || q == WeekAll || p == q
}

func (p WeekParity) String() string {
	switch p {
	case WeekOdd:
		return "odd"
	case WeekEven:
		return "even"
	default:
		return "all"
	}
}

// ScheduledSession is one weekly meeting of a course offering. Immutable;
// built from a schedule row and only ever compared pairwise.
type ScheduledSession struct {
	InstanceID int
	CourseName string
	Weekday    time.Weekday
	Interval   TimeInterval
	Parity     WeekParity
}
