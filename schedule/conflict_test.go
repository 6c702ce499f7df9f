package schedule

import (
	"testing"
	"time"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
)

func mustInterval(t *testing.T, start, end int) models.TimeInterval {
	t.Helper()
	iv, err := models.NewTimeInterval(start, end)
	if err != nil {
		t.Fatalf("interval [%d,%d): %v", start, end, err)
	}
	return iv
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b models.TimeInterval
		want bool
	}{
		{"touching endpoints", models.TimeInterval{Start: 480, End: 575}, models.TimeInterval{Start: 575, End: 670}, false},
		{"five minute overlap", models.TimeInterval{Start: 480, End: 575}, models.TimeInterval{Start: 570, End: 665}, true},
		{"containment", models.TimeInterval{Start: 480, End: 700}, models.TimeInterval{Start: 500, End: 600}, true},
		{"identical", models.TimeInterval{Start: 480, End: 575}, models.TimeInterval{Start: 480, End: 575}, true},
		{"disjoint", models.TimeInterval{Start: 480, End: 575}, models.TimeInterval{Start: 840, End: 935}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// The predicate is commutative.
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestNewTimeIntervalRejectsBadBounds(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"start after end", 600, 480},
		{"zero length", 480, 480},
		{"negative start", -1, 60},
		{"end past midnight", 1400, 1441},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := models.NewTimeInterval(tc.start, tc.end); err == nil {
				t.Fatalf("NewTimeInterval(%d, %d) accepted invalid bounds", tc.start, tc.end)
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	morning := models.TimeInterval{Start: 480, End: 575}

	session := func(day time.Weekday, iv models.TimeInterval, p models.WeekParity) models.ScheduledSession {
		return models.ScheduledSession{Weekday: day, Interval: iv, Parity: p}
	}

	tests := []struct {
		name string
		x, y models.ScheduledSession
		want bool
	}{
		{
			"different weekdays never conflict",
			session(time.Monday, morning, models.WeekAll),
			session(time.Tuesday, morning, models.WeekAll),
			false,
		},
		{
			"odd and even weeks are disjoint",
			session(time.Monday, morning, models.WeekOdd),
			session(time.Monday, morning, models.WeekEven),
			false,
		},
		{
			"all weeks collides with odd weeks",
			session(time.Monday, morning, models.WeekAll),
			session(time.Monday, mustInterval(t, 500, 600), models.WeekOdd),
			true,
		},
		{
			"same day touching intervals",
			session(time.Friday, morning, models.WeekAll),
			session(time.Friday, mustInterval(t, 575, 670), models.WeekAll),
			false,
		},
		{
			"same day same parity overlap",
			session(time.Friday, morning, models.WeekOdd),
			session(time.Friday, mustInterval(t, 570, 665), models.WeekOdd),
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Conflicts(tc.x, tc.y); got != tc.want {
				t.Fatalf("Conflicts = %v, want %v", got, tc.want)
			}
			if got := Conflicts(tc.y, tc.x); got != tc.want {
				t.Fatalf("Conflicts reversed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFirstConflictShortCircuits(t *testing.T) {
	existing := []models.ScheduledSession{
		{InstanceID: 1, CourseName: "数据结构", Weekday: time.Monday, Interval: models.TimeInterval{Start: 480, End: 575}},
		{InstanceID: 2, CourseName: "操作系统", Weekday: time.Wednesday, Interval: models.TimeInterval{Start: 600, End: 695}},
		{InstanceID: 3, CourseName: "数据库", Weekday: time.Wednesday, Interval: models.TimeInterval{Start: 840, End: 935}},
	}

	candidate := models.ScheduledSession{
		InstanceID: 9, CourseName: "编译原理",
		Weekday:  time.Wednesday,
		Interval: models.TimeInterval{Start: 650, End: 745},
	}

	hit, found := FirstConflict(existing, candidate)
	if !found {
		t.Fatal("expected a conflict")
	}
	if hit.InstanceID != 2 {
		t.Fatalf("expected first conflicting instance 2, got %d", hit.InstanceID)
	}

	free := models.ScheduledSession{Weekday: time.Sunday, Interval: models.TimeInterval{Start: 480, End: 575}}
	if _, found := FirstConflict(existing, free); found {
		t.Fatal("unexpected conflict for a free slot")
	}
}
