package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/utils"
)

var weekdayNames = map[string]time.Weekday{
	"星期日": time.Sunday,
	"星期一": time.Monday,
	"星期二": time.Tuesday,
	"星期三": time.Wednesday,
	"星期四": time.Thursday,
	"星期五": time.Friday,
	"星期六": time.Saturday,
}

// ParseWeekday maps a portal weekday label (星期一 .. 星期日) to time.Weekday.
func ParseWeekday(label string) (time.Weekday, error) {
	if d, ok := weekdayNames[strings.TrimSpace(label)]; ok {
		return d, nil
	}
	return time.Sunday, fmt.Errorf("unknown weekday label %q", label)
}

// ParseParity maps a portal week-type label to a WeekParity. Unknown labels
// fall back to WeekAll, matching the portal's permissive rendering.
func ParseParity(label string) models.WeekParity {
	switch strings.TrimSpace(label) {
	case utils.WeekLabelOdd:
		return models.WeekOdd
	case utils.WeekLabelEven:
		return models.WeekEven
	default:
		return models.WeekAll
	}
}

// ParseClock converts "HH:MM" or "HH:MM:SS" to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// ParseTimeRange converts "08:00-09:35" into a validated interval.
func ParseTimeRange(s string) (models.TimeInterval, error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return models.TimeInterval{}, fmt.Errorf("malformed time range %q", s)
	}
	startMin, err := ParseClock(start)
	if err != nil {
		return models.TimeInterval{}, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return models.TimeInterval{}, err
	}
	return models.NewTimeInterval(startMin, endMin)
}

// SessionFromEntry turns a schedule row into a comparable session.
func SessionFromEntry(e models.ScheduleEntry) (models.ScheduledSession, error) {
	weekday, err := ParseWeekday(e.Weekday)
	if err != nil {
		return models.ScheduledSession{}, err
	}
	startMin, err := ParseClock(e.StartTime)
	if err != nil {
		return models.ScheduledSession{}, err
	}
	endMin, err := ParseClock(e.EndTime)
	if err != nil {
		return models.ScheduledSession{}, err
	}
	interval, err := models.NewTimeInterval(startMin, endMin)
	if err != nil {
		return models.ScheduledSession{}, err
	}
	return models.ScheduledSession{
		InstanceID: e.InstanceID,
		CourseName: e.CourseName,
		Weekday:    weekday,
		Interval:   interval,
		Parity:     ParseParity(e.WeekType),
	}, nil
}

// SessionsFromEntries converts a whole schedule, failing on the first
// malformed row.
func SessionsFromEntries(entries []models.ScheduleEntry) ([]models.ScheduledSession, error) {
	sessions := make([]models.ScheduledSession, 0, len(entries))
	for _, e := range entries {
		s, err := SessionFromEntry(e)
		if err != nil {
			return nil, fmt.Errorf("schedule row for %q: %w", e.CourseName, err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// Period is one of the portal's standard teaching periods.
type Period struct {
	Label string
	Value int
	Range string // e.g. "08:00-09:35"
}

// Periods lists the portal's standard teaching periods.
var Periods = []Period{
	{Label: "第1-2节", Value: 1, Range: "08:00-09:35"},
	{Label: "第3-4节", Value: 2, Range: "10:00-11:35"},
	{Label: "第5-6节", Value: 3, Range: "14:00-15:35"},
	{Label: "第7-8节", Value: 4, Range: "16:00-17:35"},
	{Label: "第9-10节", Value: 5, Range: "19:00-20:35"},
}
