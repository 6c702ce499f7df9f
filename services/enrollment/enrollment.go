// Package enrollment is the client-side enrollment workflow: it rejects an
// enrollment attempt locally when the candidate's meeting times collide
// with the student's existing schedule, and otherwise forwards it.
package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/schedule"

	"go.uber.org/zap"
)

// ErrScheduleConflict marks a locally detected time conflict.
var ErrScheduleConflict = errors.New("schedule conflict")

// PortalAPI is the slice of the typed API surface this workflow uses.
type PortalAPI interface {
	GetStudentSchedule(ctx context.Context, studentID, termID int) ([]models.ScheduleEntry, error)
	EnrollCourse(ctx context.Context, studentID, instanceID int) error
	DropCourse(ctx context.Context, studentID, instanceID int) error
}

type Service struct {
	API    PortalAPI
	Logger *zap.Logger
}

// Enroll checks the candidate's meetings against the student's current
// schedule for the term and enrolls only when no meeting collides. The
// server still revalidates; this check exists to fail fast with the exact
// clashing course.
func (s *Service) Enroll(ctx context.Context, studentID, termID int, candidate models.AvailableCourse) error {
	entries, err := s.API.GetStudentSchedule(ctx, studentID, termID)
	if err != nil {
		return err
	}
	existing, err := schedule.SessionsFromEntries(entries)
	if err != nil {
		return err
	}

	for _, slot := range candidate.TimeSlots {
		weekday, err := schedule.ParseWeekday(slot.DayOfWeek)
		if err != nil {
			return err
		}
		start, err := schedule.ParseClock(slot.StartTime)
		if err != nil {
			return err
		}
		end, err := schedule.ParseClock(slot.EndTime)
		if err != nil {
			return err
		}
		interval, err := models.NewTimeInterval(start, end)
		if err != nil {
			return err
		}

		meeting := models.ScheduledSession{
			InstanceID: candidate.InstanceID,
			CourseName: candidate.CourseName,
			Weekday:    weekday,
			Interval:   interval,
		}
		if hit, found := schedule.FirstConflict(existing, meeting); found {
			s.Logger.Info("enrollment rejected by local conflict check",
				zap.Int("student_id", studentID),
				zap.Int("instance_id", candidate.InstanceID),
				zap.String("clashes_with", hit.CourseName))
			return fmt.Errorf("%w: %s与%s时间冲突", ErrScheduleConflict, candidate.CourseName, hit.CourseName)
		}
	}

	if err := s.API.EnrollCourse(ctx, studentID, candidate.InstanceID); err != nil {
		return err
	}
	s.Logger.Info("enrolled",
		zap.Int("student_id", studentID), zap.Int("instance_id", candidate.InstanceID))
	return nil
}

// Drop withdraws the student from a course offering.
func (s *Service) Drop(ctx context.Context, studentID, instanceID int) error {
	if err := s.API.DropCourse(ctx, studentID, instanceID); err != nil {
		return err
	}
	s.Logger.Info("dropped",
		zap.Int("student_id", studentID), zap.Int("instance_id", instanceID))
	return nil
}
