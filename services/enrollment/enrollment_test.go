package enrollment

import (
	"context"
	"errors"
	"testing"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"

	"go.uber.org/zap"
)

type fakeAPI struct {
	schedule []models.ScheduleEntry
	enrolled []int
	dropped  []int
}

func (f *fakeAPI) GetStudentSchedule(_ context.Context, _, _ int) ([]models.ScheduleEntry, error) {
	return f.schedule, nil
}

func (f *fakeAPI) EnrollCourse(_ context.Context, _, instanceID int) error {
	f.enrolled = append(f.enrolled, instanceID)
	return nil
}

func (f *fakeAPI) DropCourse(_ context.Context, _, instanceID int) error {
	f.dropped = append(f.dropped, instanceID)
	return nil
}

func testSchedule() []models.ScheduleEntry {
	return []models.ScheduleEntry{
		{
			InstanceID: 1, CourseName: "数据结构",
			Weekday: "星期一", StartTime: "08:00:00", EndTime: "09:35:00",
			WeekType: "全部",
		},
		{
			InstanceID: 2, CourseName: "操作系统",
			Weekday: "星期三", StartTime: "14:00:00", EndTime: "15:35:00",
			WeekType: "全部",
		},
	}
}

func course(instanceID int, name, day, start, end string) models.AvailableCourse {
	return models.AvailableCourse{
		InstanceID: instanceID,
		CourseName: name,
		TimeSlots: []models.CourseTimeSlot{
			{DayOfWeek: day, StartTime: start, EndTime: end},
		},
	}
}

func TestEnrollRejectsConflict(t *testing.T) {
	api := &fakeAPI{schedule: testSchedule()}
	svc := &Service{API: api, Logger: zap.NewNop()}

	err := svc.Enroll(context.Background(), 7, 4, course(9, "编译原理", "星期一", "09:00", "10:35"))
	if !errors.Is(err, ErrScheduleConflict) {
		t.Fatalf("expected ErrScheduleConflict, got %v", err)
	}
	if len(api.enrolled) != 0 {
		t.Fatal("enroll call reached the server despite a conflict")
	}
}

func TestEnrollAdmitsFreeSlot(t *testing.T) {
	api := &fakeAPI{schedule: testSchedule()}
	svc := &Service{API: api, Logger: zap.NewNop()}

	if err := svc.Enroll(context.Background(), 7, 4, course(9, "编译原理", "星期二", "08:00", "09:35")); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if len(api.enrolled) != 1 || api.enrolled[0] != 9 {
		t.Fatalf("enroll calls = %v, want [9]", api.enrolled)
	}
}

func TestEnrollAdmitsTouchingSlot(t *testing.T) {
	api := &fakeAPI{schedule: testSchedule()}
	svc := &Service{API: api, Logger: zap.NewNop()}

	// Back-to-back with 数据结构: starts the minute the other ends.
	if err := svc.Enroll(context.Background(), 7, 4, course(9, "编译原理", "星期一", "09:35", "11:10")); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
}

func TestEnrollRejectsMalformedCandidate(t *testing.T) {
	api := &fakeAPI{schedule: testSchedule()}
	svc := &Service{API: api, Logger: zap.NewNop()}

	err := svc.Enroll(context.Background(), 7, 4, course(9, "编译原理", "星期一", "10:00", "09:00"))
	if !errors.Is(err, models.ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	if len(api.enrolled) != 0 {
		t.Fatal("enroll call reached the server with malformed input")
	}
}

func TestDrop(t *testing.T) {
	api := &fakeAPI{}
	svc := &Service{API: api, Logger: zap.NewNop()}

	if err := svc.Drop(context.Background(), 7, 2); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if len(api.dropped) != 1 || api.dropped[0] != 2 {
		t.Fatalf("drop calls = %v, want [2]", api.dropped)
	}
}
