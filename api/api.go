// Package api exposes typed wrappers over the request pipeline for every
// portal endpoint the client consumes.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/client"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
)

// API groups the portal endpoints around one pipeline.
type API struct {
	client *client.Client
}

func New(c *client.Client) *API {
	return &API{client: c}
}

// Register creates a new portal account.
func (a *API) Register(ctx context.Context, req models.RegisterRequest) error {
	return a.client.Post(ctx, "/auth/register", req, nil)
}

// ChangePassword updates the current user's password.
func (a *API) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return a.client.Post(ctx, "/auth/change-password", req, nil)
}

// GetDepartments lists all departments.
func (a *API) GetDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := a.client.Get(ctx, "/common/departments", nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// GetAvailableCourses lists the courses the student may still enroll in.
func (a *API) GetAvailableCourses(ctx context.Context, studentID int) ([]models.AvailableCourse, error) {
	var courses []models.AvailableCourse
	path := fmt.Sprintf("/students/%d/available-courses", studentID)
	if err := a.client.Get(ctx, path, nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// EnrollCourse enrolls the student into a course offering.
func (a *API) EnrollCourse(ctx context.Context, studentID, instanceID int) error {
	path := fmt.Sprintf("/students/%d/enroll", studentID)
	return a.client.Post(ctx, path, models.EnrollRequest{InstanceID: instanceID}, nil)
}

// DropCourse withdraws the student from a course offering.
func (a *API) DropCourse(ctx context.Context, studentID, instanceID int) error {
	path := fmt.Sprintf("/students/%d/drop", studentID)
	return a.client.Post(ctx, path, models.EnrollRequest{InstanceID: instanceID}, nil)
}

func termQuery(termID int) url.Values {
	return url.Values{"semester_id": []string{strconv.Itoa(termID)}}
}

// GetStudentSchedule returns the student's schedule for one term.
func (a *API) GetStudentSchedule(ctx context.Context, studentID, termID int) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	path := fmt.Sprintf("/students/%d/schedule", studentID)
	if err := a.client.Get(ctx, path, termQuery(termID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetTeacherSchedule returns the teacher's schedule for one term.
func (a *API) GetTeacherSchedule(ctx context.Context, teacherID, termID int) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	path := fmt.Sprintf("/teachers/%d/schedule", teacherID)
	if err := a.client.Get(ctx, path, termQuery(termID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEnrolledStudents lists the students enrolled in one course offering.
func (a *API) GetEnrolledStudents(ctx context.Context, teacherID, instanceID int) ([]models.EnrolledStudent, error) {
	var students []models.EnrolledStudent
	path := fmt.Sprintf("/teachers/%d/students", teacherID)
	query := url.Values{"instance_id": []string{strconv.Itoa(instanceID)}}
	if err := a.client.Get(ctx, path, query, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetEnrollmentStatistics returns per-offering enrollment counts.
func (a *API) GetEnrollmentStatistics(ctx context.Context, termID int) ([]models.EnrollmentStat, error) {
	var stats []models.EnrollmentStat
	if err := a.client.Get(ctx, "/statistics/enrollment", termQuery(termID), &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetSystemOverview returns the portal-wide counters.
func (a *API) GetSystemOverview(ctx context.Context) (*models.SystemOverview, error) {
	var overview models.SystemOverview
	if err := a.client.Get(ctx, "/statistics/overview", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}
