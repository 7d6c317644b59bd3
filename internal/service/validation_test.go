package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-scheduler-api/internal/models"
)

func validationFixture() models.SchedulingInput {
	return models.SchedulingInput{
		Courses: []models.Course{
			{ID: "CS101", Name: "Intro", InstructorID: "I1", Enrollment: 30, SessionsPerWeek: 1, RequiredFeatures: []string{"projector"}},
		},
		Instructors: []models.Instructor{
			{ID: "I1", Name: "Prof A", AvailableTimeSlots: []string{"T1", "T2"}},
		},
		Rooms: []models.Room{
			{ID: "R1", Name: "Hall", Capacity: 50, Features: []string{"projector"}},
			{ID: "R2", Name: "Seminar", Capacity: 10, Features: nil},
		},
		TimeSlots: []models.TimeSlot{
			{ID: "T1", Day: models.DayMon, Start: "09:00", End: "10:00", Order: 0},
			{ID: "T2", Day: models.DayTue, Start: "09:00", End: "10:00", Order: 1},
			{ID: "T3", Day: models.DayWed, Start: "09:00", End: "10:00", Order: 2},
		},
	}
}

func issueCodes(report models.ValidationReport) []string {
	codes := make([]string, 0, len(report.Issues))
	for _, issue := range report.Issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestValidateScheduleAcceptsCorrectAssignment(t *testing.T) {
	input := validationFixture()
	report := ValidateSchedule(input, []models.Assignment{
		{SessionID: "CS101::S1", CourseID: "CS101", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T1"},
	})

	assert.True(t, report.Valid)
	assert.Empty(t, report.Issues)
}

func TestValidateScheduleUnknownSessionSkipsRecordChecks(t *testing.T) {
	input := validationFixture()
	report := ValidateSchedule(input, []models.Assignment{
		{SessionID: "GHOST::S1", CourseID: "GHOST", InstructorID: "I9", RoomID: "R9", TimeSlotID: "T9"},
	})

	codes := issueCodes(report)
	assert.Contains(t, codes, models.CodeUnknownSession)
	// Record-level checks are skipped for unknown sessions; the real
	// session still surfaces as unassigned.
	assert.NotContains(t, codes, models.CodeUnknownRoom)
	assert.Contains(t, codes, models.CodeMissingSessionAssignment)
}

func TestValidateScheduleDuplicateAssignment(t *testing.T) {
	input := validationFixture()
	assignment := models.Assignment{SessionID: "CS101::S1", CourseID: "CS101", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T1"}
	report := ValidateSchedule(input, []models.Assignment{assignment, assignment})

	assert.False(t, report.Valid)
	assert.Contains(t, issueCodes(report), models.CodeDuplicateSessionAssignment)
}

func TestValidateScheduleCapacityAndFeatures(t *testing.T) {
	input := validationFixture()
	report := ValidateSchedule(input, []models.Assignment{
		{SessionID: "CS101::S1", CourseID: "CS101", InstructorID: "I1", RoomID: "R2", TimeSlotID: "T1"},
	})

	codes := issueCodes(report)
	assert.Contains(t, codes, models.CodeRoomCapacityViolation)
	assert.Contains(t, codes, models.CodeRoomFeatureViolation)

	for _, issue := range report.Issues {
		if issue.Code == models.CodeRoomFeatureViolation {
			assert.Equal(t, []string{"projector"}, issue.Details["missing_features"])
		}
	}
}

func TestValidateScheduleInstructorAvailabilityAndWindow(t *testing.T) {
	input := validationFixture()
	input.Courses[0].AllowedTimeSlots = []string{"T1"}
	report := ValidateSchedule(input, []models.Assignment{
		{SessionID: "CS101::S1", CourseID: "CS101", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T3"},
	})

	codes := issueCodes(report)
	assert.Contains(t, codes, models.CodeInstructorAvailabilityViolation)
	assert.Contains(t, codes, models.CodeCourseTimeWindowViolation)
}

func TestValidateScheduleMismatchedReferences(t *testing.T) {
	input := validationFixture()
	report := ValidateSchedule(input, []models.Assignment{
		{SessionID: "CS101::S1", CourseID: "WRONG", InstructorID: "I9", RoomID: "R1", TimeSlotID: "T1"},
	})

	codes := issueCodes(report)
	assert.Contains(t, codes, models.CodeCourseMismatch)
	assert.Contains(t, codes, models.CodeInstructorMismatch)
}

func TestValidateScheduleCrossRecordConflicts(t *testing.T) {
	input := validationFixture()
	input.Courses = append(input.Courses, models.Course{
		ID: "MA201", Name: "Calc", InstructorID: "I1", Enrollment: 20, SessionsPerWeek: 1,
	})

	report := ValidateSchedule(input, []models.Assignment{
		{SessionID: "CS101::S1", CourseID: "CS101", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T1"},
		{SessionID: "MA201::S1", CourseID: "MA201", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T1"},
	})

	codes := issueCodes(report)
	assert.Contains(t, codes, models.CodeRoomTimeConflict)
	assert.Contains(t, codes, models.CodeInstructorTimeConflict)
}

func TestValidateScheduleMissingSessionsSorted(t *testing.T) {
	input := validationFixture()
	input.Courses[0].SessionsPerWeek = 2
	input.Courses = append(input.Courses, models.Course{
		ID: "AA100", Name: "First", InstructorID: "I1", Enrollment: 5, SessionsPerWeek: 1,
	})

	report := ValidateSchedule(input, nil)

	require.Len(t, report.Issues, 3)
	assert.Equal(t, "AA100::S1", report.Issues[0].Details["session_id"])
	assert.Equal(t, "CS101::S1", report.Issues[1].Details["session_id"])
	assert.Equal(t, "CS101::S2", report.Issues[2].Details["session_id"])
	for _, issue := range report.Issues {
		assert.Equal(t, models.CodeMissingSessionAssignment, issue.Code)
	}
}
