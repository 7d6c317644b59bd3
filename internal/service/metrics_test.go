package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/course-scheduler-api/internal/models"
)

func TestBuildMetricsSummaries(t *testing.T) {
	input := models.SchedulingInput{
		Courses: []models.Course{
			{ID: "C1", Name: "A", InstructorID: "I1", Enrollment: 25, SessionsPerWeek: 2},
		},
		Instructors: []models.Instructor{
			{ID: "I1", Name: "A", PreferredTimeSlots: []string{"T1"}},
		},
		Rooms: []models.Room{{ID: "R1", Name: "Hall", Capacity: 50}},
		TimeSlots: []models.TimeSlot{
			{ID: "T1", Day: models.DayMon, Start: "09:00", End: "10:00"},
			{ID: "T2", Day: models.DayTue, Start: "09:00", End: "10:00"},
		},
	}
	assignments := []models.Assignment{
		{SessionID: "C1::S1", CourseID: "C1", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T1"},
	}
	validation := ValidateSchedule(input, assignments)
	breakdown := computeObjectiveBreakdown(input, assignments, models.DefaultObjectiveWeights())

	metrics := buildMetrics(input, assignments, validation, breakdown)

	assert.Equal(t, 2, metrics.SessionsRequired)
	assert.Equal(t, 1, metrics.SessionsScheduled)
	assert.Equal(t, 50.0, metrics.CoveragePct)
	assert.Equal(t, 50.0, metrics.RoomUtilizationPct)
	assert.Equal(t, 100.0, metrics.InstructorPreferencePct)
	assert.Equal(t, 1, metrics.HardViolations)
	assert.Equal(t, breakdown, metrics.ObjectiveBreakdown)
}

func TestBuildMetricsEmptyAssignments(t *testing.T) {
	input := models.SchedulingInput{
		Courses: []models.Course{{ID: "C1", Name: "A", InstructorID: "I1", Enrollment: 10, SessionsPerWeek: 1}},
	}
	validation := ValidateSchedule(input, nil)
	breakdown := computeObjectiveBreakdown(input, nil, models.DefaultObjectiveWeights())

	metrics := buildMetrics(input, nil, validation, breakdown)

	assert.Equal(t, 1, metrics.SessionsRequired)
	assert.Equal(t, 0, metrics.SessionsScheduled)
	assert.Equal(t, 0.0, metrics.CoveragePct)
	assert.Equal(t, 0.0, metrics.RoomUtilizationPct)
	assert.Equal(t, 0.0, metrics.InstructorPreferencePct)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 33.33, round2(100.0/3.0))
	assert.Equal(t, 0.1235, round4(0.12345))
}
