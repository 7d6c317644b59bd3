package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-scheduler-api/internal/models"
)

func heuristicFixture() models.SchedulingInput {
	input := models.SchedulingInput{
		Courses: []models.Course{
			{ID: "CS101", Name: "Intro", InstructorID: "I1", Enrollment: 30, SessionsPerWeek: 2},
		},
		Instructors: []models.Instructor{
			{ID: "I1", Name: "Prof A"},
		},
		Rooms: []models.Room{
			{ID: "R1", Name: "Hall", Capacity: 50},
		},
		TimeSlots: []models.TimeSlot{
			{ID: "T1", Day: models.DayMon, Start: "09:00", End: "10:00", Order: 0},
			{ID: "T2", Day: models.DayTue, Start: "09:00", End: "10:00", Order: 1},
			{ID: "T3", Day: models.DayWed, Start: "09:00", End: "10:00", Order: 2},
		},
	}
	input.Normalize()
	return input
}

func TestBuildFeasibleCandidatesFilters(t *testing.T) {
	input := heuristicFixture()
	input.Courses[0].RequiredFeatures = []string{"lab"}
	input.Rooms = append(input.Rooms, models.Room{ID: "R2", Name: "Lab", Capacity: 40, Features: []string{"lab"}})
	input.Instructors[0].AvailableTimeSlots = []string{"T1", "T2"}

	sessions := models.ExpandSessions(input.Courses)
	feasible := buildFeasibleCandidates(input, sessions)

	require.Len(t, feasible["CS101::S1"], 2)
	for _, option := range feasible["CS101::S1"] {
		assert.Equal(t, "R2", option.roomID)
		assert.Contains(t, []string{"T1", "T2"}, option.slotID)
	}
}

func TestBuildFeasibleCandidatesUnknownInstructor(t *testing.T) {
	input := heuristicFixture()
	input.Courses[0].InstructorID = "GHOST"

	sessions := models.ExpandSessions(input.Courses)
	feasible := buildFeasibleCandidates(input, sessions)

	assert.Empty(t, feasible["CS101::S1"])
}

func TestHeuristicSchedulesAllSessions(t *testing.T) {
	input := heuristicFixture()

	out := solveWithHeuristic(input)

	assert.Equal(t, models.StatusFallback, out.status)
	require.Len(t, out.assignments, 2)

	days := map[string]struct{}{}
	slotByID := map[string]models.TimeSlot{}
	for _, slot := range input.TimeSlots {
		slotByID[slot.ID] = slot
	}
	for _, assignment := range out.assignments {
		days[slotByID[assignment.TimeSlotID].Day] = struct{}{}
	}
	// Same-day avoidance holds for the two sessions of the one course.
	assert.Len(t, days, 2)

	report := ValidateSchedule(input, out.assignments)
	assert.True(t, report.Valid)
}

func TestHeuristicPartialOnOverload(t *testing.T) {
	input := heuristicFixture()
	// Two sessions, one slot: only one can be placed.
	input.TimeSlots = input.TimeSlots[:1]

	out := solveWithHeuristic(input)

	assert.Equal(t, models.StatusFallbackPartial, out.status)
	assert.Len(t, out.assignments, 1)
	assert.Contains(t, out.notes, "1 session(s) were left unscheduled due to constraint overload.")
}

func TestHeuristicRespectsInstructorDailyCap(t *testing.T) {
	input := heuristicFixture()
	input.Courses[0].SessionsPerWeek = 2
	off := false
	input.Courses[0].AvoidSameDaySessions = &off
	input.Instructors[0].MaxSessionsPerDay = 1
	// All slots on the same day so the cap binds.
	input.TimeSlots = []models.TimeSlot{
		{ID: "T1", Day: models.DayMon, Start: "09:00", End: "10:00", Order: 0},
		{ID: "T2", Day: models.DayMon, Start: "10:00", End: "11:00", Order: 1},
	}

	out := solveWithHeuristic(input)

	assert.Equal(t, models.StatusFallbackPartial, out.status)
	assert.Len(t, out.assignments, 1)
}

func TestHeuristicPrefersInstructorSlots(t *testing.T) {
	input := heuristicFixture()
	input.Courses[0].SessionsPerWeek = 1
	input.Instructors[0].PreferredTimeSlots = []string{"T3"}

	out := solveWithHeuristic(input)

	require.Len(t, out.assignments, 1)
	assert.Equal(t, "T3", out.assignments[0].TimeSlotID)
}

func TestHeuristicIsDeterministic(t *testing.T) {
	input := heuristicFixture()
	input.Courses = append(input.Courses, models.Course{
		ID: "MA201", Name: "Calc", InstructorID: "I1", Enrollment: 20, SessionsPerWeek: 1, Priority: 8,
	})
	input.Normalize()

	first := solveWithHeuristic(input)
	second := solveWithHeuristic(input)

	assert.Equal(t, first.assignments, second.assignments)
	assert.Equal(t, first.status, second.status)
}
