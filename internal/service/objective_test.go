package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/course-scheduler-api/internal/models"
)

func TestUtilizationPercentTruncates(t *testing.T) {
	assert.Equal(t, 50, utilizationPercent(25, 50))
	assert.Equal(t, 66, utilizationPercent(2, 3))
	assert.Equal(t, 0, utilizationPercent(10, 0))
	assert.Equal(t, 100, utilizationPercent(50, 50))
}

func TestComputeObjectiveBreakdownComponents(t *testing.T) {
	input := models.SchedulingInput{
		Courses: []models.Course{
			{ID: "CS101", Name: "Intro", InstructorID: "I1", Enrollment: 25,
				SessionsPerWeek: 1, Priority: 5, PreferredTimeSlots: []string{"T1"}},
		},
		Instructors: []models.Instructor{
			{ID: "I1", Name: "Prof A", PreferredTimeSlots: []string{"T1"}},
		},
		Rooms: []models.Room{
			{ID: "R1", Name: "Hall", Capacity: 50},
		},
		TimeSlots: []models.TimeSlot{
			{ID: "T1", Day: models.DayMon, Start: "09:00", End: "10:00"},
		},
	}
	weights := models.ObjectiveWeights{InstructorPreference: 5, RoomEfficiency: 3, ClusterCompactness: 4, CoursePriority: 2}

	breakdown := computeObjectiveBreakdown(input, []models.Assignment{
		{SessionID: "CS101::S1", CourseID: "CS101", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T1"},
	}, weights)

	assert.Equal(t, float64(100*5), breakdown[models.ObjectiveInstructorPreference])
	assert.Equal(t, float64(50*3), breakdown[models.ObjectiveRoomEfficiency])
	assert.Equal(t, float64(5*20*2), breakdown[models.ObjectiveCoursePriority])
	assert.Equal(t, float64(0), breakdown[models.ObjectiveClusterCompactness])
	assert.Equal(t, float64(500+150+200), breakdown[models.ObjectiveTotal])
}

func TestComputeObjectiveBreakdownClusterPenalty(t *testing.T) {
	input := models.SchedulingInput{
		Courses: []models.Course{
			{ID: "C1", Name: "A", InstructorID: "I1", Enrollment: 10, SessionsPerWeek: 1, ClusterTag: "year1", Priority: 5},
			{ID: "C2", Name: "B", InstructorID: "I2", Enrollment: 10, SessionsPerWeek: 1, ClusterTag: "year1", Priority: 5},
		},
		Instructors: []models.Instructor{{ID: "I1", Name: "A"}, {ID: "I2", Name: "B"}},
		Rooms:       []models.Room{{ID: "R1", Name: "Hall", Capacity: 100}},
		TimeSlots: []models.TimeSlot{
			{ID: "T1", Day: models.DayMon, Start: "09:00", End: "10:00"},
			{ID: "T2", Day: models.DayTue, Start: "09:00", End: "10:00"},
			{ID: "T3", Day: models.DayMon, Start: "10:00", End: "11:00"},
		},
	}
	weights := models.ObjectiveWeights{ClusterCompactness: 4}

	spread := computeObjectiveBreakdown(input, []models.Assignment{
		{SessionID: "C1::S1", CourseID: "C1", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T1"},
		{SessionID: "C2::S1", CourseID: "C2", InstructorID: "I2", RoomID: "R1", TimeSlotID: "T2"},
	}, weights)
	compact := computeObjectiveBreakdown(input, []models.Assignment{
		{SessionID: "C1::S1", CourseID: "C1", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T1"},
		{SessionID: "C2::S1", CourseID: "C2", InstructorID: "I2", RoomID: "R1", TimeSlotID: "T3"},
	}, weights)

	assert.Equal(t, float64(-2*100*4), spread[models.ObjectiveClusterCompactness])
	assert.Equal(t, float64(-1*100*4), compact[models.ObjectiveClusterCompactness])
}

func TestComputeObjectiveBreakdownSkipsDanglingReferences(t *testing.T) {
	input := models.SchedulingInput{
		Courses:     []models.Course{{ID: "C1", Name: "A", InstructorID: "I1", Enrollment: 10, SessionsPerWeek: 1}},
		Instructors: []models.Instructor{{ID: "I1", Name: "A"}},
		Rooms:       []models.Room{{ID: "R1", Name: "Hall", Capacity: 100}},
		TimeSlots:   []models.TimeSlot{{ID: "T1", Day: models.DayMon, Start: "09:00", End: "10:00"}},
	}

	breakdown := computeObjectiveBreakdown(input, []models.Assignment{
		{SessionID: "C1::S1", CourseID: "C1", InstructorID: "I1", RoomID: "NOPE", TimeSlotID: "T1"},
	}, models.DefaultObjectiveWeights())

	assert.Equal(t, float64(0), breakdown[models.ObjectiveTotal])
}

func TestAssignmentLocalScoreClusterAsymmetry(t *testing.T) {
	session := models.Session{SessionID: "C1::S1", Enrollment: 20, Priority: 5, ClusterTag: "year1"}
	weights := models.ObjectiveWeights{ClusterCompactness: 4}
	none := map[string]struct{}{}
	committed := map[string]struct{}{models.DayMon: {}}

	fresh := assignmentLocalScore(session, nil, 40, "T1", models.DayMon, weights, none)
	reuse := assignmentLocalScore(session, nil, 40, "T1", models.DayMon, weights, committed)
	newDay := assignmentLocalScore(session, nil, 40, "T1", models.DayTue, weights, committed)

	assert.Equal(t, 0, fresh)
	assert.Equal(t, 50*4, reuse)
	assert.Equal(t, -100*4, newDay)
}
