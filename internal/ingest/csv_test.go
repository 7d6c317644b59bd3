package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-scheduler-api/pkg/errors"
)

const coursesCSV = `id,name,instructor_id,enrollment,sessions_per_week,required_features,preferred_time_slots,allowed_time_slots,cluster_tag,priority,avoid_same_day_sessions
CS101,Intro,I1,30,2,projector|lab,T1|T2,,year1,7,true
MA201,Calc,I2,25,,,,,,,
`

const instructorsCSV = `id,name,available_time_slots,preferred_time_slots,max_sessions_per_day
I1,Prof A,T1;T2;T3,T1,2
I2,Prof B,,,
`

const roomsCSV = `id,name,capacity,features
R1,Hall,50,projector|lab
R2,Seminar,20,
`

const timeSlotsCSV = `id,day,start,end,order
T1,Mon,09:00,10:00,0
T2,Tue,09:00,10:00,1
`

func TestParseCoursesColumns(t *testing.T) {
	courses, err := ParseCourses(strings.NewReader(coursesCSV))

	require.NoError(t, err)
	require.Len(t, courses, 2)

	first := courses[0]
	assert.Equal(t, "CS101", first.ID)
	assert.Equal(t, "I1", first.InstructorID)
	assert.Equal(t, 30, first.Enrollment)
	assert.Equal(t, 2, first.SessionsPerWeek)
	assert.Equal(t, []string{"projector", "lab"}, first.RequiredFeatures)
	assert.Equal(t, []string{"T1", "T2"}, first.PreferredTimeSlots)
	assert.Nil(t, first.AllowedTimeSlots)
	assert.Equal(t, "year1", first.ClusterTag)
	assert.Equal(t, 7, first.Priority)
	require.NotNil(t, first.AvoidSameDaySessions)
	assert.True(t, *first.AvoidSameDaySessions)

	second := courses[1]
	assert.Equal(t, 1, second.SessionsPerWeek)
	assert.Equal(t, 5, second.Priority)
	assert.Nil(t, second.AvoidSameDaySessions)
}

func TestParseInstructorsListsAndCap(t *testing.T) {
	instructors, err := ParseInstructors(strings.NewReader(instructorsCSV))

	require.NoError(t, err)
	require.Len(t, instructors, 2)
	assert.Equal(t, []string{"T1", "T2", "T3"}, instructors[0].AvailableTimeSlots)
	assert.Equal(t, 2, instructors[0].MaxSessionsPerDay)
	assert.Nil(t, instructors[1].AvailableTimeSlots)
	assert.Equal(t, 0, instructors[1].MaxSessionsPerDay)
}

func TestParseRoomsAndTimeSlots(t *testing.T) {
	rooms, err := ParseRooms(strings.NewReader(roomsCSV))
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, 50, rooms[0].Capacity)
	assert.Equal(t, []string{"projector", "lab"}, rooms[0].Features)

	slots, err := ParseTimeSlots(strings.NewReader(timeSlotsCSV))
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "Mon", slots[0].Day)
	assert.Equal(t, 1, slots[1].Order)
}

func TestParseCoursesTolerantOfBOM(t *testing.T) {
	payload := "\xEF\xBB\xBF" + coursesCSV

	courses, err := ParseCourses(strings.NewReader(payload))

	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestParseEmptyDocumentFails(t *testing.T) {
	_, err := ParseRooms(strings.NewReader("  \n"))

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrIngestion.Code, appErrors.FromError(err).Code)
}

func TestParseRejectsBadInteger(t *testing.T) {
	payload := "id,name,capacity,features\nR1,Hall,big,\n"

	_, err := ParseRooms(strings.NewReader(payload))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity must be an integer")
}

func TestParseRejectsBadBool(t *testing.T) {
	payload := "id,name,instructor_id,enrollment,sessions_per_week,required_features,preferred_time_slots,allowed_time_slots,cluster_tag,priority,avoid_same_day_sessions\nC1,A,I1,10,1,,,,,5,maybe\n"

	_, err := ParseCourses(strings.NewReader(payload))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "avoid_same_day_sessions must be a boolean")
}

func TestSplitListSeparatorFallback(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a|b"))
	assert.Equal(t, []string{"a", "b"}, splitList("a;b"))
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Nil(t, splitList("  "))
	// Pipe wins when separators are mixed.
	assert.Equal(t, []string{"a;b", "c"}, splitList("a;b|c"))
}

func TestParseOptions(t *testing.T) {
	options, err := ParseOptions(`{"time_limit_seconds": 5, "objective_weights": {"instructor_preference": 9}}`)
	require.NoError(t, err)
	assert.Equal(t, 5, options.TimeLimitSeconds)
	assert.Equal(t, 9, options.ObjectiveWeights.InstructorPreference)

	empty, err := ParseOptions("")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TimeLimitSeconds)

	_, err = ParseOptions("{not json")
	require.Error(t, err)
}

func TestAssembleInput(t *testing.T) {
	input, err := AssembleInput(
		strings.NewReader(coursesCSV),
		strings.NewReader(instructorsCSV),
		strings.NewReader(roomsCSV),
		strings.NewReader(timeSlotsCSV),
		`{"num_workers": 2}`,
	)

	require.NoError(t, err)
	assert.Len(t, input.Courses, 2)
	assert.Len(t, input.Instructors, 2)
	assert.Len(t, input.Rooms, 2)
	assert.Len(t, input.TimeSlots, 2)
	assert.Equal(t, 2, input.Options.NumWorkers)
}
