package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-scheduler-api/internal/models"
)

func exportResult() *models.ScheduleResult {
	return &models.ScheduleResult{
		Status: models.StatusOptimal,
		Solver: models.SolverCPSAT,
		Assignments: []models.Assignment{
			{SessionID: "CS101::S1", CourseID: "CS101", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T1"},
			{SessionID: "CS101::S2", CourseID: "CS101", InstructorID: "I1", RoomID: "R1", TimeSlotID: "T2"},
		},
	}
}

func exportInput() *models.SchedulingInput {
	return &models.SchedulingInput{
		TimeSlots: []models.TimeSlot{
			{ID: "T1", Day: models.DayMon, Start: "09:00", End: "10:00"},
			{ID: "T2", Day: models.DayTue, Start: "09:00", End: "10:00"},
		},
	}
}

func TestScheduleDatasetExpandsSlots(t *testing.T) {
	dataset := ScheduleDataset(exportResult(), exportInput())

	require.Len(t, dataset.Rows, 2)
	assert.Equal(t, "Mon", dataset.Rows[0]["Day"])
	assert.Equal(t, "09:00", dataset.Rows[0]["Start"])
	assert.Equal(t, "10:00", dataset.Rows[0]["End"])
	assert.Equal(t, "CS101::S1", dataset.Rows[0]["Session"])
}

func TestScheduleDatasetWithoutInputFallsBackToSlotID(t *testing.T) {
	dataset := ScheduleDataset(exportResult(), nil)

	require.Len(t, dataset.Rows, 2)
	assert.Equal(t, "T1", dataset.Rows[0]["Day"])
	assert.Equal(t, "", dataset.Rows[0]["Start"])
}

func TestCSVExporterHeaderAndRows(t *testing.T) {
	dataset := ScheduleDataset(exportResult(), exportInput())

	payload, err := NewCSVExporter().Render(dataset)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Session,Course,Instructor,Room,Day,Start,End", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "CS101::S1,CS101,I1,R1,Mon"))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})

	assert.Error(t, err)
}

func TestPDFExporterProducesDocument(t *testing.T) {
	dataset := ScheduleDataset(exportResult(), exportInput())

	payload, err := NewPDFExporter().Render(dataset, "Weekly Schedule")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestScheduleTitle(t *testing.T) {
	result := exportResult()

	assert.Equal(t, "Custom", ScheduleTitle("Custom", result))
	assert.Equal(t, "Weekly Schedule (cp_sat, optimal)", ScheduleTitle("  ", result))
}
