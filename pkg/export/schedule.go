package export

import (
	"fmt"
	"strings"

	"github.com/noah-isme/course-scheduler-api/internal/models"
)

// Timetable column order shared by the CSV and PDF renditions.
var scheduleHeaders = []string{
	"Session", "Course", "Instructor", "Room", "Day", "Start", "End",
}

// ScheduleDataset flattens a solve result into a printable timetable table.
// Rows follow the result's assignment order; slot details fall back to the
// raw slot id when the input snapshot is not supplied.
func ScheduleDataset(result *models.ScheduleResult, input *models.SchedulingInput) Dataset {
	slotByID := map[string]models.TimeSlot{}
	if input != nil {
		for _, slot := range input.TimeSlots {
			slotByID[slot.ID] = slot
		}
	}

	rows := make([]map[string]string, 0, len(result.Assignments))
	for _, assignment := range result.Assignments {
		row := map[string]string{
			"Session":    assignment.SessionID,
			"Course":     assignment.CourseID,
			"Instructor": assignment.InstructorID,
			"Room":       assignment.RoomID,
			"Day":        assignment.TimeSlotID,
			"Start":      "",
			"End":        "",
		}
		if slot, ok := slotByID[assignment.TimeSlotID]; ok {
			row["Day"] = slot.Day
			row["Start"] = slot.Start
			row["End"] = slot.End
		}
		rows = append(rows, row)
	}
	return Dataset{Headers: scheduleHeaders, Rows: rows}
}

// ScheduleTitle derives a document title from the optional request title and
// the solve outcome.
func ScheduleTitle(requested string, result *models.ScheduleResult) string {
	if strings.TrimSpace(requested) != "" {
		return requested
	}
	return fmt.Sprintf("Weekly Schedule (%s, %s)", result.Solver, result.Status)
}
