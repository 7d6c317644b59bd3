package service

import (
	"math"

	"github.com/noah-isme/course-scheduler-api/internal/models"
)

// buildMetrics derives the schedule summary from the validation report and
// the shared objective breakdown. It is part of the single post-processing
// stage both solving paths flow through.
func buildMetrics(
	input models.SchedulingInput,
	assignments []models.Assignment,
	validation models.ValidationReport,
	objectiveBreakdown map[string]float64,
) models.ScheduleMetrics {
	sessions := models.ExpandSessions(input.Courses)
	sessionByID := indexSessions(sessions)
	roomByID := indexRooms(input.Rooms)
	instructorByID := indexInstructors(input.Instructors)

	sessionsRequired := len(sessions)
	sessionsScheduled := len(assignments)

	coveragePct := 0.0
	if sessionsRequired > 0 {
		coveragePct = float64(sessionsScheduled) / float64(sessionsRequired) * 100.0
	}

	utilizationSum := 0.0
	utilizationCount := 0
	preferenceHits := 0
	for _, assignment := range assignments {
		session, okSession := sessionByID[assignment.SessionID]
		room, okRoom := roomByID[assignment.RoomID]
		if okSession && okRoom && room.Capacity > 0 {
			utilizationSum += float64(session.Enrollment) / float64(room.Capacity)
			utilizationCount++
		}
		if instructor, ok := instructorByID[assignment.InstructorID]; ok &&
			containsString(instructor.PreferredTimeSlots, assignment.TimeSlotID) {
			preferenceHits++
		}
	}

	roomUtilizationPct := 0.0
	if utilizationCount > 0 {
		roomUtilizationPct = utilizationSum / float64(utilizationCount) * 100.0
	}
	instructorPreferencePct := 0.0
	if sessionsScheduled > 0 {
		instructorPreferencePct = float64(preferenceHits) / float64(sessionsScheduled) * 100.0
	}

	hardViolations := 0
	for _, issue := range validation.Issues {
		if issue.Level == models.IssueLevelError {
			hardViolations++
		}
	}

	return models.ScheduleMetrics{
		SessionsRequired:        sessionsRequired,
		SessionsScheduled:       sessionsScheduled,
		CoveragePct:             round2(coveragePct),
		RoomUtilizationPct:      round2(roomUtilizationPct),
		InstructorPreferencePct: round2(instructorPreferencePct),
		HardViolations:          hardViolations,
		ObjectiveBreakdown:      objectiveBreakdown,
	}
}

// round2 rounds to 2 decimal places for display stability.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// round4 rounds runtimes to 4 decimal places.
func round4(value float64) float64 {
	return math.Round(value*10000) / 10000
}
