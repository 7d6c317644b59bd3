package service

import (
	"github.com/noah-isme/course-scheduler-api/internal/models"
)

// The objective model is shared verbatim by the exact model builder, the
// heuristic's local scoring, and the post-solve breakdown so results from
// both solving paths stay directly comparable.

// utilizationPercent is the truncated percentage of room capacity consumed
// by a session.
func utilizationPercent(enrollment, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(float64(enrollment) / float64(capacity) * 100)
}

// assignmentLocalScore scores one candidate (room, slot) placement for the
// heuristic. The cluster term is asymmetric on purpose: the first session of
// a cluster pays neither bonus nor penalty, later sessions are rewarded for
// reusing a committed day and penalised for opening a new one.
func assignmentLocalScore(
	session models.Session,
	instructorPreferred map[string]struct{},
	roomCapacity int,
	slotID string,
	slotDay string,
	weights models.ObjectiveWeights,
	existingClusterDays map[string]struct{},
) int {
	score := 0

	if _, ok := instructorPreferred[slotID]; ok {
		score += 100 * weights.InstructorPreference
	}

	score += utilizationPercent(session.Enrollment, roomCapacity) * weights.RoomEfficiency

	if containsString(session.PreferredTimeSlots, slotID) {
		score += session.Priority * 20 * weights.CoursePriority
	}

	if session.ClusterTag != "" && len(existingClusterDays) > 0 {
		if _, ok := existingClusterDays[slotDay]; ok {
			score += 50 * weights.ClusterCompactness
		} else {
			score -= 100 * weights.ClusterCompactness
		}
	}

	return score
}

// computeObjectiveBreakdown recomputes the four-term weighted objective from
// an assignment list alone, independent of which solver produced it.
func computeObjectiveBreakdown(
	input models.SchedulingInput,
	assignments []models.Assignment,
	weights models.ObjectiveWeights,
) map[string]float64 {
	sessionByID := indexSessions(models.ExpandSessions(input.Courses))
	instructorByID := indexInstructors(input.Instructors)
	roomByID := indexRooms(input.Rooms)
	slotByID := indexSlots(input.TimeSlots)

	instructorComponent := 0
	roomComponent := 0
	priorityComponent := 0

	clusterDays := make(map[string]map[string]struct{})
	clusterCounts := make(map[string]int)

	for _, assignment := range assignments {
		session, okSession := sessionByID[assignment.SessionID]
		instructor, okInstructor := instructorByID[assignment.InstructorID]
		room, okRoom := roomByID[assignment.RoomID]
		slot, okSlot := slotByID[assignment.TimeSlotID]
		if !okSession || !okInstructor || !okRoom || !okSlot {
			continue
		}

		if containsString(instructor.PreferredTimeSlots, assignment.TimeSlotID) {
			instructorComponent += 100 * weights.InstructorPreference
		}

		roomComponent += utilizationPercent(session.Enrollment, room.Capacity) * weights.RoomEfficiency

		if containsString(session.PreferredTimeSlots, assignment.TimeSlotID) {
			priorityComponent += session.Priority * 20 * weights.CoursePriority
		}

		if session.ClusterTag != "" {
			if clusterDays[session.ClusterTag] == nil {
				clusterDays[session.ClusterTag] = make(map[string]struct{})
			}
			clusterDays[session.ClusterTag][slot.Day] = struct{}{}
			clusterCounts[session.ClusterTag]++
		}
	}

	// One penalty unit per distinct day a multi-session cluster spreads
	// across; single-session clusters are exempt.
	clusterPenaltyUnits := 0
	for tag, days := range clusterDays {
		if clusterCounts[tag] > 1 {
			clusterPenaltyUnits += len(days)
		}
	}
	clusterComponent := -(clusterPenaltyUnits * 100 * weights.ClusterCompactness)

	total := instructorComponent + roomComponent + priorityComponent + clusterComponent

	return map[string]float64{
		models.ObjectiveInstructorPreference: float64(instructorComponent),
		models.ObjectiveRoomEfficiency:       float64(roomComponent),
		models.ObjectiveCoursePriority:       float64(priorityComponent),
		models.ObjectiveClusterCompactness:   float64(clusterComponent),
		models.ObjectiveTotal:                float64(total),
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func indexSessions(sessions []models.Session) map[string]models.Session {
	byID := make(map[string]models.Session, len(sessions))
	for _, session := range sessions {
		byID[session.SessionID] = session
	}
	return byID
}

func indexInstructors(instructors []models.Instructor) map[string]models.Instructor {
	byID := make(map[string]models.Instructor, len(instructors))
	for _, instructor := range instructors {
		byID[instructor.ID] = instructor
	}
	return byID
}

func indexRooms(rooms []models.Room) map[string]models.Room {
	byID := make(map[string]models.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}
	return byID
}

func indexSlots(slots []models.TimeSlot) map[string]models.TimeSlot {
	byID := make(map[string]models.TimeSlot, len(slots))
	for _, slot := range slots {
		byID[slot.ID] = slot
	}
	return byID
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
