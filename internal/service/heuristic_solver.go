package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/noah-isme/course-scheduler-api/internal/models"
)

// candidate is one feasible (room, slot) placement for a session.
type candidate struct {
	roomID string
	slotID string
}

type heuristicOutput struct {
	status      string
	assignments []models.Assignment
	notes       []string
	runtime     time.Duration
}

// buildFeasibleCandidates computes, per session, every (room, slot) pair
// passing the hard structural filters: capacity, features, instructor
// availability, and the course's allowed-slot window. The definition must
// agree exactly with the exact model builder's feasible-triple filter.
// Candidates are enumerated rooms-by-id then slots-by-order so downstream
// tie-breaking is deterministic.
func buildFeasibleCandidates(input models.SchedulingInput, sessions []models.Session) map[string][]candidate {
	instructorByID := indexInstructors(input.Instructors)

	rooms := append([]models.Room(nil), input.Rooms...)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	slots := slotsByOrder(input.TimeSlots)

	feasible := make(map[string][]candidate, len(sessions))
	for _, session := range sessions {
		instructor, ok := instructorByID[session.InstructorID]
		if !ok {
			feasible[session.SessionID] = nil
			continue
		}

		instructorAvailable := stringSet(instructor.AvailableTimeSlots)
		allowedSlots := stringSet(session.AllowedTimeSlots)

		var options []candidate
		for _, room := range rooms {
			if room.Capacity < session.Enrollment {
				continue
			}
			if len(missingFeatures(session.RequiredFeatures, room.Features)) > 0 {
				continue
			}
			for _, slot := range slots {
				if len(instructorAvailable) > 0 {
					if _, ok := instructorAvailable[slot.ID]; !ok {
						continue
					}
				}
				if len(allowedSlots) > 0 {
					if _, ok := allowedSlots[slot.ID]; !ok {
						continue
					}
				}
				options = append(options, candidate{roomID: room.ID, slotID: slot.ID})
			}
		}
		feasible[session.SessionID] = options
	}
	return feasible
}

// solveWithHeuristic is the greedy fallback path: one pass over sessions
// ordered most-constrained-first, no backtracking, partial results allowed.
func solveWithHeuristic(input models.SchedulingInput) heuristicOutput {
	start := time.Now()

	sessions := models.ExpandSessions(input.Courses)
	feasibleCandidates := buildFeasibleCandidates(input, sessions)

	instructorByID := indexInstructors(input.Instructors)
	roomByID := indexRooms(input.Rooms)
	slotByID := indexSlots(input.TimeSlots)

	occupiedRoomSlot := make(map[[2]string]struct{})
	occupiedInstructorSlot := make(map[[2]string]struct{})
	courseDaysUsed := make(map[string]map[string]struct{})
	instructorDayCount := make(map[[2]string]int)
	clusterDaysUsed := make(map[string]map[string]struct{})

	// Most constrained first, then highest priority; the stable sort keeps
	// expansion order for full ties.
	ordered := append([]models.Session(nil), sessions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		sizeI := len(feasibleCandidates[ordered[i].SessionID])
		sizeJ := len(feasibleCandidates[ordered[j].SessionID])
		if sizeI == sizeJ {
			return ordered[i].Priority > ordered[j].Priority
		}
		return sizeI < sizeJ
	})

	var assignments []models.Assignment
	var unscheduled []string

	for _, session := range ordered {
		candidates := feasibleCandidates[session.SessionID]
		if len(candidates) == 0 {
			unscheduled = append(unscheduled, session.SessionID)
			continue
		}

		instructor, ok := instructorByID[session.InstructorID]
		if !ok {
			unscheduled = append(unscheduled, session.SessionID)
			continue
		}
		instructorPreferred := stringSet(instructor.PreferredTimeSlots)

		bestScore := 0
		bestIdx := -1
		for idx, option := range candidates {
			slot := slotByID[option.slotID]
			room := roomByID[option.roomID]

			if _, taken := occupiedRoomSlot[[2]string{option.roomID, option.slotID}]; taken {
				continue
			}
			if _, taken := occupiedInstructorSlot[[2]string{session.InstructorID, option.slotID}]; taken {
				continue
			}
			if session.AvoidSameDay {
				if _, used := courseDaysUsed[session.CourseID][slot.Day]; used {
					continue
				}
			}
			if instructor.HasDailyCap() &&
				instructorDayCount[[2]string{session.InstructorID, slot.Day}] >= instructor.MaxSessionsPerDay {
				continue
			}

			score := assignmentLocalScore(
				session,
				instructorPreferred,
				room.Capacity,
				option.slotID,
				slot.Day,
				input.Options.ObjectiveWeights,
				clusterDaysUsed[session.ClusterTag],
			)
			// Strictly-greater keeps the earliest candidate on ties.
			if bestIdx < 0 || score > bestScore {
				bestScore = score
				bestIdx = idx
			}
		}

		if bestIdx < 0 {
			unscheduled = append(unscheduled, session.SessionID)
			continue
		}

		chosen := candidates[bestIdx]
		slot := slotByID[chosen.slotID]

		assignments = append(assignments, models.Assignment{
			SessionID:    session.SessionID,
			CourseID:     session.CourseID,
			InstructorID: session.InstructorID,
			RoomID:       chosen.roomID,
			TimeSlotID:   chosen.slotID,
		})

		occupiedRoomSlot[[2]string{chosen.roomID, chosen.slotID}] = struct{}{}
		occupiedInstructorSlot[[2]string{session.InstructorID, chosen.slotID}] = struct{}{}
		if courseDaysUsed[session.CourseID] == nil {
			courseDaysUsed[session.CourseID] = make(map[string]struct{})
		}
		courseDaysUsed[session.CourseID][slot.Day] = struct{}{}
		instructorDayCount[[2]string{session.InstructorID, slot.Day}]++
		if session.ClusterTag != "" {
			if clusterDaysUsed[session.ClusterTag] == nil {
				clusterDaysUsed[session.ClusterTag] = make(map[string]struct{})
			}
			clusterDaysUsed[session.ClusterTag][slot.Day] = struct{}{}
		}
	}

	notes := []string{
		"Fallback heuristic solver executed.",
		"Sessions are scheduled greedily by constrainedness and local weighted score.",
	}
	status := models.StatusFallback
	if len(unscheduled) > 0 {
		status = models.StatusFallbackPartial
		notes = append(notes, fmt.Sprintf(
			"%d session(s) were left unscheduled due to constraint overload.", len(unscheduled)))
	}

	return heuristicOutput{
		status:      status,
		assignments: assignments,
		notes:       notes,
		runtime:     time.Since(start),
	}
}

// slotsByOrder returns time slots sorted by their ordering index; the sort
// is stable so equal indexes keep input order.
func slotsByOrder(slots []models.TimeSlot) []models.TimeSlot {
	ordered := append([]models.TimeSlot(nil), slots...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })
	return ordered
}
