package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/course-scheduler-api/internal/models"
	"github.com/noah-isme/course-scheduler-api/pkg/cpsolver"
)

type exactOutput struct {
	status      string
	assignments []models.Assignment
	notes       []string
	runtime     time.Duration
}

// tripleRecord keeps the decode metadata for one (session, room, slot)
// decision variable in deterministic construction order.
type tripleRecord struct {
	sessionID    string
	courseID     string
	instructorID string
	roomID       string
	slotID       string
	v            cpsolver.Var
}

// solveWithCPSAT builds the boolean constraint model and hands it to the
// search engine. Structural defects are detected before the engine runs:
// unknown instructor ids yield model_invalid, a session without any feasible
// triple yields infeasible, both without invoking the engine.
func solveWithCPSAT(ctx context.Context, input models.SchedulingInput) exactOutput {
	start := time.Now()
	var notes []string

	sessions := models.ExpandSessions(input.Courses)
	slots := slotsByOrder(input.TimeSlots)
	days := distinctDays(slots)
	instructorByID := indexInstructors(input.Instructors)

	if unknown := unknownInstructorIDs(input.Courses, instructorByID); len(unknown) > 0 {
		notes = append(notes, "Unknown instructor id(s) detected in course input: "+strings.Join(unknown, ", "))
		return exactOutput{
			status:  models.StatusModelInvalid,
			notes:   notes,
			runtime: time.Since(start),
		}
	}

	weights := input.Options.ObjectiveWeights
	model := cpsolver.NewModel()

	var triples []tripleRecord
	varsBySession := make(map[string][]cpsolver.Var)
	varsByRoomSlot := make(map[[2]string][]cpsolver.Var)
	varsByInstructorSlot := make(map[[2]string][]cpsolver.Var)
	varsByCourseDay := make(map[[2]string][]cpsolver.Var)
	varsByInstructorDay := make(map[[2]string][]cpsolver.Var)
	varsByClusterDay := make(map[[2]string][]cpsolver.Var)
	clusterSessionCount := make(map[string]int)

	for _, session := range sessions {
		instructor := instructorByID[session.InstructorID]
		instructorAvailable := stringSet(instructor.AvailableTimeSlots)
		allowedSlots := stringSet(session.AllowedTimeSlots)
		instructorPreferred := stringSet(instructor.PreferredTimeSlots)

		if session.ClusterTag != "" {
			clusterSessionCount[session.ClusterTag]++
		}

		for _, room := range input.Rooms {
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

				v := model.NewBool(fmt.Sprintf("x_%s_%s_%s", session.SessionID, room.ID, slot.ID))
				triples = append(triples, tripleRecord{
					sessionID:    session.SessionID,
					courseID:     session.CourseID,
					instructorID: session.InstructorID,
					roomID:       room.ID,
					slotID:       slot.ID,
					v:            v,
				})

				varsBySession[session.SessionID] = append(varsBySession[session.SessionID], v)
				roomSlot := [2]string{room.ID, slot.ID}
				varsByRoomSlot[roomSlot] = append(varsByRoomSlot[roomSlot], v)
				instructorSlot := [2]string{session.InstructorID, slot.ID}
				varsByInstructorSlot[instructorSlot] = append(varsByInstructorSlot[instructorSlot], v)
				courseDay := [2]string{session.CourseID, slot.Day}
				varsByCourseDay[courseDay] = append(varsByCourseDay[courseDay], v)
				instructorDay := [2]string{session.InstructorID, slot.Day}
				varsByInstructorDay[instructorDay] = append(varsByInstructorDay[instructorDay], v)
				if session.ClusterTag != "" {
					clusterDay := [2]string{session.ClusterTag, slot.Day}
					varsByClusterDay[clusterDay] = append(varsByClusterDay[clusterDay], v)
				}

				if _, ok := instructorPreferred[slot.ID]; ok {
					model.AddObjectiveTerm(v, int64(100*weights.InstructorPreference))
				}
				model.AddObjectiveTerm(v, int64(utilizationPercent(session.Enrollment, room.Capacity)*weights.RoomEfficiency))
				if containsString(session.PreferredTimeSlots, slot.ID) {
					model.AddObjectiveTerm(v, int64(session.Priority*20*weights.CoursePriority))
				}
			}
		}
	}

	for _, session := range sessions {
		sessionVars := varsBySession[session.SessionID]
		if len(sessionVars) == 0 {
			notes = append(notes, fmt.Sprintf("No feasible assignment exists for session '%s'.", session.SessionID))
			return exactOutput{
				status:  models.StatusInfeasible,
				notes:   notes,
				runtime: time.Since(start),
			}
		}
		model.AddExactlyOne(sessionVars...)
	}

	for _, pairVars := range varsByRoomSlot {
		if len(pairVars) > 1 {
			model.AddAtMost(1, pairVars...)
		}
	}
	for _, pairVars := range varsByInstructorSlot {
		if len(pairVars) > 1 {
			model.AddAtMost(1, pairVars...)
		}
	}

	for _, course := range input.Courses {
		if !course.AvoidSameDay() || course.SessionsPerWeek <= 1 {
			continue
		}
		for _, day := range days {
			if dayVars := varsByCourseDay[[2]string{course.ID, day}]; len(dayVars) > 0 {
				model.AddAtMost(1, dayVars...)
			}
		}
	}

	for _, instructor := range input.Instructors {
		if !instructor.HasDailyCap() {
			continue
		}
		for _, day := range days {
			if dayVars := varsByInstructorDay[[2]string{instructor.ID, day}]; len(dayVars) > 0 {
				model.AddAtMost(instructor.MaxSessionsPerDay, dayVars...)
			}
		}
	}

	// Cluster compactness: one indicator per (tag, day) for multi-session
	// clusters, charged in the objective for every day the cluster touches.
	for _, key := range sortedPairKeys(varsByClusterDay) {
		if clusterSessionCount[key[0]] <= 1 {
			continue
		}
		used := model.NewOrIndicator(fmt.Sprintf("cluster_%s_%s", key[0], key[1]), varsByClusterDay[key]...)
		model.AddObjectiveTerm(used, int64(-100*weights.ClusterCompactness))
	}

	solution := cpsolver.Solve(ctx, model, cpsolver.Params{
		TimeLimit: time.Duration(input.Options.TimeLimitSeconds) * time.Second,
		Workers:   input.Options.NumWorkers,
	})

	status := engineStatus(solution.Status)
	var assignments []models.Assignment
	if status == models.StatusOptimal || status == models.StatusFeasible {
		for _, triple := range triples {
			if solution.Value(triple.v) {
				assignments = append(assignments, models.Assignment{
					SessionID:    triple.sessionID,
					CourseID:     triple.courseID,
					InstructorID: triple.instructorID,
					RoomID:       triple.roomID,
					TimeSlotID:   triple.slotID,
				})
			}
		}
	}

	return exactOutput{
		status:      status,
		assignments: assignments,
		notes:       notes,
		runtime:     time.Since(start),
	}
}

func engineStatus(status cpsolver.Status) string {
	switch status {
	case cpsolver.StatusOptimal:
		return models.StatusOptimal
	case cpsolver.StatusFeasible:
		return models.StatusFeasible
	case cpsolver.StatusInfeasible:
		return models.StatusInfeasible
	case cpsolver.StatusModelInvalid:
		return models.StatusModelInvalid
	default:
		return models.StatusUnknown
	}
}

func unknownInstructorIDs(courses []models.Course, instructorByID map[string]models.Instructor) []string {
	unknownSet := make(map[string]struct{})
	for _, course := range courses {
		if _, ok := instructorByID[course.InstructorID]; !ok {
			unknownSet[course.InstructorID] = struct{}{}
		}
	}
	unknown := make([]string, 0, len(unknownSet))
	for id := range unknownSet {
		unknown = append(unknown, id)
	}
	sort.Strings(unknown)
	return unknown
}

func distinctDays(slots []models.TimeSlot) []string {
	daySet := make(map[string]struct{})
	for _, slot := range slots {
		daySet[slot.Day] = struct{}{}
	}
	days := make([]string, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

func sortedPairKeys(byPair map[[2]string][]cpsolver.Var) [][2]string {
	keys := make([][2]string, 0, len(byPair))
	for key := range byPair {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] == keys[j][0] {
			return keys[i][1] < keys[j][1]
		}
		return keys[i][0] < keys[j][0]
	})
	return keys
}
