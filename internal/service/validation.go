package service

import (
	"fmt"
	"sort"

	"github.com/noah-isme/course-scheduler-api/internal/models"
)

// ValidateSchedule independently recomputes every hard constraint for a raw
// assignment list. It never trusts that the assignments originated from a
// solver; it is both the consistency oracle for solver output and the public
// correctness-check API.
func ValidateSchedule(input models.SchedulingInput, assignments []models.Assignment) models.ValidationReport {
	var issues []models.ValidationIssue

	sessionByID := indexSessions(models.ExpandSessions(input.Courses))
	roomByID := indexRooms(input.Rooms)
	instructorByID := indexInstructors(input.Instructors)
	slotByID := indexSlots(input.TimeSlots)

	seenSessions := make(map[string]struct{})
	roomSlotUsage := make(map[[2]string][]string)
	instructorSlotUsage := make(map[[2]string][]string)

	appendIssue := func(code, message string, details map[string]any) {
		issues = append(issues, models.ValidationIssue{
			Code:    code,
			Level:   models.IssueLevelError,
			Message: message,
			Details: details,
		})
	}

	for _, assignment := range assignments {
		session, ok := sessionByID[assignment.SessionID]
		if !ok {
			appendIssue(models.CodeUnknownSession,
				fmt.Sprintf("Session '%s' does not exist in input.", assignment.SessionID),
				map[string]any{"session_id": assignment.SessionID})
			continue
		}

		if _, dup := seenSessions[assignment.SessionID]; dup {
			appendIssue(models.CodeDuplicateSessionAssignment,
				fmt.Sprintf("Session '%s' is assigned more than once.", assignment.SessionID),
				map[string]any{"session_id": assignment.SessionID})
			continue
		}
		seenSessions[assignment.SessionID] = struct{}{}

		if assignment.CourseID != session.CourseID {
			appendIssue(models.CodeCourseMismatch,
				fmt.Sprintf("Session '%s' references course '%s' but expected '%s'.",
					assignment.SessionID, assignment.CourseID, session.CourseID),
				map[string]any{
					"session_id":         assignment.SessionID,
					"expected_course_id": session.CourseID,
					"provided_course_id": assignment.CourseID,
				})
		}

		if assignment.InstructorID != session.InstructorID {
			appendIssue(models.CodeInstructorMismatch,
				fmt.Sprintf("Session '%s' references instructor '%s' but expected '%s'.",
					assignment.SessionID, assignment.InstructorID, session.InstructorID),
				map[string]any{
					"session_id":             assignment.SessionID,
					"expected_instructor_id": session.InstructorID,
					"provided_instructor_id": assignment.InstructorID,
				})
		}

		room, okRoom := roomByID[assignment.RoomID]
		if !okRoom {
			appendIssue(models.CodeUnknownRoom,
				fmt.Sprintf("Room '%s' does not exist.", assignment.RoomID),
				map[string]any{"room_id": assignment.RoomID})
		} else {
			if room.Capacity < session.Enrollment {
				appendIssue(models.CodeRoomCapacityViolation,
					fmt.Sprintf("Room '%s' capacity %d is lower than enrollment %d for session '%s'.",
						room.ID, room.Capacity, session.Enrollment, session.SessionID),
					map[string]any{
						"session_id":    session.SessionID,
						"room_id":       room.ID,
						"room_capacity": room.Capacity,
						"enrollment":    session.Enrollment,
					})
			}

			if missing := missingFeatures(session.RequiredFeatures, room.Features); len(missing) > 0 {
				appendIssue(models.CodeRoomFeatureViolation,
					fmt.Sprintf("Room '%s' does not satisfy required features for session '%s'.",
						room.ID, session.SessionID),
					map[string]any{
						"session_id":       session.SessionID,
						"room_id":          room.ID,
						"missing_features": missing,
					})
			}
		}

		slot, okSlot := slotByID[assignment.TimeSlotID]
		if !okSlot {
			appendIssue(models.CodeUnknownTimeSlot,
				fmt.Sprintf("Time slot '%s' does not exist.", assignment.TimeSlotID),
				map[string]any{"time_slot_id": assignment.TimeSlotID})
		} else {
			instructor, okInstructor := instructorByID[session.InstructorID]
			if !okInstructor {
				appendIssue(models.CodeUnknownInstructor,
					fmt.Sprintf("Instructor '%s' does not exist.", session.InstructorID),
					map[string]any{"instructor_id": session.InstructorID})
			} else if len(instructor.AvailableTimeSlots) > 0 &&
				!containsString(instructor.AvailableTimeSlots, slot.ID) {
				appendIssue(models.CodeInstructorAvailabilityViolation,
					fmt.Sprintf("Instructor '%s' is not available for slot '%s'.", instructor.ID, slot.ID),
					map[string]any{
						"session_id":    session.SessionID,
						"instructor_id": instructor.ID,
						"time_slot_id":  slot.ID,
					})
			}

			if len(session.AllowedTimeSlots) > 0 && !containsString(session.AllowedTimeSlots, slot.ID) {
				appendIssue(models.CodeCourseTimeWindowViolation,
					fmt.Sprintf("Session '%s' is outside allowed time windows for course '%s'.",
						session.SessionID, session.CourseID),
					map[string]any{
						"session_id":   session.SessionID,
						"course_id":    session.CourseID,
						"time_slot_id": slot.ID,
					})
			}
		}

		roomKey := [2]string{assignment.RoomID, assignment.TimeSlotID}
		roomSlotUsage[roomKey] = append(roomSlotUsage[roomKey], assignment.SessionID)
		instructorKey := [2]string{assignment.InstructorID, assignment.TimeSlotID}
		instructorSlotUsage[instructorKey] = append(instructorSlotUsage[instructorKey], assignment.SessionID)
	}

	for _, key := range sortedUsageKeys(roomSlotUsage) {
		sessionIDs := roomSlotUsage[key]
		if len(sessionIDs) > 1 {
			appendIssue(models.CodeRoomTimeConflict,
				fmt.Sprintf("Room '%s' is assigned to multiple sessions at slot '%s'.", key[0], key[1]),
				map[string]any{
					"room_id":      key[0],
					"time_slot_id": key[1],
					"session_ids":  sessionIDs,
				})
		}
	}

	for _, key := range sortedUsageKeys(instructorSlotUsage) {
		sessionIDs := instructorSlotUsage[key]
		if len(sessionIDs) > 1 {
			appendIssue(models.CodeInstructorTimeConflict,
				fmt.Sprintf("Instructor '%s' is assigned to multiple sessions at slot '%s'.", key[0], key[1]),
				map[string]any{
					"instructor_id": key[0],
					"time_slot_id":  key[1],
					"session_ids":   sessionIDs,
				})
		}
	}

	var missingSessions []string
	for sessionID := range sessionByID {
		if _, ok := seenSessions[sessionID]; !ok {
			missingSessions = append(missingSessions, sessionID)
		}
	}
	sort.Strings(missingSessions)
	for _, sessionID := range missingSessions {
		appendIssue(models.CodeMissingSessionAssignment,
			fmt.Sprintf("Session '%s' is not assigned.", sessionID),
			map[string]any{"session_id": sessionID})
	}

	valid := true
	for _, issue := range issues {
		if issue.Level == models.IssueLevelError {
			valid = false
			break
		}
	}
	return models.ValidationReport{Valid: valid, Issues: issues}
}

func missingFeatures(required, available []string) []string {
	availableSet := stringSet(available)
	missingSet := make(map[string]struct{})
	for _, feature := range required {
		if _, ok := availableSet[feature]; !ok {
			missingSet[feature] = struct{}{}
		}
	}
	missing := make([]string, 0, len(missingSet))
	for feature := range missingSet {
		missing = append(missing, feature)
	}
	sort.Strings(missing)
	return missing
}

func sortedUsageKeys(usage map[[2]string][]string) [][2]string {
	keys := make([][2]string, 0, len(usage))
	for key := range usage {
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
