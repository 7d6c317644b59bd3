package models

import "fmt"

// Session is one atomic schedulable occurrence of a course. A course with N
// sessions per week expands to exactly N sessions, each independently
// assignable. The session set is a pure function of the course list.
type Session struct {
	SessionID          string
	CourseID           string
	InstructorID       string
	Enrollment         int
	Priority           int
	ClusterTag         string
	RequiredFeatures   []string
	PreferredTimeSlots []string
	AllowedTimeSlots   []string
	AvoidSameDay       bool
}

// ExpandSessions derives the ordered session list from the course list:
// courses in input order, occurrence indexes ascending. The order is stable
// because it feeds deterministic tie-breaking downstream.
func ExpandSessions(courses []Course) []Session {
	sessions := make([]Session, 0, len(courses))
	for _, course := range courses {
		weekly := course.SessionsPerWeek
		if weekly <= 0 {
			weekly = 1
		}
		for index := 1; index <= weekly; index++ {
			sessions = append(sessions, Session{
				SessionID:          fmt.Sprintf("%s::S%d", course.ID, index),
				CourseID:           course.ID,
				InstructorID:       course.InstructorID,
				Enrollment:         course.Enrollment,
				Priority:           course.Priority,
				ClusterTag:         course.ClusterTag,
				RequiredFeatures:   course.RequiredFeatures,
				PreferredTimeSlots: course.PreferredTimeSlots,
				AllowedTimeSlots:   course.AllowedTimeSlots,
				AvoidSameDay:       course.AvoidSameDay(),
			})
		}
	}
	return sessions
}
