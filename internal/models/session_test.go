package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandSessionsOrderAndIDs(t *testing.T) {
	courses := []Course{
		{ID: "CS101", Name: "Intro", InstructorID: "I1", Enrollment: 30, SessionsPerWeek: 2, Priority: 7},
		{ID: "MA201", Name: "Calc", InstructorID: "I2", Enrollment: 25, SessionsPerWeek: 1, Priority: 5},
	}

	sessions := ExpandSessions(courses)

	require.Len(t, sessions, 3)
	assert.Equal(t, "CS101::S1", sessions[0].SessionID)
	assert.Equal(t, "CS101::S2", sessions[1].SessionID)
	assert.Equal(t, "MA201::S1", sessions[2].SessionID)
	assert.Equal(t, "I1", sessions[0].InstructorID)
	assert.Equal(t, 7, sessions[1].Priority)
	assert.True(t, sessions[0].AvoidSameDay)
}

func TestExpandSessionsZeroWeeklyDefaultsToOne(t *testing.T) {
	sessions := ExpandSessions([]Course{{ID: "C1", InstructorID: "I1", Enrollment: 10}})

	require.Len(t, sessions, 1)
	assert.Equal(t, "C1::S1", sessions[0].SessionID)
}

func TestExpandSessionsIsPure(t *testing.T) {
	courses := []Course{{ID: "C1", InstructorID: "I1", Enrollment: 10, SessionsPerWeek: 3}}

	first := ExpandSessions(courses)
	second := ExpandSessions(courses)

	assert.Equal(t, first, second)
}
