// Package ingest parses uploaded CSV datasets into scheduling input. It is
// the only place raw bytes are interpreted; the core consumes structured
// input exclusively.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/noah-isme/course-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/course-scheduler-api/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type courseRow struct {
	ID                   string `csv:"id"`
	Name                 string `csv:"name"`
	InstructorID         string `csv:"instructor_id"`
	Enrollment           string `csv:"enrollment"`
	SessionsPerWeek      string `csv:"sessions_per_week"`
	RequiredFeatures     string `csv:"required_features"`
	PreferredTimeSlots   string `csv:"preferred_time_slots"`
	AllowedTimeSlots     string `csv:"allowed_time_slots"`
	ClusterTag           string `csv:"cluster_tag"`
	Priority             string `csv:"priority"`
	AvoidSameDaySessions string `csv:"avoid_same_day_sessions"`
}

type instructorRow struct {
	ID                 string `csv:"id"`
	Name               string `csv:"name"`
	AvailableTimeSlots string `csv:"available_time_slots"`
	PreferredTimeSlots string `csv:"preferred_time_slots"`
	MaxSessionsPerDay  string `csv:"max_sessions_per_day"`
}

type roomRow struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Capacity string `csv:"capacity"`
	Features string `csv:"features"`
}

type timeSlotRow struct {
	ID    string `csv:"id"`
	Day   string `csv:"day"`
	Start string `csv:"start"`
	End   string `csv:"end"`
	Order string `csv:"order"`
}

// ParseCourses parses the course CSV document.
func ParseCourses(r io.Reader) ([]models.Course, error) {
	rows := []*courseRow{}
	if err := unmarshalCSV(r, &rows, "courses"); err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(rows))
	for idx, row := range rows {
		enrollment, err := parseRequiredInt(row.Enrollment, "courses", idx, "enrollment")
		if err != nil {
			return nil, err
		}
		sessions, err := parseOptionalInt(row.SessionsPerWeek, 1, "courses", idx, "sessions_per_week")
		if err != nil {
			return nil, err
		}
		priority, err := parseOptionalInt(row.Priority, 5, "courses", idx, "priority")
		if err != nil {
			return nil, err
		}
		avoid, err := parseOptionalBool(row.AvoidSameDaySessions, "courses", idx, "avoid_same_day_sessions")
		if err != nil {
			return nil, err
		}
		courses = append(courses, models.Course{
			ID:                   strings.TrimSpace(row.ID),
			Name:                 strings.TrimSpace(row.Name),
			InstructorID:         strings.TrimSpace(row.InstructorID),
			Enrollment:           enrollment,
			SessionsPerWeek:      sessions,
			RequiredFeatures:     splitList(row.RequiredFeatures),
			PreferredTimeSlots:   splitList(row.PreferredTimeSlots),
			AllowedTimeSlots:     splitList(row.AllowedTimeSlots),
			ClusterTag:           strings.TrimSpace(row.ClusterTag),
			Priority:             priority,
			AvoidSameDaySessions: avoid,
		})
	}
	return courses, nil
}

// ParseInstructors parses the instructor CSV document.
func ParseInstructors(r io.Reader) ([]models.Instructor, error) {
	rows := []*instructorRow{}
	if err := unmarshalCSV(r, &rows, "instructors"); err != nil {
		return nil, err
	}
	instructors := make([]models.Instructor, 0, len(rows))
	for idx, row := range rows {
		dailyCap, err := parseOptionalInt(row.MaxSessionsPerDay, 0, "instructors", idx, "max_sessions_per_day")
		if err != nil {
			return nil, err
		}
		instructors = append(instructors, models.Instructor{
			ID:                 strings.TrimSpace(row.ID),
			Name:               strings.TrimSpace(row.Name),
			AvailableTimeSlots: splitList(row.AvailableTimeSlots),
			PreferredTimeSlots: splitList(row.PreferredTimeSlots),
			MaxSessionsPerDay:  dailyCap,
		})
	}
	return instructors, nil
}

// ParseRooms parses the room CSV document.
func ParseRooms(r io.Reader) ([]models.Room, error) {
	rows := []*roomRow{}
	if err := unmarshalCSV(r, &rows, "rooms"); err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(rows))
	for idx, row := range rows {
		capacity, err := parseRequiredInt(row.Capacity, "rooms", idx, "capacity")
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, models.Room{
			ID:       strings.TrimSpace(row.ID),
			Name:     strings.TrimSpace(row.Name),
			Capacity: capacity,
			Features: splitList(row.Features),
		})
	}
	return rooms, nil
}

// ParseTimeSlots parses the time slot CSV document.
func ParseTimeSlots(r io.Reader) ([]models.TimeSlot, error) {
	rows := []*timeSlotRow{}
	if err := unmarshalCSV(r, &rows, "time_slots"); err != nil {
		return nil, err
	}
	slots := make([]models.TimeSlot, 0, len(rows))
	for idx, row := range rows {
		order, err := parseOptionalInt(row.Order, idx, "time_slots", idx, "order")
		if err != nil {
			return nil, err
		}
		slots = append(slots, models.TimeSlot{
			ID:    strings.TrimSpace(row.ID),
			Day:   strings.TrimSpace(row.Day),
			Start: strings.TrimSpace(row.Start),
			End:   strings.TrimSpace(row.End),
			Order: order,
		})
	}
	return slots, nil
}

// ParseOptions decodes an options_json form field. An empty payload yields
// zero options, which normalization later fills with defaults.
func ParseOptions(payload string) (models.SolverOptions, error) {
	options := models.SolverOptions{}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return options, nil
	}
	if err := json.Unmarshal([]byte(payload), &options); err != nil {
		return options, appErrors.Wrap(err, appErrors.ErrIngestion.Code, appErrors.ErrIngestion.Status, "options_json is not valid JSON")
	}
	return options, nil
}

// AssembleInput builds a SchedulingInput out of the four parsed CSV
// documents plus an optional options_json payload.
func AssembleInput(courses io.Reader, instructors io.Reader, rooms io.Reader, timeSlots io.Reader, optionsJSON string) (models.SchedulingInput, error) {
	input := models.SchedulingInput{}

	parsedCourses, err := ParseCourses(courses)
	if err != nil {
		return input, err
	}
	parsedInstructors, err := ParseInstructors(instructors)
	if err != nil {
		return input, err
	}
	parsedRooms, err := ParseRooms(rooms)
	if err != nil {
		return input, err
	}
	parsedSlots, err := ParseTimeSlots(timeSlots)
	if err != nil {
		return input, err
	}
	parsedOptions, err := ParseOptions(optionsJSON)
	if err != nil {
		return input, err
	}

	input.Courses = parsedCourses
	input.Instructors = parsedInstructors
	input.Rooms = parsedRooms
	input.TimeSlots = parsedSlots
	input.Options = parsedOptions
	return input, nil
}

func unmarshalCSV(r io.Reader, out any, document string) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrIngestion.Code, appErrors.ErrIngestion.Status, "could not read "+document+" document")
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return appErrors.Clone(appErrors.ErrIngestion, document+" document is empty")
	}
	if err := gocsv.UnmarshalBytes(raw, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrIngestion.Code, appErrors.ErrIngestion.Status, "could not parse "+document+" document")
	}
	return nil
}

// splitList turns a delimited cell into a clean string list. Pipe is the
// canonical separator; semicolon and comma are accepted for hand-edited
// files.
func splitList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	separator := ","
	switch {
	case strings.Contains(cell, "|"):
		separator = "|"
	case strings.Contains(cell, ";"):
		separator = ";"
	}
	parts := strings.Split(cell, separator)
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func parseRequiredInt(cell, document string, row int, column string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, appErrors.Clone(appErrors.ErrIngestion, fmt.Sprintf("%s row %d: %s is required", document, row+1, column))
	}
	value, err := strconv.Atoi(cell)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrIngestion.Code, appErrors.ErrIngestion.Status, fmt.Sprintf("%s row %d: %s must be an integer", document, row+1, column))
	}
	return value, nil
}

func parseOptionalInt(cell string, fallback int, document string, row int, column string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(cell)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrIngestion.Code, appErrors.ErrIngestion.Status, fmt.Sprintf("%s row %d: %s must be an integer", document, row+1, column))
	}
	return value, nil
}

func parseOptionalBool(cell, document string, row int, column string) (*bool, error) {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if cell == "" {
		return nil, nil
	}
	switch cell {
	case "true", "t", "yes", "y", "1":
		value := true
		return &value, nil
	case "false", "f", "no", "n", "0":
		value := false
		return &value, nil
	}
	return nil, appErrors.Clone(appErrors.ErrIngestion, fmt.Sprintf("%s row %d: %s must be a boolean", document, row+1, column))
}
