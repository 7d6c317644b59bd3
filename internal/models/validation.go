package models

// Issue levels. Only error-level issues invalidate a schedule.
const (
	IssueLevelError   = "error"
	IssueLevelWarning = "warning"
)

// Validation issue codes.
const (
	CodeUnknownSession                  = "UNKNOWN_SESSION"
	CodeDuplicateSessionAssignment      = "DUPLICATE_SESSION_ASSIGNMENT"
	CodeCourseMismatch                  = "COURSE_MISMATCH"
	CodeInstructorMismatch              = "INSTRUCTOR_MISMATCH"
	CodeUnknownRoom                     = "UNKNOWN_ROOM"
	CodeRoomCapacityViolation           = "ROOM_CAPACITY_VIOLATION"
	CodeRoomFeatureViolation            = "ROOM_FEATURE_VIOLATION"
	CodeUnknownTimeSlot                 = "UNKNOWN_TIME_SLOT"
	CodeUnknownInstructor               = "UNKNOWN_INSTRUCTOR"
	CodeInstructorAvailabilityViolation = "INSTRUCTOR_AVAILABILITY_VIOLATION"
	CodeCourseTimeWindowViolation       = "COURSE_TIME_WINDOW_VIOLATION"
	CodeRoomTimeConflict                = "ROOM_TIME_CONFLICT"
	CodeInstructorTimeConflict          = "INSTRUCTOR_TIME_CONFLICT"
	CodeMissingSessionAssignment        = "MISSING_SESSION_ASSIGNMENT"
)

// ValidationIssue is structured data, never thrown.
type ValidationIssue struct {
	Code    string         `json:"code"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// ValidationReport lists every issue found for a candidate assignment set.
// Valid is true iff no issue has level error.
type ValidationReport struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues"`
}
