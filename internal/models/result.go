package models

// Solve statuses. Infeasible, model-invalid, and unknown are normal result
// statuses the orchestrator reacts to, never errors.
const (
	StatusOptimal         = "optimal"
	StatusFeasible        = "feasible"
	StatusInfeasible      = "infeasible"
	StatusUnknown         = "unknown"
	StatusModelInvalid    = "model_invalid"
	StatusFallback        = "fallback"
	StatusFallbackPartial = "fallback_partial"
)

// Solver identifiers reported on results.
const (
	SolverCPSAT     = "cp_sat"
	SolverHeuristic = "heuristic"
)

// Solver modes accepted by the orchestrator.
const (
	ModeAuto      = "auto"
	ModeCPSAT     = "cp_sat"
	ModeHeuristic = "heuristic"
)

// Objective breakdown keys shared by both solving paths.
const (
	ObjectiveInstructorPreference = "instructor_preference"
	ObjectiveRoomEfficiency       = "room_efficiency"
	ObjectiveCoursePriority       = "course_priority"
	ObjectiveClusterCompactness   = "cluster_compactness"
	ObjectiveTotal                = "total"
)

// Assignment places one session into a (room, time slot) pair. CourseID and
// InstructorID are redundant copies that validation asserts against the
// session's own fields.
type Assignment struct {
	SessionID    string `json:"session_id"`
	CourseID     string `json:"course_id"`
	InstructorID string `json:"instructor_id"`
	RoomID       string `json:"room_id"`
	TimeSlotID   string `json:"time_slot_id"`
}

// ScheduleMetrics summarises coverage, utilization, preference hits, and
// hard violations for a solved schedule.
type ScheduleMetrics struct {
	SessionsRequired        int                `json:"sessions_required"`
	SessionsScheduled       int                `json:"sessions_scheduled"`
	CoveragePct             float64            `json:"coverage_pct"`
	RoomUtilizationPct      float64            `json:"room_utilization_pct"`
	InstructorPreferencePct float64            `json:"instructor_preference_pct"`
	HardViolations          int                `json:"hard_violations"`
	ObjectiveBreakdown      map[string]float64 `json:"objective_breakdown"`
}

// ScheduleResult is the outbound structure for a single solve. Assignments
// are sorted by session id for determinism.
type ScheduleResult struct {
	Status         string          `json:"status"`
	Solver         string          `json:"solver"`
	RuntimeSeconds float64         `json:"runtime_seconds"`
	ObjectiveValue float64         `json:"objective_value"`
	Assignments    []Assignment    `json:"assignments"`
	Metrics        ScheduleMetrics `json:"metrics"`
	Notes          []string        `json:"notes"`
}
