package models

// Weekday values accepted for time slots.
const (
	DayMon = "Mon"
	DayTue = "Tue"
	DayWed = "Wed"
	DayThu = "Thu"
	DayFri = "Fri"
	DaySat = "Sat"
	DaySun = "Sun"
)

// TimeSlot is one bookable slot in the weekly grid. Order is only used for
// deterministic iteration, never for semantics.
type TimeSlot struct {
	ID    string `json:"id" validate:"required"`
	Day   string `json:"day" validate:"required,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
	Order int    `json:"order" validate:"min=0"`
}

// Room is a physical room with a capacity and a feature set.
type Room struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Capacity int      `json:"capacity" validate:"required,min=1"`
	Features []string `json:"features"`
}

// Instructor teaches courses. An empty AvailableTimeSlots list means the
// instructor is available for every slot.
type Instructor struct {
	ID                 string   `json:"id" validate:"required"`
	Name               string   `json:"name" validate:"required"`
	AvailableTimeSlots []string `json:"available_time_slots"`
	PreferredTimeSlots []string `json:"preferred_time_slots"`
	MaxSessionsPerDay  int      `json:"max_sessions_per_day" validate:"min=0"`
}

// HasDailyCap reports whether a max-sessions-per-day cap is configured.
func (i Instructor) HasDailyCap() bool {
	return i.MaxSessionsPerDay > 0
}

// Course is the unit of demand. Empty AllowedTimeSlots means every slot is
// allowed. AvoidSameDaySessions defaults to true when omitted.
type Course struct {
	ID                  string   `json:"id" validate:"required"`
	Name                string   `json:"name" validate:"required"`
	InstructorID        string   `json:"instructor_id" validate:"required"`
	Enrollment          int      `json:"enrollment" validate:"required,min=1"`
	SessionsPerWeek     int      `json:"sessions_per_week" validate:"min=0"`
	RequiredFeatures    []string `json:"required_features"`
	PreferredTimeSlots  []string `json:"preferred_time_slots"`
	AllowedTimeSlots    []string `json:"allowed_time_slots"`
	ClusterTag          string   `json:"cluster_tag"`
	Priority            int      `json:"priority" validate:"min=0,max=10"`
	AvoidSameDaySessions *bool   `json:"avoid_same_day_sessions"`
}

// AvoidSameDay resolves the avoid-same-day flag, defaulting to true.
func (c Course) AvoidSameDay() bool {
	if c.AvoidSameDaySessions == nil {
		return true
	}
	return *c.AvoidSameDaySessions
}

// ObjectiveWeights scale the four soft objective components.
type ObjectiveWeights struct {
	InstructorPreference int `json:"instructor_preference" validate:"min=0"`
	RoomEfficiency       int `json:"room_efficiency" validate:"min=0"`
	ClusterCompactness   int `json:"cluster_compactness" validate:"min=0"`
	CoursePriority       int `json:"course_priority" validate:"min=0"`
}

// DefaultObjectiveWeights returns the standard weighting profile.
func DefaultObjectiveWeights() ObjectiveWeights {
	return ObjectiveWeights{
		InstructorPreference: 5,
		RoomEfficiency:       3,
		ClusterCompactness:   4,
		CoursePriority:       2,
	}
}

// SolverOptions tune a single solve.
type SolverOptions struct {
	TimeLimitSeconds int              `json:"time_limit_seconds" validate:"min=0"`
	NumWorkers       int              `json:"num_workers" validate:"min=0"`
	EnableFallback   *bool            `json:"enable_fallback"`
	ObjectiveWeights ObjectiveWeights `json:"objective_weights"`
}

// FallbackEnabled resolves the fallback flag, defaulting to true.
func (o SolverOptions) FallbackEnabled() bool {
	if o.EnableFallback == nil {
		return true
	}
	return *o.EnableFallback
}

// SchedulingInput is the sole entry data structure into the orchestrator.
// Ingestion collaborators must produce this shape; the core never parses
// raw bytes.
type SchedulingInput struct {
	Courses     []Course      `json:"courses" validate:"required,min=1,dive"`
	Instructors []Instructor  `json:"instructors" validate:"dive"`
	Rooms       []Room        `json:"rooms" validate:"dive"`
	TimeSlots   []TimeSlot    `json:"time_slots" validate:"dive"`
	Options     SolverOptions `json:"options"`
}

// Normalize applies the documented defaults in place: per-course priority 5
// and one session per week, a 15 second time budget, 8 workers, and the
// standard objective weights when the weights block is entirely absent.
func (in *SchedulingInput) Normalize() {
	for idx := range in.Courses {
		if in.Courses[idx].SessionsPerWeek <= 0 {
			in.Courses[idx].SessionsPerWeek = 1
		}
		if in.Courses[idx].Priority <= 0 {
			in.Courses[idx].Priority = 5
		}
	}
	if in.Options.TimeLimitSeconds <= 0 {
		in.Options.TimeLimitSeconds = 15
	}
	if in.Options.NumWorkers <= 0 {
		in.Options.NumWorkers = 8
	}
	if in.Options.ObjectiveWeights == (ObjectiveWeights{}) {
		in.Options.ObjectiveWeights = DefaultObjectiveWeights()
	}
}

// Clone returns a deep copy so concurrent scenario solves never share
// mutable state.
func (in SchedulingInput) Clone() SchedulingInput {
	out := in
	out.Courses = make([]Course, len(in.Courses))
	for idx, course := range in.Courses {
		copied := course
		copied.RequiredFeatures = cloneStrings(course.RequiredFeatures)
		copied.PreferredTimeSlots = cloneStrings(course.PreferredTimeSlots)
		copied.AllowedTimeSlots = cloneStrings(course.AllowedTimeSlots)
		if course.AvoidSameDaySessions != nil {
			flag := *course.AvoidSameDaySessions
			copied.AvoidSameDaySessions = &flag
		}
		out.Courses[idx] = copied
	}
	out.Instructors = make([]Instructor, len(in.Instructors))
	for idx, instructor := range in.Instructors {
		copied := instructor
		copied.AvailableTimeSlots = cloneStrings(instructor.AvailableTimeSlots)
		copied.PreferredTimeSlots = cloneStrings(instructor.PreferredTimeSlots)
		out.Instructors[idx] = copied
	}
	out.Rooms = make([]Room, len(in.Rooms))
	for idx, room := range in.Rooms {
		copied := room
		copied.Features = cloneStrings(room.Features)
		out.Rooms[idx] = copied
	}
	out.TimeSlots = append([]TimeSlot(nil), in.TimeSlots...)
	if in.Options.EnableFallback != nil {
		flag := *in.Options.EnableFallback
		out.Options.EnableFallback = &flag
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
