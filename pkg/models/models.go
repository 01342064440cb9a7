package models

// Day is a day of the week as it appears in roster data ("Monday".."Sunday")
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Week lists every day in calendar order, Monday first
var Week = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Assignment sources
const (
	SourcePinned   = "pinned"
	SourceManual   = "manual"
	SourceSolver   = "solver"
	SourceGap      = "gap"
	// SourceFlexible marks open slots of a requirement excluded from solving.
	// They are not counted as unassigned.
	SourceFlexible = "flexible"
)

// BusyBlock is a window on a given day the worker must not be scheduled
type BusyBlock struct {
	Day   Day    `json:"day" validate:"required,weekday"`
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

// Worker represents a person available for shifts
type Worker struct {
	ID           string      `json:"id" validate:"required"`
	Name         string      `json:"name"`
	Seniority    int         `json:"seniority"`
	Role         string      `json:"role"`
	DepartmentID string      `json:"department_id" validate:"required"`
	Lead         bool        `json:"lead"`
	Busy         []BusyBlock `json:"busy,omitempty" validate:"dive"`
}

// Department is an independent partition of workers and the positions it staffs
type Department struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name"`
	Positions []string `json:"positions,omitempty"`
}

// ShiftRequirement asks for Count workers of a role on one day and window
type ShiftRequirement struct {
	ID            string `json:"id" validate:"required"`
	Day           Day    `json:"day" validate:"required,weekday"`
	StartTime     string `json:"start_time" validate:"required,hhmm"`
	EndTime       string `json:"end_time" validate:"required,hhmm"`
	Role          string `json:"role"`
	DepartmentID  string `json:"department_id" validate:"required"`
	Count         int    `json:"count" validate:"gte=0"`
	LeadRole      bool   `json:"lead_role"`
	NoRequirement bool   `json:"no_requirement,omitempty"`
}

// PinnedAssignment fixes a worker to a day and window before solving
type PinnedAssignment struct {
	WorkerID  string `json:"worker_id" validate:"required"`
	Day       Day    `json:"day" validate:"required,weekday"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
}

// Assignment places a worker (or nobody) into one slot of a requirement on its day.
// Manual overrides use the same shape and are inserted verbatim.
type Assignment struct {
	ShiftSlotID   string  `json:"shift_slot_id"`
	RequirementID string  `json:"requirement_id,omitempty"`
	Slot          int     `json:"slot"`
	Day           Day     `json:"day,omitempty"`
	WorkerID      *string `json:"worker_id"`
	AdjustedStart string  `json:"adjusted_start,omitempty"`
	AdjustedEnd   string  `json:"adjusted_end,omitempty"`
	Pinned        bool    `json:"pinned"`
	Source        string  `json:"source,omitempty"`
}

// ConflictReason represents why a slot of a shift group could not be filled
type ConflictReason struct {
	ShiftID      string   `json:"shift_id"`
	Role         string   `json:"role"`
	DepartmentID string   `json:"department_id"`
	Slot         int      `json:"slot"`
	Days         []Day    `json:"days"`
	Reasons      []string `json:"reasons"`
}

// ScheduleInput is the data structure for the scheduling endpoint
type ScheduleInput struct {
	Departments []Department       `json:"departments,omitempty" validate:"dive"`
	Workers     []Worker           `json:"workers" validate:"dive"`
	Shifts      []ShiftRequirement `json:"shifts" validate:"dive"`
	Pinned      []PinnedAssignment `json:"pinned,omitempty" validate:"dive"`
	Overrides   []Assignment       `json:"overrides,omitempty"`
}

// ScheduleResult is the full weekly schedule produced by one solve
type ScheduleResult struct {
	Assignments      []Assignment     `json:"assignments"`
	UnassignedCount  int              `json:"unassigned_count"`
	FairnessScore    float64          `json:"fairness_score"`
	ValidationErrors []string         `json:"validation_errors"`
	Conflicts        []ConflictReason `json:"conflicts,omitempty"`
}

// ScheduleResponse wraps a result with the id of the run that produced it
type ScheduleResponse struct {
	RunID string `json:"run_id"`
	*ScheduleResult
}

// StrPtr returns a pointer to s, for building worker ids on assignments
func StrPtr(s string) *string {
	return &s
}
