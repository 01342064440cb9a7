package scheduler

import (
	"strings"

	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
	"go.uber.org/zap"
)

// Continuity controls how much of a weekly position a candidate must be able to cover
type Continuity string

const (
	// ContinuityAllDays requires the candidate to cover every day still needing the slot
	ContinuityAllDays Continuity = "all_days"
	// ContinuityPartial accepts a candidate who covers at least one day; uncovered days become gaps
	ContinuityPartial Continuity = "partial"
)

// DefaultOffsets is the order in which shifted start times are tried: exact, 15 minutes
// earlier, 15 minutes later
var DefaultOffsets = []int{0, -15, 15}

// DefaultLeadMarkers are the role substrings SubstringLeadPolicy treats as lead-class
var DefaultLeadMarkers = []string{"lead", "apprenticeship"}

// LeadPolicy classifies workers and shift roles as lead-class
type LeadPolicy interface {
	Name() string
	IsLeadWorker(w models.Worker) bool
	IsLeadShift(s models.ShiftRequirement) bool
}

// FlagLeadPolicy reads the explicit lead flags set at data entry
type FlagLeadPolicy struct{}

func (FlagLeadPolicy) Name() string { return "flag" }

func (FlagLeadPolicy) IsLeadWorker(w models.Worker) bool { return w.Lead }

func (FlagLeadPolicy) IsLeadShift(s models.ShiftRequirement) bool { return s.LeadRole }

// SubstringLeadPolicy infers lead-class from role labels containing any marker,
// case-insensitively. The explicit flags are ignored.
type SubstringLeadPolicy struct {
	Markers []string
}

func (SubstringLeadPolicy) Name() string { return "substring" }

func (p SubstringLeadPolicy) IsLeadWorker(w models.Worker) bool { return p.matches(w.Role) }

func (p SubstringLeadPolicy) IsLeadShift(s models.ShiftRequirement) bool { return p.matches(s.Role) }

func (p SubstringLeadPolicy) matches(role string) bool {
	markers := p.Markers
	if len(markers) == 0 {
		markers = DefaultLeadMarkers
	}
	role = strings.ToLower(role)
	for _, m := range markers {
		if m != "" && strings.Contains(role, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// Options are the tunable policies of the assignment heuristic
type Options struct {
	// Offsets are tried in order when resolving a worker's availability for a window
	Offsets []int
	// Days is the scheduled week in iteration order; requirements on other days are rejected
	Days []models.Day
	// Lead classifies lead-class workers and roles
	Lead LeadPolicy
	// MatchLeadClass restricts lead workers to lead roles and vice versa
	MatchLeadClass bool
	Continuity     Continuity
	Logger         *zap.Logger
}

// DefaultOptions returns the standard policy: offsets 0/-15/+15 over the full week,
// explicit lead flags, lead matching and all-days continuity
func DefaultOptions() Options {
	return Options{
		Offsets:        append([]int(nil), DefaultOffsets...),
		Days:           append([]models.Day(nil), models.Week...),
		Lead:           FlagLeadPolicy{},
		MatchLeadClass: true,
		Continuity:     ContinuityAllDays,
		Logger:         zap.NewNop(),
	}
}

// ApplyDefaults fills unset fields with the values from DefaultOptions.
// MatchLeadClass is a plain bool and is left as given.
func ApplyDefaults(opts *Options) {
	def := DefaultOptions()
	if len(opts.Offsets) == 0 {
		opts.Offsets = def.Offsets
	}
	if len(opts.Days) == 0 {
		opts.Days = def.Days
	}
	if opts.Lead == nil {
		opts.Lead = def.Lead
	}
	if opts.Continuity == "" {
		opts.Continuity = def.Continuity
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}
}
