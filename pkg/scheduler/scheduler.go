package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
	"go.uber.org/zap"
)

// Scheduler assigns workers to the weekly grid of shift requirements.
// It holds only configuration, so one Scheduler may serve concurrent Solve calls.
type Scheduler struct {
	opts     Options
	validate *validator.Validate
}

// NewScheduler creates a scheduler, filling unset options with defaults
func NewScheduler(opts Options) *Scheduler {
	ApplyDefaults(&opts)
	return &Scheduler{
		opts:     opts,
		validate: NewValidator(),
	}
}

// Options returns the policy the scheduler was built with
func (s *Scheduler) Options() Options {
	return s.opts
}

// Validator returns the struct validator used on inputs
func (s *Scheduler) Validator() *validator.Validate {
	return s.validate
}

// Solve runs the heuristic with DefaultOptions
func Solve(workers []models.Worker, shifts []models.ShiftRequirement, pinned []models.PinnedAssignment, overrides []models.Assignment) (*models.ScheduleResult, error) {
	return NewScheduler(DefaultOptions()).Solve(models.ScheduleInput{
		Workers:   workers,
		Shifts:    shifts,
		Pinned:    pinned,
		Overrides: overrides,
	})
}

// Solve turns a roster and its shift requirements into a weekly schedule.
// Malformed input fails the whole call with an *InputError; unfilled slots and
// roster problems are reported on the result instead.
func (s *Scheduler) Solve(input models.ScheduleInput) (*models.ScheduleResult, error) {
	if err := ValidateInput(s.validate, input, s.opts.Days); err != nil {
		return nil, err
	}

	r, err := newRun(s.opts, input)
	if err != nil {
		return nil, newInputError(err)
	}
	if err := r.applyPins(input.Pinned); err != nil {
		return nil, newInputError(err)
	}
	r.applyOverrides(input.Overrides)

	groups, err := GroupRequirements(input.Shifts, s.opts.Lead)
	if err != nil {
		return nil, newInputError(err)
	}
	for _, g := range groups {
		r.fillGroup(g)
	}
	r.fillGaps()

	unassigned := 0
	for _, a := range r.assignments {
		if a.WorkerID == nil && a.Source != models.SourceFlexible {
			unassigned++
		}
	}

	validationErrors := ValidateLeadExclusivity(input.Workers, input.Departments, s.opts.Lead)
	validationErrors = append(validationErrors, r.notes...)
	if validationErrors == nil {
		validationErrors = []string{}
	}
	if r.assignments == nil {
		r.assignments = []models.Assignment{}
	}

	s.opts.Logger.Info("schedule solved",
		zap.Int("workers", len(input.Workers)),
		zap.Int("shifts", len(input.Shifts)),
		zap.Int("groups", len(groups)),
		zap.Int("assignments", len(r.assignments)),
		zap.Int("unassigned", unassigned),
		zap.Int("validation_errors", len(validationErrors)),
	)

	return &models.ScheduleResult{
		Assignments:      r.assignments,
		UnassignedCount:  unassigned,
		FairnessScore:    CalculateFairnessScore(r.assignments),
		ValidationErrors: validationErrors,
		Conflicts:        r.conflicts,
	}, nil
}

// SlotID names repetition slot i of a requirement
func SlotID(requirementID string, slot int) string {
	return requirementID + "_" + strconv.Itoa(slot)
}

// ParseSlotID splits a slot id built by SlotID
func ParseSlotID(id string) (requirementID string, slot int, ok bool) {
	i := strings.LastIndex(id, "_")
	if i <= 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return id[:i], n, true
}

type slotKey struct {
	req  int
	slot int
}

// dayFill is one day of a group slot that still needs a worker
type dayFill struct {
	day models.Day
	req int
}

// cover is a day a candidate can work, with the offset that makes it fit
type cover struct {
	dayFill
	offset int
}

type rejections struct {
	placed      int
	lead        int
	unavailable int
}

// run is the mutable state of a single Solve call
type run struct {
	opts      Options
	workers   []models.Worker
	shifts    []models.ShiftRequirement
	reqByID   map[string]int
	busy      []map[models.Day][]Window
	consumed  map[string]bool
	satisfied map[slotKey]bool

	assignments []models.Assignment
	conflicts   []models.ConflictReason
	notes       []string
}

func newRun(opts Options, input models.ScheduleInput) (*run, error) {
	r := &run{
		opts:      opts,
		workers:   input.Workers,
		shifts:    input.Shifts,
		reqByID:   make(map[string]int, len(input.Shifts)),
		busy:      make([]map[models.Day][]Window, len(input.Workers)),
		consumed:  make(map[string]bool),
		satisfied: make(map[slotKey]bool),
	}
	for i, w := range input.Workers {
		r.busy[i] = make(map[models.Day][]Window)
		for _, day := range opts.Days {
			windows, err := BusyWindows(w, day)
			if err != nil {
				return nil, fmt.Errorf("worker %q: %w", w.ID, err)
			}
			r.busy[i][day] = windows
		}
	}
	for i, sh := range input.Shifts {
		r.reqByID[sh.ID] = i
	}
	return r, nil
}

// applyPins places every pinned worker into the slot resolvePins picks and removes
// the worker from the candidate pool
func (r *run) applyPins(pins []models.PinnedAssignment) error {
	placements, err := resolvePins(r.workers, r.shifts, pins)
	if err != nil {
		return err
	}
	for _, pl := range placements {
		p := pins[pl.pin]
		sh := r.shifts[pl.req]
		r.assignments = append(r.assignments, models.Assignment{
			ShiftSlotID:   SlotID(sh.ID, pl.slot),
			RequirementID: sh.ID,
			Slot:          pl.slot,
			Day:           sh.Day,
			WorkerID:      models.StrPtr(p.WorkerID),
			AdjustedStart: p.StartTime,
			AdjustedEnd:   p.EndTime,
			Pinned:        true,
			Source:        models.SourcePinned,
		})
		r.satisfied[slotKey{pl.req, pl.slot}] = true
		r.consumed[p.WorkerID] = true
	}
	return nil
}

// applyOverrides inserts manual assignments as given. Only missing identification
// fields are derived so the slot can be recognised by gap filling. Overrides that
// hold no slot of their own are kept and noted.
func (r *run) applyOverrides(overrides []models.Assignment) {
	for _, o := range overrides {
		a := o
		reqID, slot := a.RequirementID, a.Slot
		if reqID == "" {
			if id, n, ok := ParseSlotID(a.ShiftSlotID); ok {
				reqID, slot = id, n
				a.RequirementID, a.Slot = id, n
			}
		}
		if a.ShiftSlotID == "" {
			a.ShiftSlotID = SlotID(reqID, slot)
		}
		if ri, ok := r.reqByID[reqID]; ok {
			sh := r.shifts[ri]
			switch {
			case slot < 0 || slot >= sh.Count:
				r.notef("Override Conflict: %s is outside requirement %s (count %d)", a.ShiftSlotID, sh.ID, sh.Count)
			case r.satisfied[slotKey{ri, slot}]:
				r.notef("Override Conflict: %s is already filled", a.ShiftSlotID)
			}
			r.satisfied[slotKey{ri, slot}] = true
			if a.Day == "" {
				a.Day = sh.Day
			}
		} else {
			r.notef("Override Conflict: %s references unknown requirement %q", a.ShiftSlotID, reqID)
		}
		if a.Source == "" {
			a.Source = models.SourceManual
		}
		if a.WorkerID != nil {
			r.consumed[*a.WorkerID] = true
		}
		r.assignments = append(r.assignments, a)
	}
}

func (r *run) notef(format string, args ...any) {
	r.notes = append(r.notes, fmt.Sprintf(format, args...))
}

func (r *run) fillGroup(g *ShiftGroup) {
	window := g.Key.Window()
	for i := 0; i < g.MaxCount; i++ {
		fills := r.daysNeedingFill(g, i)
		if len(fills) == 0 {
			continue
		}

		best, covers, rej := r.selectCandidate(g, fills)
		if best < 0 {
			r.recordConflict(g, i, fills, rej)
			continue
		}

		w := r.workers[best]
		for _, c := range covers {
			sh := r.shifts[c.req]
			adj := window.Shift(c.offset)
			r.assignments = append(r.assignments, models.Assignment{
				ShiftSlotID:   SlotID(sh.ID, i),
				RequirementID: sh.ID,
				Slot:          i,
				Day:           c.day,
				WorkerID:      models.StrPtr(w.ID),
				AdjustedStart: MinutesToTime(adj.Start),
				AdjustedEnd:   MinutesToTime(adj.End),
				Source:        models.SourceSolver,
			})
			r.satisfied[slotKey{c.req, i}] = true
		}
		r.consumed[w.ID] = true
	}
}

// daysNeedingFill lists, in week order, the days whose requirement in the group still
// needs slot i
func (r *run) daysNeedingFill(g *ShiftGroup, i int) []dayFill {
	var fills []dayFill
	for _, day := range r.opts.Days {
		for _, ri := range g.Members {
			sh := r.shifts[ri]
			if sh.Day == day && sh.Count > i && !r.satisfied[slotKey{ri, i}] {
				fills = append(fills, dayFill{day: day, req: ri})
				break
			}
		}
	}
	return fills
}

// selectCandidate returns the most senior eligible worker, earliest in the roster on
// ties, or -1 with the tally of why each worker of the department was rejected
func (r *run) selectCandidate(g *ShiftGroup, fills []dayFill) (int, []cover, rejections) {
	var rej rejections
	best := -1
	var bestCovers []cover
	window := g.Key.Window()

	for wi, w := range r.workers {
		if w.DepartmentID != g.Key.DepartmentID {
			continue
		}
		if r.consumed[w.ID] {
			rej.placed++
			continue
		}
		if r.opts.MatchLeadClass && r.opts.Lead.IsLeadWorker(w) != g.Lead {
			rej.lead++
			continue
		}
		covers := r.coverage(wi, window, fills)
		if !r.coversEnough(len(covers), len(fills)) {
			rej.unavailable++
			continue
		}
		if best < 0 || w.Seniority > r.workers[best].Seniority {
			best = wi
			bestCovers = covers
		}
	}
	return best, bestCovers, rej
}

func (r *run) coverage(wi int, window Window, fills []dayFill) []cover {
	var covers []cover
	for _, f := range fills {
		if off, ok := ResolveOffset(r.busy[wi][f.day], window, r.opts.Offsets); ok {
			covers = append(covers, cover{dayFill: f, offset: off})
		}
	}
	return covers
}

func (r *run) coversEnough(covered, needed int) bool {
	if r.opts.Continuity == ContinuityPartial {
		return covered > 0
	}
	return covered == needed
}

func (r *run) recordConflict(g *ShiftGroup, slot int, fills []dayFill, rej rejections) {
	var reasons []string
	if rej.placed > 0 {
		reasons = append(reasons, fmt.Sprintf("%d workers were already placed in another position", rej.placed))
	}
	if rej.lead > 0 {
		reasons = append(reasons, fmt.Sprintf("%d workers did not match the lead class of the role", rej.lead))
	}
	if rej.unavailable > 0 {
		if r.opts.Continuity == ContinuityPartial {
			reasons = append(reasons, fmt.Sprintf("%d workers could not cover any required day", rej.unavailable))
		} else {
			reasons = append(reasons, fmt.Sprintf("%d workers could not cover every required day", rej.unavailable))
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "no workers found in this department")
	}

	days := make([]models.Day, 0, len(fills))
	for _, f := range fills {
		days = append(days, f.day)
	}
	first := r.shifts[fills[0].req]
	r.conflicts = append(r.conflicts, models.ConflictReason{
		ShiftID:      first.ID,
		Role:         g.Key.Role,
		DepartmentID: g.Key.DepartmentID,
		Slot:         slot,
		Days:         days,
		Reasons:      reasons,
	})
	r.opts.Logger.Debug("slot left unfilled",
		zap.String("role", g.Key.Role),
		zap.String("department", g.Key.DepartmentID),
		zap.Int("slot", slot),
		zap.Strings("reasons", reasons),
	)
}

// fillGaps emits a null assignment for every slot nobody holds. Slots of requirements
// excluded from solving are marked flexible instead of gap.
func (r *run) fillGaps() {
	for ri, sh := range r.shifts {
		source := models.SourceGap
		if sh.NoRequirement {
			source = models.SourceFlexible
		}
		for i := 0; i < sh.Count; i++ {
			if r.satisfied[slotKey{ri, i}] {
				continue
			}
			r.assignments = append(r.assignments, models.Assignment{
				ShiftSlotID:   SlotID(sh.ID, i),
				RequirementID: sh.ID,
				Slot:          i,
				Day:           sh.Day,
				Source:        source,
			})
		}
	}
}
