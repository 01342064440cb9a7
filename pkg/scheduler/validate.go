package scheduler

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
	"go.uber.org/multierr"
)

// ErrInvalidInput is matched by every error Solve returns for malformed input
var ErrInvalidInput = errors.New("invalid schedule input")

// InputError aggregates every problem found in a ScheduleInput
type InputError struct {
	err error
}

func (e *InputError) Error() string {
	return ErrInvalidInput.Error() + ": " + e.err.Error()
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Problems lists the individual problems, one message each
func (e *InputError) Problems() []string {
	errs := multierr.Errors(e.err)
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func newInputError(err error) error {
	if err == nil {
		return nil
	}
	return &InputError{err: err}
}

// NewValidator returns a validator that understands the "hhmm" and "weekday" tags used
// on the roster models and reports fields by their JSON names
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := TimeToMinutes(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.Week, models.Day(fl.Field().String()))
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateInput checks field formats and cross references of an input. It returns nil
// or an *InputError listing every problem found.
func ValidateInput(v *validator.Validate, input models.ScheduleInput, days []models.Day) error {
	var errs error
	if err := v.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return newInputError(err)
		}
		for _, fe := range verrs {
			errs = multierr.Append(errs, fieldProblem(fe))
		}
	}

	deptIDs := make(map[string]bool, len(input.Departments))
	positions := make(map[string][]string, len(input.Departments))
	for _, d := range input.Departments {
		if deptIDs[d.ID] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate department id %q", d.ID))
		}
		deptIDs[d.ID] = true
		positions[d.ID] = append(positions[d.ID], d.Positions...)
	}
	knownDept := func(id string) bool {
		return len(input.Departments) == 0 || id == "" || deptIDs[id]
	}
	// a department that lists no positions accepts any role
	knownRole := func(dept, role string) bool {
		return role == "" || len(positions[dept]) == 0 || slices.Contains(positions[dept], role)
	}

	workerIDs := make(map[string]bool, len(input.Workers))
	for i, w := range input.Workers {
		if w.ID != "" && workerIDs[w.ID] {
			errs = multierr.Append(errs, fmt.Errorf("workers[%d]: duplicate worker id %q", i, w.ID))
		}
		workerIDs[w.ID] = true
		if !knownDept(w.DepartmentID) {
			errs = multierr.Append(errs, fmt.Errorf("workers[%d]: unknown department %q", i, w.DepartmentID))
		} else if !knownRole(w.DepartmentID, w.Role) {
			errs = multierr.Append(errs, fmt.Errorf("workers[%d]: role %q is not a position of department %q", i, w.Role, w.DepartmentID))
		}
		for j, b := range w.Busy {
			if err := checkWindow(b.Start, b.End); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("workers[%d].busy[%d]: %w", i, j, err))
			}
		}
	}

	shiftIDs := make(map[string]bool, len(input.Shifts))
	for i, sh := range input.Shifts {
		if sh.ID != "" && shiftIDs[sh.ID] {
			errs = multierr.Append(errs, fmt.Errorf("shifts[%d]: duplicate shift id %q", i, sh.ID))
		}
		shiftIDs[sh.ID] = true
		if !knownDept(sh.DepartmentID) {
			errs = multierr.Append(errs, fmt.Errorf("shifts[%d]: unknown department %q", i, sh.DepartmentID))
		} else if !knownRole(sh.DepartmentID, sh.Role) {
			errs = multierr.Append(errs, fmt.Errorf("shifts[%d]: role %q is not a position of department %q", i, sh.Role, sh.DepartmentID))
		}
		if slices.Contains(models.Week, sh.Day) && !slices.Contains(days, sh.Day) {
			errs = multierr.Append(errs, fmt.Errorf("shifts[%d]: %s is not a scheduled day", i, sh.Day))
		}
		if err := checkWindow(sh.StartTime, sh.EndTime); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shifts[%d]: %w", i, err))
		}
	}

	for i, p := range input.Pinned {
		if p.WorkerID != "" && !workerIDs[p.WorkerID] {
			errs = multierr.Append(errs, fmt.Errorf("pinned[%d]: unknown worker %q", i, p.WorkerID))
		}
		if err := checkWindow(p.StartTime, p.EndTime); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("pinned[%d]: %w", i, err))
		}
	}

	if _, err := resolvePins(input.Workers, input.Shifts, input.Pinned); err != nil {
		errs = multierr.Append(errs, err)
	}

	for i, o := range input.Overrides {
		if o.ShiftSlotID == "" && o.RequirementID == "" {
			errs = multierr.Append(errs, fmt.Errorf("overrides[%d]: shift_slot_id or requirement_id is required", i))
		}
	}
	return newInputError(errs)
}

// checkWindow reports an inverted or empty window. Malformed clock strings are
// reported by the struct tags and skipped here.
func checkWindow(start, end string) error {
	s, err1 := TimeToMinutes(start)
	e, err2 := TimeToMinutes(end)
	if err1 != nil || err2 != nil {
		return nil
	}
	if e <= s {
		return fmt.Errorf("window %s-%s must end after it starts", start, end)
	}
	return nil
}

func fieldProblem(fe validator.FieldError) error {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "hhmm":
		return fmt.Errorf("%s: %q is not an HH:mm time", field, fe.Value())
	case "weekday":
		return fmt.Errorf("%s: %q is not a day of the week", field, fe.Value())
	case "gte":
		return fmt.Errorf("%s must be at least %s", field, fe.Param())
	}
	return fmt.Errorf("%s failed %q validation", field, fe.Tag())
}
