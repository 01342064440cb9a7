package scheduler

import (
	"fmt"

	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
	"go.uber.org/multierr"
)

// pinPlacement is the requirement slot a pin resolves to
type pinPlacement struct {
	pin  int
	req  int
	slot int
}

// resolvePins places pins in order, each into the lowest open slot of the first
// same-day requirement of the worker's department whose window equals the pin's,
// preferring the worker's own role. Pins naming an unknown worker or carrying a
// malformed window are skipped; every pin that matches nothing is reported.
func resolvePins(workers []models.Worker, shifts []models.ShiftRequirement, pins []models.PinnedAssignment) ([]pinPlacement, error) {
	byID := make(map[string]int, len(workers))
	for i, w := range workers {
		byID[w.ID] = i
	}
	windows := make([]Window, len(shifts))
	parsed := make([]bool, len(shifts))
	for i, sh := range shifts {
		if w, err := ParseWindow(sh.StartTime, sh.EndTime); err == nil {
			windows[i], parsed[i] = w, true
		}
	}

	taken := make(map[slotKey]bool)
	find := func(w models.Worker, day models.Day, win Window) (int, int, bool) {
		for _, sameRole := range []bool{true, false} {
			for ri, sh := range shifts {
				if !parsed[ri] || windows[ri] != win || sh.Day != day || sh.DepartmentID != w.DepartmentID {
					continue
				}
				if sameRole && sh.Role != w.Role {
					continue
				}
				for slot := 0; slot < sh.Count; slot++ {
					if !taken[slotKey{ri, slot}] {
						return ri, slot, true
					}
				}
			}
		}
		return 0, 0, false
	}

	var placements []pinPlacement
	var errs error
	for i, p := range pins {
		wi, ok := byID[p.WorkerID]
		if !ok {
			continue
		}
		win, err := ParseWindow(p.StartTime, p.EndTime)
		if err != nil {
			continue
		}
		w := workers[wi]
		req, slot, ok := find(w, p.Day, win)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("pinned[%d]: no open %s %s requirement in department %q for worker %q",
				i, p.Day, win, w.DepartmentID, w.ID))
			continue
		}
		taken[slotKey{req, slot}] = true
		placements = append(placements, pinPlacement{pin: i, req: req, slot: slot})
	}
	return placements, errs
}
