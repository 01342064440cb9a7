package scheduler

import "github.com/johndave090909-droid/AutoScheduler/pkg/models"

// ResolveOffset tries each offset in order and returns the first one for which the
// shifted window collides with none of the busy windows. Offsets that push the window
// outside the day are skipped. ok is false when every offset collides.
func ResolveOffset(busy []Window, window Window, offsets []int) (offset int, ok bool) {
	for _, off := range offsets {
		adj := window.Shift(off)
		if adj.Start < 0 || adj.End > MinutesPerDay {
			continue
		}
		if !collides(busy, adj) {
			return off, true
		}
	}
	return 0, false
}

func collides(busy []Window, w Window) bool {
	for _, b := range busy {
		if b.Overlap(w) > 0 {
			return true
		}
	}
	return false
}

// BusyWindows parses the worker's busy blocks that fall on day
func BusyWindows(worker models.Worker, day models.Day) ([]Window, error) {
	var out []Window
	for _, b := range worker.Busy {
		if b.Day != day {
			continue
		}
		w, err := ParseWindow(b.Start, b.End)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
