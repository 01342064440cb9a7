package scheduler

import (
	"fmt"
	"regexp"
	"strconv"
)

// MinutesPerDay is the length of a scheduling day; "24:00" maps to it
const MinutesPerDay = 24 * 60

var reHHMM = regexp.MustCompile(`^\d{2}:\d{2}$`)

// TimeToMinutes converts an "HH:mm" 24-hour clock string to minutes since midnight
func TimeToMinutes(s string) (int, error) {
	if !reHHMM.MatchString(s) {
		return 0, fmt.Errorf("time %q is not in HH:mm format", s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("time %q is out of range", s)
	}
	return h*60 + m, nil
}

// MinutesToTime formats minutes since midnight as "HH:mm"
func MinutesToTime(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// Window is a half-open interval of minutes since midnight on a single day
type Window struct {
	Start int
	End   int
}

// ParseWindow parses a start/end pair of clock strings into a Window
func ParseWindow(start, end string) (Window, error) {
	s, err := TimeToMinutes(start)
	if err != nil {
		return Window{}, err
	}
	e, err := TimeToMinutes(end)
	if err != nil {
		return Window{}, err
	}
	if e <= s {
		return Window{}, fmt.Errorf("window %s-%s must end after it starts", start, end)
	}
	return Window{Start: s, End: e}, nil
}

// Shift moves the window by offset minutes
func (w Window) Shift(offset int) Window {
	return Window{Start: w.Start + offset, End: w.End + offset}
}

// Overlap returns how many minutes two windows share (zero or negative when disjoint)
func (w Window) Overlap(o Window) int {
	return min(w.End, o.End) - max(w.Start, o.Start)
}

// Minutes returns the window length
func (w Window) Minutes() int {
	return w.End - w.Start
}

func (w Window) String() string {
	return MinutesToTime(w.Start) + "-" + MinutesToTime(w.End)
}
