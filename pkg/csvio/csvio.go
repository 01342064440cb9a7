// Package csvio reads roster CSV files and writes schedules back out as CSV.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
)

// table is a CSV file with a header row
type table struct {
	name   string
	reader *csv.Reader
	cols   map[string]int
	line   int
}

func openTable(r io.Reader, name string, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", name, c)
		}
	}
	return &table{name: name, reader: reader, cols: cols, line: 1}, nil
}

// next returns the next record, or io.EOF
func (t *table) next() ([]string, error) {
	record, err := t.reader.Read()
	t.line++
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.name, err)
	}
	return record, nil
}

func (t *table) get(record []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (t *table) getInt(record []string, col string) (int, error) {
	v := t.get(record, col)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, t.errorf("%s: %q is not a number", col, v)
	}
	return n, nil
}

func (t *table) getBool(record []string, col string) (bool, error) {
	v := t.get(record, col)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, t.errorf("%s: %q is not true or false", col, v)
	}
	return b, nil
}

func (t *table) errorf(format string, args ...any) error {
	return fmt.Errorf("%s line %d: %s", t.name, t.line, fmt.Sprintf(format, args...))
}

// ReadWorkers parses a workers file with columns
// id,name,seniority,role,department_id and optional lead,busy
func ReadWorkers(r io.Reader) ([]models.Worker, error) {
	t, err := openTable(r, "workers", "id", "name", "department_id")
	if err != nil {
		return nil, err
	}
	var workers []models.Worker
	for {
		record, err := t.next()
		if errors.Is(err, io.EOF) {
			return workers, nil
		}
		if err != nil {
			return nil, err
		}
		seniority, err := t.getInt(record, "seniority")
		if err != nil {
			return nil, err
		}
		lead, err := t.getBool(record, "lead")
		if err != nil {
			return nil, err
		}
		busy, err := parseBusy(t.get(record, "busy"))
		if err != nil {
			return nil, t.errorf("busy: %v", err)
		}
		workers = append(workers, models.Worker{
			ID:           t.get(record, "id"),
			Name:         t.get(record, "name"),
			Seniority:    seniority,
			Role:         t.get(record, "role"),
			DepartmentID: t.get(record, "department_id"),
			Lead:         lead,
			Busy:         busy,
		})
	}
}

// parseBusy reads blocks written as "Monday 09:00-13:00|Tuesday 10:00-11:30"
func parseBusy(s string) ([]models.BusyBlock, error) {
	if s == "" {
		return nil, nil
	}
	var blocks []models.BusyBlock
	for _, part := range strings.Split(s, "|") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%q is not \"Day HH:mm-HH:mm\"", part)
		}
		start, end, ok := strings.Cut(fields[1], "-")
		if !ok {
			return nil, fmt.Errorf("%q has no time range", part)
		}
		blocks = append(blocks, models.BusyBlock{Day: models.Day(fields[0]), Start: start, End: end})
	}
	return blocks, nil
}

// ReadShifts parses a shifts file with columns
// id,day,start,end,role,department_id,count and optional lead_role,no_requirement
func ReadShifts(r io.Reader) ([]models.ShiftRequirement, error) {
	t, err := openTable(r, "shifts", "id", "day", "start", "end", "role", "department_id", "count")
	if err != nil {
		return nil, err
	}
	var shifts []models.ShiftRequirement
	for {
		record, err := t.next()
		if errors.Is(err, io.EOF) {
			return shifts, nil
		}
		if err != nil {
			return nil, err
		}
		count, err := t.getInt(record, "count")
		if err != nil {
			return nil, err
		}
		leadRole, err := t.getBool(record, "lead_role")
		if err != nil {
			return nil, err
		}
		noReq, err := t.getBool(record, "no_requirement")
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, models.ShiftRequirement{
			ID:            t.get(record, "id"),
			Day:           models.Day(t.get(record, "day")),
			StartTime:     t.get(record, "start"),
			EndTime:       t.get(record, "end"),
			Role:          t.get(record, "role"),
			DepartmentID:  t.get(record, "department_id"),
			Count:         count,
			LeadRole:      leadRole,
			NoRequirement: noReq,
		})
	}
}

// ReadPins parses a pins file with columns worker_id,day,start,end
func ReadPins(r io.Reader) ([]models.PinnedAssignment, error) {
	t, err := openTable(r, "pins", "worker_id", "day", "start", "end")
	if err != nil {
		return nil, err
	}
	var pins []models.PinnedAssignment
	for {
		record, err := t.next()
		if errors.Is(err, io.EOF) {
			return pins, nil
		}
		if err != nil {
			return nil, err
		}
		pins = append(pins, models.PinnedAssignment{
			WorkerID:  t.get(record, "worker_id"),
			Day:       models.Day(t.get(record, "day")),
			StartTime: t.get(record, "start"),
			EndTime:   t.get(record, "end"),
		})
	}
}
