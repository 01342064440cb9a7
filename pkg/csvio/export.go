package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
)

// WriteAssignments exports one row per assignment, unfilled slots included
func WriteAssignments(w io.Writer, result *models.ScheduleResult, workers []models.Worker) error {
	names := make(map[string]string, len(workers))
	for _, wk := range workers {
		names[wk.ID] = wk.Name
	}

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"shift_slot_id", "requirement_id", "day", "worker_id", "worker_name", "start", "end", "pinned", "source"})
	for _, a := range result.Assignments {
		var id, name string
		if a.WorkerID != nil {
			id = *a.WorkerID
			name = names[id]
		}
		_ = writer.Write([]string{
			a.ShiftSlotID,
			a.RequirementID,
			string(a.Day),
			id,
			name,
			a.AdjustedStart,
			a.AdjustedEnd,
			strconv.FormatBool(a.Pinned),
			a.Source,
		})
	}
	writer.Flush()
	return writer.Error()
}

// WriteMatrix exports the worker × day view: one row per worker in roster order, one
// column per day, each cell listing "HH:mm-HH:mm role" for that day. A final row counts
// unfilled slots per day; flexible slots are not counted.
func WriteMatrix(w io.Writer, result *models.ScheduleResult, workers []models.Worker, shifts []models.ShiftRequirement, days []models.Day) error {
	roles := make(map[string]string, len(shifts))
	for _, sh := range shifts {
		roles[sh.ID] = sh.Role
	}

	type cellKey struct {
		worker string
		day    models.Day
	}
	cells := make(map[cellKey][]string)
	unfilled := make(map[models.Day]int)
	for _, a := range result.Assignments {
		if a.WorkerID == nil {
			if a.Source != models.SourceFlexible {
				unfilled[a.Day]++
			}
			continue
		}
		entry := strings.TrimSpace(fmt.Sprintf("%s-%s %s", a.AdjustedStart, a.AdjustedEnd, roles[a.RequirementID]))
		k := cellKey{*a.WorkerID, a.Day}
		cells[k] = append(cells[k], entry)
	}

	writer := csv.NewWriter(w)
	header := []string{"worker"}
	for _, d := range days {
		header = append(header, string(d))
	}
	_ = writer.Write(header)

	for _, wk := range workers {
		row := []string{wk.Name}
		for _, d := range days {
			row = append(row, strings.Join(cells[cellKey{wk.ID, d}], " / "))
		}
		_ = writer.Write(row)
	}

	row := []string{"(unfilled)"}
	for _, d := range days {
		row = append(row, strconv.Itoa(unfilled[d]))
	}
	_ = writer.Write(row)

	writer.Flush()
	return writer.Error()
}
