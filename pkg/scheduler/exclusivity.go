package scheduler

import (
	"fmt"
	"strings"

	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
)

// ValidateLeadExclusivity reports every department with more than one lead-class
// worker on the roster. Departments are reported in order of first appearance and named
// from the registry when it knows them.
func ValidateLeadExclusivity(workers []models.Worker, departments []models.Department, lead LeadPolicy) []string {
	names := make(map[string]string, len(departments))
	for _, d := range departments {
		if d.Name != "" {
			names[d.ID] = d.Name
		}
	}

	var order []string
	leads := make(map[string][]string)
	for _, w := range workers {
		if !lead.IsLeadWorker(w) {
			continue
		}
		if _, seen := leads[w.DepartmentID]; !seen {
			order = append(order, w.DepartmentID)
		}
		leads[w.DepartmentID] = append(leads[w.DepartmentID], w.Name)
	}

	var msgs []string
	for _, id := range order {
		if len(leads[id]) < 2 {
			continue
		}
		name := id
		if n, ok := names[id]; ok {
			name = n
		}
		msgs = append(msgs, fmt.Sprintf("Constraint Violation: Department %s has multiple Leads: %s",
			name, strings.Join(leads[id], ", ")))
	}
	return msgs
}
