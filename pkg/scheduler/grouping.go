package scheduler

import (
	"cmp"
	"slices"

	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
)

// GroupKey identifies one weekly position: the same window and role in one department
type GroupKey struct {
	Start        int
	End          int
	Role         string
	DepartmentID string
}

// Compare orders keys field by field: start, end, role, department
func (k GroupKey) Compare(o GroupKey) int {
	return cmp.Or(
		cmp.Compare(k.Start, o.Start),
		cmp.Compare(k.End, o.End),
		cmp.Compare(k.Role, o.Role),
		cmp.Compare(k.DepartmentID, o.DepartmentID),
	)
}

// Window returns the unshifted window shared by every member of the group
func (k GroupKey) Window() Window {
	return Window{Start: k.Start, End: k.End}
}

// ShiftGroup collects the requirements of one position across the week
type ShiftGroup struct {
	Key GroupKey
	// Lead is the lead classification of the group's first requirement
	Lead bool
	// Members index into the requirement slice, in input order
	Members  []int
	MaxCount int
}

// GroupRequirements partitions solvable requirements by GroupKey and returns the groups
// in processing order: lead-class groups first, then by key. Requirements flagged
// NoRequirement are left out.
func GroupRequirements(shifts []models.ShiftRequirement, lead LeadPolicy) ([]*ShiftGroup, error) {
	byKey := make(map[GroupKey]*ShiftGroup)
	var groups []*ShiftGroup
	for i, sh := range shifts {
		if sh.NoRequirement {
			continue
		}
		w, err := ParseWindow(sh.StartTime, sh.EndTime)
		if err != nil {
			return nil, err
		}
		key := GroupKey{Start: w.Start, End: w.End, Role: sh.Role, DepartmentID: sh.DepartmentID}
		g, ok := byKey[key]
		if !ok {
			g = &ShiftGroup{Key: key, Lead: lead.IsLeadShift(sh)}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.Members = append(g.Members, i)
		g.MaxCount = max(g.MaxCount, sh.Count)
	}

	slices.SortStableFunc(groups, func(a, b *ShiftGroup) int {
		if a.Lead != b.Lead {
			if a.Lead {
				return -1
			}
			return 1
		}
		return a.Key.Compare(b.Key)
	})
	return groups, nil
}
