package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
	"github.com/stretchr/testify/require"
)

func TestReadWorkers(t *testing.T) {
	in := `id,name,seniority,role,department_id,lead,busy
w1,Ana,7,Pantry Lead,pantry,true,Monday 09:00-13:00|Tuesday 10:00-11:30
w2,Ben,3,Pantry Prep 1,pantry,,
`
	workers, err := ReadWorkers(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []models.Worker{
		{ID: "w1", Name: "Ana", Seniority: 7, Role: "Pantry Lead", DepartmentID: "pantry", Lead: true,
			Busy: []models.BusyBlock{
				{Day: models.Monday, Start: "09:00", End: "13:00"},
				{Day: models.Tuesday, Start: "10:00", End: "11:30"},
			}},
		{ID: "w2", Name: "Ben", Seniority: 3, Role: "Pantry Prep 1", DepartmentID: "pantry"},
	}, workers)
}

func TestReadWorkers_Errors(t *testing.T) {
	cases := map[string]string{
		"missing column": "id,name\nw1,Ana\n",
		"bad seniority":  "id,name,seniority,department_id\nw1,Ana,high,pantry\n",
		"bad lead":       "id,name,department_id,lead\nw1,Ana,pantry,maybe\n",
		"bad busy":       "id,name,department_id,busy\nw1,Ana,pantry,Monday\n",
		"empty file":     "",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadWorkers(strings.NewReader(in))
			require.Error(t, err)
		})
	}

	_, err := ReadWorkers(strings.NewReader("id,name,seniority,department_id\nw1,Ana,1,p\nw2,Ben,x,p\n"))
	require.EqualError(t, err, `workers line 3: seniority: "x" is not a number`)
}

func TestReadShiftsAndPins(t *testing.T) {
	shifts, err := ReadShifts(strings.NewReader(`id,day,start,end,role,department_id,count,lead_role,no_requirement
s1,Monday,09:00,13:00,Prep,kitchen,2,false,false
s2,Monday,08:00,12:00,Kitchen Lead,kitchen,1,true,
`))
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	require.Equal(t, 2, shifts[0].Count)
	require.True(t, shifts[1].LeadRole)
	require.Equal(t, "08:00", shifts[1].StartTime)

	pins, err := ReadPins(strings.NewReader("worker_id,day,start,end\nw1,Monday,09:00,13:00\n"))
	require.NoError(t, err)
	require.Equal(t, []models.PinnedAssignment{{WorkerID: "w1", Day: models.Monday, StartTime: "09:00", EndTime: "13:00"}}, pins)
}

func testResult() (*models.ScheduleResult, []models.Worker, []models.ShiftRequirement) {
	workers := []models.Worker{{ID: "w1", Name: "Ana"}, {ID: "w2", Name: "Ben"}}
	shifts := []models.ShiftRequirement{
		{ID: "s1", Day: models.Monday, Role: "Prep"},
		{ID: "s2", Day: models.Tuesday, Role: "Prep"},
	}
	result := &models.ScheduleResult{Assignments: []models.Assignment{
		{ShiftSlotID: "s1_0", RequirementID: "s1", Day: models.Monday, WorkerID: models.StrPtr("w1"),
			AdjustedStart: "08:45", AdjustedEnd: "12:45", Pinned: true, Source: models.SourcePinned},
		{ShiftSlotID: "s2_0", RequirementID: "s2", Day: models.Tuesday, WorkerID: models.StrPtr("w1"),
			AdjustedStart: "09:00", AdjustedEnd: "13:00", Source: models.SourceSolver},
		{ShiftSlotID: "s2_1", RequirementID: "s2", Slot: 1, Day: models.Tuesday, Source: models.SourceGap},
	}}
	return result, workers, shifts
}

func TestWriteAssignments(t *testing.T) {
	result, workers, _ := testResult()
	var buf bytes.Buffer
	require.NoError(t, WriteAssignments(&buf, result, workers))
	require.Equal(t, `shift_slot_id,requirement_id,day,worker_id,worker_name,start,end,pinned,source
s1_0,s1,Monday,w1,Ana,08:45,12:45,true,pinned
s2_0,s2,Tuesday,w1,Ana,09:00,13:00,false,solver
s2_1,s2,Tuesday,,,,,false,gap
`, buf.String())
}

func TestWriteMatrix(t *testing.T) {
	result, workers, shifts := testResult()
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, result, workers, shifts, []models.Day{models.Monday, models.Tuesday}))
	require.Equal(t, `worker,Monday,Tuesday
Ana,08:45-12:45 Prep,09:00-13:00 Prep
Ben,,
(unfilled),0,1
`, buf.String())
}

func TestWriteMatrix_FlexibleSlotsAreNotUnfilled(t *testing.T) {
	result, workers, shifts := testResult()
	result.Assignments = append(result.Assignments, models.Assignment{
		ShiftSlotID: "run_0", RequirementID: "run", Day: models.Monday, Source: models.SourceFlexible,
	})
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, result, workers, shifts, []models.Day{models.Monday, models.Tuesday}))
	require.Contains(t, buf.String(), "(unfilled),0,1\n")
}
