package scheduler

import (
	"math"

	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
)

// CalculateFairnessScore returns a percentage (0-100) representing how evenly
// assigned minutes are spread over the workers that received any assignment.
// 100% is perfectly even (standard deviation 0).
func CalculateFairnessScore(assignments []models.Assignment) float64 {
	var order []string
	minutes := make(map[string]float64)
	for _, a := range assignments {
		if a.WorkerID == nil {
			continue
		}
		w, err := ParseWindow(a.AdjustedStart, a.AdjustedEnd)
		if err != nil {
			continue
		}
		id := *a.WorkerID
		if _, ok := minutes[id]; !ok {
			order = append(order, id)
		}
		minutes[id] += float64(w.Minutes())
	}

	if len(order) == 0 {
		return 100.0
	}

	var sum float64
	for _, id := range order {
		sum += minutes[id]
	}
	mean := sum / float64(len(order))

	var varianceSum float64
	for _, id := range order {
		diff := minutes[id] - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(order)))

	// 100% means SD is 0. 0% means SD is >= mean.
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
