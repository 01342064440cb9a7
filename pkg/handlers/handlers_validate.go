package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
	"github.com/johndave090909-droid/AutoScheduler/pkg/scheduler"
)

// ValidateInput handles the JSON-based validation request
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Workers) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "At least one worker is required"})
		return
	}
	if len(input.Shifts) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "At least one shift requirement is required"})
		return
	}

	opts := h.Scheduler.Options()
	if err := scheduler.ValidateInput(h.Scheduler.Validator(), input, opts.Days); err != nil {
		var inputErr *scheduler.InputError
		if !errors.As(err, &inputErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": false, "errors": inputErr.Problems()})
		return
	}

	slots := 0
	for _, sh := range input.Shifts {
		if !sh.NoRequirement {
			slots += sh.Count
		}
	}

	warnings := scheduler.ValidateLeadExclusivity(input.Workers, input.Departments, opts.Lead)
	if warnings == nil {
		warnings = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"warnings": warnings,
		"stats": gin.H{
			"worker_count":     len(input.Workers),
			"shift_count":      len(input.Shifts),
			"department_count": len(input.Departments),
			"slot_count":       slots,
		},
	})
}
