package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/johndave090909-droid/AutoScheduler/pkg/config"
	"github.com/johndave090909-droid/AutoScheduler/pkg/csvio"
	"github.com/johndave090909-droid/AutoScheduler/pkg/models"
	"github.com/johndave090909-droid/AutoScheduler/pkg/scheduler"
	"go.uber.org/zap"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Scheduler *scheduler.Scheduler
	Policy    config.Policy
	Logger    *zap.Logger
}

// NewHandler builds a handler around a scheduler configured from policy
func NewHandler(policy config.Policy, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := policy.Options()
	opts.Logger = logger
	return &Handler{
		Scheduler: scheduler.NewScheduler(opts),
		Policy:    policy,
		Logger:    logger,
	}
}

// solve runs the scheduler and writes the error response when it fails
func (h *Handler) solve(c *gin.Context, runID string, input models.ScheduleInput) (*models.ScheduleResult, bool) {
	res, err := h.Scheduler.Solve(input)
	if err != nil {
		var inputErr *scheduler.InputError
		if errors.As(err, &inputErr) {
			h.Logger.Info("rejected schedule input", zap.String("run_id", runID), zap.Int("problems", len(inputErr.Problems())))
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   scheduler.ErrInvalidInput.Error(),
				"details": inputErr.Problems(),
			})
			return nil, false
		}
		h.Logger.Error("schedule failed", zap.String("run_id", runID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build schedule"})
		return nil, false
	}
	h.Logger.Info("schedule built",
		zap.String("run_id", runID),
		zap.Int("assignments", len(res.Assignments)),
		zap.Int("unassigned", res.UnassignedCount),
	)
	return res, true
}

// ScheduleJSON handles the JSON-based scheduling request
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID := uuid.NewString()
	res, ok := h.solve(c, runID, input)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.ScheduleResponse{RunID: runID, ScheduleResult: res})
}

// ScheduleCSV handles CSV file uploads for scheduling
func (h *Handler) ScheduleCSV(c *gin.Context) {
	workersFile, _ := c.FormFile("workers_file")
	shiftsFile, _ := c.FormFile("shifts_file")
	pinsFile, _ := c.FormFile("pins_file")

	if workersFile == nil || shiftsFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workers_file and shifts_file are required"})
		return
	}

	format := c.DefaultPostForm("format", "assignments")
	if format != "assignments" && format != "matrix" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be assignments or matrix"})
		return
	}

	var input models.ScheduleInput
	if err := readUpload(workersFile, func(f multipart.File) (err error) {
		input.Workers, err = csvio.ReadWorkers(f)
		return err
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := readUpload(shiftsFile, func(f multipart.File) (err error) {
		input.Shifts, err = csvio.ReadShifts(f)
		return err
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if pinsFile != nil {
		if err := readUpload(pinsFile, func(f multipart.File) (err error) {
			input.Pinned, err = csvio.ReadPins(f)
			return err
		}); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	runID := uuid.NewString()
	res, ok := h.solve(c, runID, input)
	if !ok {
		return
	}

	var out bytes.Buffer
	var err error
	if format == "matrix" {
		err = csvio.WriteMatrix(&out, res, input.Workers, input.Shifts, h.Scheduler.Options().Days)
	} else {
		err = csvio.WriteAssignments(&out, res, input.Workers)
	}
	if err != nil {
		h.Logger.Error("csv export failed", zap.String("run_id", runID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not write CSV"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":            runID,
		"csv":               out.String(),
		"unassigned_count":  res.UnassignedCount,
		"validation_errors": res.ValidationErrors,
		"conflicts":         res.Conflicts,
	})
}

func readUpload(fh *multipart.FileHeader, read func(multipart.File) error) error {
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	return read(f)
}

// GetPolicy returns the solver policy in effect
func (h *Handler) GetPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, h.Policy)
}
