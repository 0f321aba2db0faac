package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/babithbhoop/sparklespace/internal/api/dto"
	"github.com/babithbhoop/sparklespace/internal/domain"
	"github.com/babithbhoop/sparklespace/internal/ical"
	"github.com/babithbhoop/sparklespace/internal/sync"
	"github.com/babithbhoop/sparklespace/internal/workflow"
)

// JobHandler handles job-related HTTP requests.
type JobHandler struct {
	logger  *slog.Logger
	coord   *sync.Coordinator
	actions *workflow.Actions
}

// NewJobHandler creates a new JobHandler instance.
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:  deps.Logger,
		coord:   deps.Coordinator,
		actions: deps.Actions,
	}
}

func (h *JobHandler) rate() float64 {
	rate := h.coord.Settings().HourlyRate
	if rate <= 0 {
		rate = domain.DefaultHourlyRate
	}
	return rate
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	job := domain.NewJob()
	job.ClientName = req.ClientName
	job.ClientPhone = req.ClientPhone
	job.ClientEmail = req.ClientEmail
	job.ClientAddress = req.ClientAddress
	job.Notes = req.Notes
	job.PreferredDays = req.PreferredDays
	job.PreferredTimes = req.PreferredTimes
	job.BlockedDays = req.BlockedDays
	if req.PaymentMethod != "" {
		job.PaymentMethod = req.PaymentMethod
	}
	if req.DiscountType != "" {
		job.DiscountType = req.DiscountType
	}
	job.DiscountValue = req.DiscountValue
	if len(req.Spaces) > 0 {
		job.Spaces = spacesFromRequest(nil, req.Spaces)
	}
	job.Normalize(h.rate())

	h.coord.AddJob(job)

	h.logger.Info("Job created",
		slog.String("job_id", job.ID),
		slog.String("client", job.ClientName),
	)
	c.JSON(http.StatusCreated, job)
}

// GetJob handles GET /api/v1/jobs/:job_id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.coord.Job(c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobs handles GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	doc := h.coord.Document()
	jobs := make([]domain.Job, 0, len(doc.Jobs))
	for _, job := range doc.Jobs {
		if req.Status != "" && job.Status != domain.Status(req.Status) {
			continue
		}
		if req.Active != nil && job.Status.Active() != *req.Active {
			continue
		}
		jobs = append(jobs, job)
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// UpdateJob handles PUT /api/v1/jobs/:job_id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rate := h.rate()
	err := h.coord.UpdateJob(c.Param("job_id"), func(j *domain.Job) error {
		if err := applyUpdate(j, &req); err != nil {
			return err
		}
		j.Normalize(rate)
		return nil
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	job, err := h.coord.Job(c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /api/v1/jobs/:job_id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("job_id")
	if err := h.coord.DeleteJob(jobID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.Info("Job deleted", slog.String("job_id", jobID))
	c.Status(http.StatusNoContent)
}

// Action handles the workflow endpoints POST /api/v1/jobs/:job_id/:action
func (h *JobHandler) Action(c *gin.Context) {
	jobID := c.Param("job_id")
	action := c.Param("action")
	ctx := c.Request.Context()

	var err error
	switch action {
	case "send-estimate":
		err = h.actions.SendAssessment(ctx, jobID)
	case "approve-estimate":
		err = h.actions.MarkEstimateApproved(jobID)
	case "send-schedule":
		err = h.actions.SendSchedule(ctx, jobID)
	case "reopen-schedule":
		err = h.actions.ReopenSchedule(jobID)
	case "confirm-schedule":
		err = h.actions.ConfirmSchedule(ctx, jobID)
	case "start-timer":
		err = h.actions.StartTimer(jobID)
	case "stop-timer":
		err = h.actions.StopTimer(jobID)
	case "invoice":
		err = h.actions.GenerateInvoice(jobID)
	case "pay":
		err = h.actions.MarkPaid(jobID)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown action %q", action)})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	job, err := h.coord.Job(jobID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// SetActualHours handles PUT /api/v1/jobs/:job_id/actual-hours
func (h *JobHandler) SetActualHours(c *gin.Context) {
	var req dto.ActualHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.actions.SetActualHours(c.Param("job_id"), req.Hours); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SaveFeedback handles POST /api/v1/jobs/:job_id/feedback
func (h *JobHandler) SaveFeedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.actions.SaveFeedback(c.Param("job_id"), req.Rating, req.Text); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Calendar handles GET /api/v1/jobs/:job_id/calendar.ics
func (h *JobHandler) Calendar(c *gin.Context) {
	job, err := h.coord.Job(c.Param("job_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	filename := fmt.Sprintf("sparklespace-%s.ics", job.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ical.Generate(job)))
}

// Stats handles GET /api/v1/stats
func (h *JobHandler) Stats(c *gin.Context) {
	doc := h.coord.Document()
	var resp dto.StatsResponse
	resp.TotalJobs = len(doc.Jobs)
	for _, job := range doc.Jobs {
		if job.Status.Active() {
			resp.ActiveJobs++
		}
		switch job.Status {
		case domain.StatusCompleted, domain.StatusInvoiced, domain.StatusPaid:
			resp.CompletedJobs++
		}
		if job.Status == domain.StatusPaid && job.FinalAmount != nil {
			resp.PaidRevenue += *job.FinalAmount
		}
		if job.Status == domain.StatusInvoiced && job.InvoiceAmount != nil {
			resp.OutstandingDue += *job.InvoiceAmount
		}
	}
	resp.PaidRevenue = domain.Cents(resp.PaidRevenue)
	resp.OutstandingDue = domain.Cents(resp.OutstandingDue)
	c.JSON(http.StatusOK, resp)
}

// spacesFromRequest builds a job's space list from the request. A request
// entry whose id is already on the job updates that space in place, so
// photos and a standing manual-hours override survive parameter edits;
// other entries become fresh spaces.
func spacesFromRequest(existing []domain.Space, reqs []dto.SpaceRequest) []domain.Space {
	spaces := make([]domain.Space, 0, len(reqs))
	for _, sr := range reqs {
		var sp domain.Space
		kept := false
		if sr.ID != "" {
			for i := range existing {
				if existing[i].ID == sr.ID {
					sp = existing[i]
					kept = true
					break
				}
			}
		}
		if !kept {
			sp = domain.NewSpace()
			if sr.ID != "" {
				sp.ID = sr.ID
			}
		}
		sp.SpaceType = sr.SpaceType
		if sr.Size != "" {
			sp.Size = sr.Size
		}
		if sr.ClutterLevel != "" {
			sp.ClutterLevel = sr.ClutterLevel
		}
		sp.Notes = sr.Notes
		if sr.ManualHours != nil {
			sp.SetManualHours(*sr.ManualHours)
		} else if !sp.Hours.Manual {
			sp.Rederive()
		}
		spaces = append(spaces, sp)
	}
	return spaces
}

func applyUpdate(j *domain.Job, req *dto.UpdateJobRequest) error {
	if req.ClientName != nil {
		j.ClientName = *req.ClientName
	}
	if req.ClientPhone != nil {
		j.ClientPhone = *req.ClientPhone
	}
	if req.ClientEmail != nil {
		j.ClientEmail = *req.ClientEmail
	}
	if req.ClientAddress != nil {
		j.ClientAddress = *req.ClientAddress
	}
	if req.Notes != nil {
		j.Notes = *req.Notes
	}
	if req.Spaces != nil {
		if len(*req.Spaces) == 0 {
			return domain.ErrLastSpace
		}
		j.Spaces = spacesFromRequest(j.Spaces, *req.Spaces)
	}
	if req.PreferredDays != nil {
		j.PreferredDays = *req.PreferredDays
	}
	if req.PreferredTimes != nil {
		j.PreferredTimes = *req.PreferredTimes
	}
	if req.BlockedDays != nil {
		j.BlockedDays = *req.BlockedDays
	}
	if req.ScheduleDays != nil {
		days := make([]domain.ScheduleDay, 0, len(*req.ScheduleDays))
		for _, dr := range *req.ScheduleDays {
			day := domain.ScheduleDay{
				ID:        dr.ID,
				Date:      dr.Date,
				StartTime: dr.StartTime,
				Hours:     dr.Hours,
			}
			if day.ID == "" {
				day.ID = uuid.New().String()
			}
			if day.StartTime == "" {
				day.StartTime = "09:00"
			}
			days = append(days, day)
		}
		j.ScheduleDays = days
	}
	if req.PaymentMethod != nil {
		j.PaymentMethod = *req.PaymentMethod
	}
	if req.DiscountType != nil {
		j.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		j.DiscountValue = *req.DiscountValue
	}
	return nil
}
