package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-list-api/internal/jobs"
	resp "todo-list-api/internal/transport/http/response"
)

// JobsHandler 手动触发维护任务的入口，全部要求登录。
type JobsHandler struct {
	runner *jobs.Runner
	store  *jobs.RunStore
	log    *zap.Logger
}

func NewJobsHandler(runner *jobs.Runner, store *jobs.RunStore, log *zap.Logger) *JobsHandler {
	return &JobsHandler{runner: runner, store: store, log: log}
}

// POST /jobs/trigger-overdue-reminders
func (h *JobsHandler) TriggerOverdueReminders(c *gin.Context) {
	h.trigger(c, jobs.JobOverdueReminders, "Overdue reminders job triggered")
}

// POST /jobs/trigger-cleanup
func (h *JobsHandler) TriggerCleanup(c *gin.Context) {
	h.trigger(c, jobs.JobCleanup, "Cleanup job triggered")
}

// POST /jobs/schedule-reminder?delayMinutes=5
func (h *JobsHandler) ScheduleReminder(c *gin.Context) {
	delayMinutes := 5
	if raw := c.Query("delayMinutes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			resp.Err(c, http.StatusBadRequest, "invalid delayMinutes")
			return
		}
		delayMinutes = n
	}
	jobID, err := h.runner.Schedule(jobs.JobOverdueReminders, time.Duration(delayMinutes)*time.Minute)
	if err != nil {
		h.log.Error("schedule reminder failed", zap.Error(err))
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Reminder scheduled in %d minutes", delayMinutes),
		"jobId":   jobID,
	})
}

// GET /jobs/runs/:id
func (h *JobsHandler) GetRun(c *gin.Context) {
	if h.store == nil {
		resp.Err(c, http.StatusServiceUnavailable, "job run store not configured")
		return
	}
	rec, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("get job run failed", zap.Error(err))
		resp.Fail(c, err)
		return
	}
	if rec == nil {
		resp.Err(c, http.StatusNotFound, "Job run not found")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *JobsHandler) trigger(c *gin.Context, job, message string) {
	jobID, err := h.runner.Enqueue(job)
	if err != nil {
		h.log.Error("trigger job failed", zap.String("job", job), zap.Error(err))
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "jobId": jobID})
}
