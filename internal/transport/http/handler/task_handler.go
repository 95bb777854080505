package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-list-api/internal/domain"
	"todo-list-api/internal/service"
	mdw "todo-list-api/internal/transport/http/middleware"
	resp "todo-list-api/internal/transport/http/response"
)

type TaskHandler struct {
	svc *service.TaskService
	log *zap.Logger
}

func NewTaskHandler(svc *service.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// status 按整数编码过滤（Pending=0, InProgress=1, Completed=2, Cancelled=3）。
func taskFilter(c *gin.Context) (domain.TaskFilter, bool) {
	var f domain.TaskFilter
	if raw := c.Query("status"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !domain.TaskStatus(n).Valid() {
			resp.Err(c, http.StatusBadRequest, "invalid status value")
			return f, false
		}
		st := domain.TaskStatus(n)
		f.Status = &st
	}
	if raw := c.Query("categoryId"); raw != "" {
		f.CategoryID = &raw
	}
	return f, true
}

// GET /tasks?status&categoryId
func (h *TaskHandler) List(c *gin.Context) {
	f, ok := taskFilter(c)
	if !ok {
		return
	}
	out, err := h.svc.List(c.GetString(mdw.KeyUserID), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /tasks/paged?pageNumber&pageSize&status&categoryId&sortBy&sortDescending
func (h *TaskHandler) ListPaged(c *gin.Context) {
	f, ok := taskFilter(c)
	if !ok {
		return
	}
	var q struct {
		PageNumber     int    `form:"pageNumber,default=1"`
		PageSize       int    `form:"pageSize,default=10"`
		SortBy         string `form:"sortBy"`
		SortDescending bool   `form:"sortDescending"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.ListPaged(c.GetString(mdw.KeyUserID), f, domain.TaskPage{
		PageNumber:     q.PageNumber,
		PageSize:       q.PageSize,
		SortBy:         q.SortBy,
		SortDescending: q.SortDescending,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	out, err := h.svc.GetByID(c.Param("id"), c.GetString(mdw.KeyUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	if out == nil {
		resp.Err(c, http.StatusNotFound, "Task not found")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /tasks/overdue/count
func (h *TaskHandler) OverdueCount(c *gin.Context) {
	count, err := h.svc.OverdueCount(c.GetString(mdw.KeyUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var in service.TaskCreateInput
	in.Priority = domain.PriorityMedium
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Create(in, c.GetString(mdw.KeyUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var in service.TaskUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Update(c.Param("id"), in, c.GetString(mdw.KeyUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /tasks/:id — 幂等
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), c.GetString(mdw.KeyUserID)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) fail(c *gin.Context, err error) {
	if status, _ := resp.StatusOf(err); status == http.StatusInternalServerError {
		h.log.Error("task op failed", zap.Error(err), zap.String("rid", c.GetString(mdw.KeyRequestID)))
	}
	resp.Fail(c, err)
}
