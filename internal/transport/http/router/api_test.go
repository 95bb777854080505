package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todo-list-api/internal/core/auth"
	"todo-list-api/internal/jobs"
	"todo-list-api/internal/repo"
	"todo-list-api/internal/service"
	"todo-list-api/internal/testutil"
	"todo-list-api/internal/transport/http/handler"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	db := testutil.OpenDB(t)

	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	userRepo := repo.NewUserRepo(db)
	catRepo := repo.NewCategoryRepo(db)
	taskRepo := repo.NewTaskRepo(db)

	maint := jobs.NewMaintenance(userRepo, catRepo, taskRepo, 30, log)
	runner := jobs.NewRunner(maint, nil, log)

	return NewAPIEngine(log, jwter, Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(userRepo, jwter), log),
		Category: handler.NewCategoryHandler(service.NewCategoryService(catRepo), log),
		Task:     handler.NewTaskHandler(service.NewTaskService(taskRepo, catRepo), log),
		Jobs:     handler.NewJobsHandler(runner, nil, log),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":                email,
		"password":             "hunter2hunter2",
		"passwordConfirmation": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestAuthFlow(t *testing.T) {
	r := newTestEngine(t)
	token := register(t, r, "flow@example.com")

	// 重复注册 400
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":                "flow@example.com",
		"password":             "hunter2hunter2",
		"passwordConfirmation": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 错密码 401
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "flow@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 正确登录 200
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "flow@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// profile 带 token 200，不带 401
	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCategoryAndTaskEndpoints(t *testing.T) {
	r := newTestEngine(t)
	token := register(t, r, "crud@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/categories", token, gin.H{
		"name": "Shopping", "color": "#5733FF",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cat struct {
		ID        string `json:"id"`
		TaskCount int64  `json:"taskCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))
	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, int64(0), cat.TaskCount)

	// 挂在不存在的分类上 → 404
	w = doJSON(t, r, http.MethodPost, "/api/v1/tasks", token, gin.H{
		"title": "x", "categoryId": "missing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/tasks", token, gin.H{
		"title": "buy milk", "categoryId": cat.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task struct {
		ID           string  `json:"id"`
		CategoryName *string `json:"categoryName"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	require.NotNil(t, task.CategoryName)
	assert.Equal(t, "Shopping", *task.CategoryName)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks/paged?pageNumber=1&pageSize=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var paged struct {
		TotalCount int64 `json:"totalCount"`
		TotalPages int64 `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paged))
	assert.Equal(t, int64(1), paged.TotalCount)
	assert.Equal(t, int64(1), paged.TotalPages)

	// 删除幂等：第一次 204，第二次也 204
	w = doJSON(t, r, http.MethodDelete, "/api/v1/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/v1/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks/overdue/count", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, int64(0), count.Count)
}

func TestJobTriggerEndpoints(t *testing.T) {
	r := newTestEngine(t)
	token := register(t, r, "jobs@example.com")

	// 未登录 401
	w := doJSON(t, r, http.MethodPost, "/api/v1/jobs/trigger-cleanup", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/jobs/trigger-overdue-reminders", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Message string `json:"message"`
		JobID   string `json:"jobId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out.JobID)

	w = doJSON(t, r, http.MethodPost, "/api/v1/jobs/schedule-reminder?delayMinutes=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/jobs/schedule-reminder?delayMinutes=bad", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 测试环境没接 Redis，查询运行记录返回 503
	w = doJSON(t, r, http.MethodGet, "/api/v1/jobs/runs/"+out.JobID, token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
