package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"todo-list-api/internal/core/auth"
	"todo-list-api/internal/transport/http/handler"
	mdw "todo-list-api/internal/transport/http/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Task     *handler.TaskHandler
	Jobs     *handler.JobsHandler
}

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, h Handlers) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公共：注册 / 登录
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// 其余全部要求 Bearer token
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter))

	authed.GET("/auth/profile", h.Auth.Profile)

	authed.GET("/categories", h.Category.List)
	authed.GET("/categories/:id", h.Category.GetByID)
	authed.POST("/categories", h.Category.Create)
	authed.PUT("/categories/:id", h.Category.Update)
	authed.DELETE("/categories/:id", h.Category.Delete)

	// /tasks/paged 和 /tasks/overdue/count 是静态路由，优先于 /tasks/:id 匹配
	authed.GET("/tasks", h.Task.List)
	authed.GET("/tasks/paged", h.Task.ListPaged)
	authed.GET("/tasks/overdue/count", h.Task.OverdueCount)
	authed.GET("/tasks/:id", h.Task.GetByID)
	authed.POST("/tasks", h.Task.Create)
	authed.PUT("/tasks/:id", h.Task.Update)
	authed.DELETE("/tasks/:id", h.Task.Delete)

	authed.POST("/jobs/trigger-overdue-reminders", h.Jobs.TriggerOverdueReminders)
	authed.POST("/jobs/trigger-cleanup", h.Jobs.TriggerCleanup)
	authed.POST("/jobs/schedule-reminder", h.Jobs.ScheduleReminder)
	authed.GET("/jobs/runs/:id", h.Jobs.GetRun)

	return r
}
