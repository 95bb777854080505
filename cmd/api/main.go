package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"todo-list-api/internal/core/auth"
	"todo-list-api/internal/core/config"
	"todo-list-api/internal/core/database"
	"todo-list-api/internal/core/logger"
	"todo-list-api/internal/core/server"
	"todo-list-api/internal/domain"
	"todo-list-api/internal/jobs"
	"todo-list-api/internal/repo"
	"todo-list-api/internal/service"
	"todo-list-api/internal/transport/http/handler"
	"todo-list-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.TodoTask{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// 仓储 + 服务
	userRepo := repo.NewUserRepo(db)
	categoryRepo := repo.NewCategoryRepo(db)
	taskRepo := repo.NewTaskRepo(db)

	authSvc := service.NewAuthService(userRepo, jwter)
	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)

	// 维护任务 + 排程
	maint := jobs.NewMaintenance(userRepo, categoryRepo, taskRepo, cfg.Jobs.RetentionDays, log)
	store := jobs.NewRunStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() { _ = store.Close() }()
	runner := jobs.NewRunner(maint, store, log)

	var sched *jobs.Scheduler
	if cfg.Jobs.Enabled {
		std, _ := logger.ToStdLogger(log, zapcore.InfoLevel)
		sched = jobs.NewScheduler(time.UTC, std)
		if _, err := sched.ScheduleDaily(cfg.Jobs.ReminderTime, func() { _ = runner.Run(jobs.JobOverdueReminders) }); err != nil {
			log.Fatal("schedule reminders", zap.Error(err))
		}
		if _, err := sched.ScheduleCron(cfg.Jobs.CleanupCron, func() { _ = runner.Run(jobs.JobCleanup) }); err != nil {
			log.Fatal("schedule cleanup", zap.Error(err))
		}
		sched.Start()
		log.Info("job scheduler started",
			zap.String("reminder_time", cfg.Jobs.ReminderTime),
			zap.String("cleanup_cron", cfg.Jobs.CleanupCron),
		)
	}

	// 路由
	r := router.NewAPIEngine(log, jwter, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, log),
		Category: handler.NewCategoryHandler(categorySvc, log),
		Task:     handler.NewTaskHandler(taskSvc, log),
		Jobs:     handler.NewJobsHandler(runner, store, log),
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("todo api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("todo api start FAILED", zap.Error(err))
		}
	}()
	log.Info("todo api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	if sched != nil {
		sched.Stop()
	}
	log.Info("todo api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
