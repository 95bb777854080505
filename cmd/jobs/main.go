package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"todo-list-api/internal/core/config"
	"todo-list-api/internal/core/database"
	"todo-list-api/internal/core/logger"
	"todo-list-api/internal/jobs"
	"todo-list-api/internal/repo"
)

// 维护任务的命令行入口：与 HTTP 触发端点等价，适合 crontab / 一次性手动执行。
func main() {
	root := &cobra.Command{
		Use:   "jobs",
		Short: "Run a maintenance job once and exit",
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "reminders",
			Short: "Log a reminder line for every overdue task",
			RunE:  func(*cobra.Command, []string) error { return run(jobs.JobOverdueReminders) },
		},
		&cobra.Command{
			Use:   "cleanup",
			Short: "Hard-delete soft-deleted rows past the retention window",
			RunE:  func(*cobra.Command, []string) error { return run(jobs.JobCleanup) },
		},
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(job string) error {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Error("db open", zap.Error(err))
		return err
	}

	maint := jobs.NewMaintenance(
		repo.NewUserRepo(db),
		repo.NewCategoryRepo(db),
		repo.NewTaskRepo(db),
		cfg.Jobs.RetentionDays,
		log,
	)
	// CLI 不记 Redis 运行记录，直接同步跑
	runner := jobs.NewRunner(maint, nil, log)
	return runner.Run(job)
}
