package jobs

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler 包一层 robfig/cron。排程时区固定传入（这里用 UTC）。
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(loc *time.Location, std *log.Logger) *Scheduler {
	opts := []cron.Option{cron.WithLocation(loc)}
	if std != nil {
		opts = append(opts, cron.WithLogger(cron.PrintfLogger(std)))
	}
	return &Scheduler{cron: cron.New(opts...)}
}

// ScheduleDaily 每天 HH:MM 执行。
func (s *Scheduler) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

// ScheduleCron 直接挂 cron 表达式（分 时 日 月 周）。
func (s *Scheduler) ScheduleCron(spec string, job func()) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, job)
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop 等在跑的任务收尾。
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
