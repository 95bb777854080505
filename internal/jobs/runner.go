package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"todo-list-api/pkg/utils"
)

const (
	JobOverdueReminders = "overdue-reminders"
	JobCleanup          = "cleanup-soft-deleted"
)

// Runner 按名字执行任务，并把运行记录写进 RunStore（可为 nil，降级为只跑不记）。
type Runner struct {
	m     *Maintenance
	store *RunStore
	log   *zap.Logger
}

func NewRunner(m *Maintenance, store *RunStore, log *zap.Logger) *Runner {
	return &Runner{m: m, store: store, log: log}
}

func (r *Runner) handler(name string) (func() error, error) {
	switch name {
	case JobOverdueReminders:
		return r.m.SendOverdueReminders, nil
	case JobCleanup:
		return r.m.CleanupSoftDeleted, nil
	}
	return nil, fmt.Errorf("unknown job %q", name)
}

// Enqueue 异步执行一次，立即返回运行 id。
func (r *Runner) Enqueue(name string) (string, error) {
	h, err := r.handler(name)
	if err != nil {
		return "", err
	}
	id := utils.NewID()
	go r.execute(id, name, h)
	return id, nil
}

// Schedule 延迟 delay 后执行一次。
func (r *Runner) Schedule(name string, delay time.Duration) (string, error) {
	h, err := r.handler(name)
	if err != nil {
		return "", err
	}
	id := utils.NewID()
	r.record(RunRecord{ID: id, Job: name, Status: RunStatusScheduled, StartedAt: time.Now().UTC().Add(delay)})
	time.AfterFunc(delay, func() { r.execute(id, name, h) })
	return id, nil
}

// Run 同步执行（cron 和 CLI 走这里），错误原样上抛给调用方记失败。
func (r *Runner) Run(name string) error {
	h, err := r.handler(name)
	if err != nil {
		return err
	}
	return h()
}

func (r *Runner) execute(id, name string, h func() error) {
	started := time.Now().UTC()
	r.record(RunRecord{ID: id, Job: name, Status: RunStatusRunning, StartedAt: started})

	err := h()

	finished := time.Now().UTC()
	rec := RunRecord{ID: id, Job: name, Status: RunStatusSucceeded, StartedAt: started, FinishedAt: &finished}
	if err != nil {
		rec.Status = RunStatusFailed
		rec.Error = err.Error()
		r.log.Error("job run failed", zap.String("job", name), zap.String("run_id", id), zap.Error(err))
	}
	r.record(rec)
}

func (r *Runner) record(rec RunRecord) {
	if r.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := r.store.Save(ctx, rec); err != nil {
		// 记录失败不影响任务本身
		r.log.Warn("save job run record failed", zap.String("run_id", rec.ID), zap.Error(err))
	}
}
