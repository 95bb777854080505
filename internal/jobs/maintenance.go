package jobs

import (
	"time"

	"go.uber.org/zap"

	"todo-list-api/internal/domain"
)

// Maintenance 两个定时维护任务。无自身状态，直接读写仓储。
type Maintenance struct {
	users         domain.UserRepository
	categories    domain.CategoryRepository
	tasks         domain.TodoTaskRepository
	retentionDays int
	log           *zap.Logger
}

func NewMaintenance(
	users domain.UserRepository,
	categories domain.CategoryRepository,
	tasks domain.TodoTaskRepository,
	retentionDays int,
	log *zap.Logger,
) *Maintenance {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Maintenance{
		users:         users,
		categories:    categories,
		tasks:         tasks,
		retentionDays: retentionDays,
		log:           log,
	}
}

// SendOverdueReminders 每个逾期任务打一行日志，不做真实投递。
// 口径：未软删、状态不在 {Completed, Cancelled}、到期日（UTC 日历日）严格早于今天。
func (m *Maintenance) SendOverdueReminders() error {
	m.log.Info("starting overdue task reminders job", zap.Time("at", time.Now().UTC()))

	overdue, err := m.tasks.ListOverdueWithOwner(startOfDayUTC(time.Now()))
	if err != nil {
		m.log.Error("overdue reminders job failed", zap.Error(err))
		return err
	}
	m.log.Info("found overdue tasks", zap.Int("count", len(overdue)))

	for i := range overdue {
		t := &overdue[i]
		m.log.Info("reminder: task is overdue",
			zap.String("title", t.Title),
			zap.String("task_id", t.ID),
			zap.String("email", t.OwnerEmail),
			zap.Timep("due_date", t.DueDate),
		)
	}

	m.log.Info("completed overdue task reminders job")
	return nil
}

// CleanupSoftDeleted 物理清除软删超过保留期的行，三张表各自独立删。
func (m *Maintenance) CleanupSoftDeleted() error {
	m.log.Info("starting cleanup of soft-deleted records", zap.Time("at", time.Now().UTC()))
	cutoff := time.Now().UTC().AddDate(0, 0, -m.retentionDays)

	users, err := m.users.PurgeDeletedBefore(cutoff)
	if err != nil {
		m.log.Error("cleanup job failed purging users", zap.Error(err))
		return err
	}
	if users > 0 {
		m.log.Info("permanently deleted users", zap.Int64("count", users))
	}

	categories, err := m.categories.PurgeDeletedBefore(cutoff)
	if err != nil {
		m.log.Error("cleanup job failed purging categories", zap.Error(err))
		return err
	}
	if categories > 0 {
		m.log.Info("permanently deleted categories", zap.Int64("count", categories))
	}

	tasks, err := m.tasks.PurgeDeletedBefore(cutoff)
	if err != nil {
		m.log.Error("cleanup job failed purging tasks", zap.Error(err))
		return err
	}
	if tasks > 0 {
		m.log.Info("permanently deleted tasks", zap.Int64("count", tasks))
	}

	// 分类被物理删除后，指向它的任务外键置空。
	if categories > 0 {
		cleared, err := m.tasks.ClearOrphanedCategories()
		if err != nil {
			m.log.Error("cleanup job failed clearing orphaned categories", zap.Error(err))
			return err
		}
		if cleared > 0 {
			m.log.Info("cleared orphaned category references", zap.Int64("count", cleared))
		}
	}

	m.log.Info("completed cleanup of soft-deleted records")
	return nil
}

func startOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
