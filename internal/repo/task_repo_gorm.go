package repo

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"todo-list-api/internal/domain"
)

type TaskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) *TaskRepo { return &TaskRepo{db: db} }

// 排序键白名单，键按小写匹配；不认识的键回落到 created_at DESC。
var taskSortColumns = map[string]string{
	"title":     "title",
	"duedate":   "due_date",
	"priority":  "priority",
	"status":    "status",
	"createdat": "created_at",
}

func (r *TaskRepo) FindByID(id, userID string) (*domain.TodoTask, error) {
	var t domain.TodoTask
	err := r.db.First(&t, "id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *TaskRepo) scoped(userID string, f domain.TaskFilter) *gorm.DB {
	q := r.db.Model(&domain.TodoTask{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}

func (r *TaskRepo) ListByUser(userID string, f domain.TaskFilter) ([]domain.TodoTask, error) {
	var tasks []domain.TodoTask
	err := r.scoped(userID, f).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepo) ListPaged(userID string, f domain.TaskFilter, p domain.TaskPage) ([]domain.TodoTask, int64, error) {
	q := r.scoped(userID, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if col, ok := taskSortColumns[strings.ToLower(p.SortBy)]; ok {
		dir := "ASC"
		if p.SortDescending {
			dir = "DESC"
		}
		q = q.Order(col + " " + dir)
	} else {
		q = q.Order("created_at DESC")
	}

	var tasks []domain.TodoTask
	err := q.Offset((p.PageNumber - 1) * p.PageSize).Limit(p.PageSize).Find(&tasks).Error
	return tasks, total, err
}

func (r *TaskRepo) Create(t *domain.TodoTask) error { return r.db.Create(t).Error }

func (r *TaskRepo) Update(t *domain.TodoTask) error { return r.db.Save(t).Error }

func (r *TaskRepo) SoftDelete(id, userID string) error {
	now := time.Now().UTC()
	return r.db.Model(&domain.TodoTask{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": now}).Error
}

// CountOverdue 只排除 Completed。Cancelled 仍计入（与提醒任务口径不同，
// 保持线上口径不动）。today 为 UTC 当日零点，比较是严格小于。
func (r *TaskRepo) CountOverdue(userID string, today time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&domain.TodoTask{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Where("status <> ?", domain.StatusCompleted).
		Where("due_date IS NOT NULL AND due_date < ?", today).
		Count(&n).Error
	return n, err
}

// ListOverdueWithOwner 提醒任务专用：排除 Completed 和 Cancelled，连属主邮箱。
func (r *TaskRepo) ListOverdueWithOwner(today time.Time) ([]domain.OverdueTask, error) {
	var rows []domain.OverdueTask
	err := r.db.Table("todo_tasks").
		Select("todo_tasks.*, users.email AS owner_email").
		Joins("JOIN users ON users.id = todo_tasks.user_id").
		Where("todo_tasks.is_deleted = ?", false).
		Where("todo_tasks.status NOT IN ?", []domain.TaskStatus{domain.StatusCompleted, domain.StatusCancelled}).
		Where("todo_tasks.due_date IS NOT NULL AND todo_tasks.due_date < ?", today).
		Scan(&rows).Error
	return rows, err
}

func (r *TaskRepo) ClearOrphanedCategories() (int64, error) {
	res := r.db.Model(&domain.TodoTask{}).
		Where("category_id IS NOT NULL AND category_id NOT IN (?)",
			r.db.Model(&domain.Category{}).Select("id")).
		Update("category_id", nil)
	return res.RowsAffected, res.Error
}

func (r *TaskRepo) PurgeDeletedBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("is_deleted = ? AND deleted_at IS NOT NULL AND deleted_at < ?", true, cutoff).
		Delete(&domain.TodoTask{})
	return res.RowsAffected, res.Error
}
