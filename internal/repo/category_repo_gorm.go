package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"todo-list-api/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// 全部查询都带 (user_id, is_deleted) 限定：别人的分类等同不存在。

func (r *CategoryRepo) FindByID(id, userID string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.First(&c, "id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CategoryRepo) ListByUser(userID string) ([]domain.CategoryWithCount, error) {
	taskCount := r.db.Model(&domain.TodoTask{}).
		Select("COUNT(*)").
		Where("todo_tasks.category_id = categories.id AND todo_tasks.is_deleted = ?", false)

	var rows []domain.CategoryWithCount
	err := r.db.Table("categories").
		Select("categories.*, (?) AS task_count", taskCount).
		Where("categories.user_id = ? AND categories.is_deleted = ?", userID, false).
		Order("categories.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *CategoryRepo) Exists(id, userID string) (bool, error) {
	var n int64
	err := r.db.Model(&domain.Category{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		Count(&n).Error
	return n > 0, err
}

func (r *CategoryRepo) CountTasks(id string) (int64, error) {
	var n int64
	err := r.db.Model(&domain.TodoTask{}).
		Where("category_id = ? AND is_deleted = ?", id, false).
		Count(&n).Error
	return n, err
}

func (r *CategoryRepo) Create(c *domain.Category) error { return r.db.Create(c).Error }

func (r *CategoryRepo) Update(c *domain.Category) error { return r.db.Save(c).Error }

// SoftDelete 幂等：目标不存在时静默返回。
func (r *CategoryRepo) SoftDelete(id, userID string) error {
	now := time.Now().UTC()
	return r.db.Model(&domain.Category{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": now}).Error
}

func (r *CategoryRepo) PurgeDeletedBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("is_deleted = ? AND deleted_at IS NOT NULL AND deleted_at < ?", true, cutoff).
		Delete(&domain.Category{})
	return res.RowsAffected, res.Error
}
