package repo

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"todo-list-api/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// 邮箱统一小写入库，查询同样先归一化。
func (r *UserRepo) Create(u *domain.User) error {
	u.Email = strings.ToLower(u.Email)
	return r.db.Create(u).Error
}

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ? AND is_deleted = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ? AND is_deleted = ?", strings.ToLower(email), false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) EmailExists(email string) (bool, error) {
	var n int64
	err := r.db.Model(&domain.User{}).
		Where("email = ? AND is_deleted = ?", strings.ToLower(email), false).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepo) Update(u *domain.User) error {
	now := time.Now().UTC()
	u.UpdatedAt = &now
	return r.db.Save(u).Error
}

func (r *UserRepo) PurgeDeletedBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("is_deleted = ? AND deleted_at IS NOT NULL AND deleted_at < ?", true, cutoff).
		Delete(&domain.User{})
	return res.RowsAffected, res.Error
}
