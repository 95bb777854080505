package domain

import "time"

type Category struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description *string    `gorm:"size:500" json:"description,omitempty"`
	Color       string     `gorm:"size:7;not null;default:#000000" json:"color"`
	UserID      string     `gorm:"index;size:36;not null" json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	IsDeleted   bool       `gorm:"index;not null;default:false" json:"-"`
	DeletedAt   *time.Time `json:"-"`
}

func (Category) TableName() string { return "categories" }

// CategoryWithCount 附带该分类下未软删任务的数量（列表页展示用）。
type CategoryWithCount struct {
	Category
	TaskCount int64 `json:"taskCount"`
}

// 所有读写都按 (id, userId) 双条件限定：非属主视角下分类不存在。
type CategoryRepository interface {
	FindByID(id, userID string) (*Category, error)
	ListByUser(userID string) ([]CategoryWithCount, error)
	Exists(id, userID string) (bool, error)
	CountTasks(id string) (int64, error)
	Create(c *Category) error
	Update(c *Category) error
	SoftDelete(id, userID string) error
	PurgeDeletedBefore(cutoff time.Time) (int64, error)
}
