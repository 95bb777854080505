package domain

import "time"

// 状态/优先级与对外 API 一致，按整数编码。
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

func (s TaskStatus) Valid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

func (s TaskStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "InProgress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

type TaskPriority int

const (
	PriorityLow TaskPriority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func (p TaskPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

func (p TaskPriority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return "Unknown"
}

type TodoTask struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description *string      `gorm:"size:2000" json:"description,omitempty"`
	Status      TaskStatus   `gorm:"not null;default:0" json:"status"`
	Priority    TaskPriority `gorm:"not null;default:1" json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	UserID      string       `gorm:"index;size:36;not null" json:"userId"`
	CategoryID  *string      `gorm:"index;size:36" json:"categoryId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
	IsDeleted   bool         `gorm:"index;not null;default:false" json:"-"`
	DeletedAt   *time.Time   `json:"-"`
}

func (TodoTask) TableName() string { return "todo_tasks" }

// TaskFilter 的两个可选等值过滤；nil 表示不过滤。
type TaskFilter struct {
	Status     *TaskStatus
	CategoryID *string
}

type TaskPage struct {
	PageNumber     int
	PageSize       int
	SortBy         string
	SortDescending bool
}

// OverdueTask 提醒任务行，连带属主邮箱。
type OverdueTask struct {
	TodoTask
	OwnerEmail string
}

type TodoTaskRepository interface {
	FindByID(id, userID string) (*TodoTask, error)
	ListByUser(userID string, f TaskFilter) ([]TodoTask, error)
	ListPaged(userID string, f TaskFilter, p TaskPage) ([]TodoTask, int64, error)
	Create(t *TodoTask) error
	Update(t *TodoTask) error
	SoftDelete(id, userID string) error
	// CountOverdue 只排除 Completed（历史行为，Cancelled 仍计入）。
	CountOverdue(userID string, today time.Time) (int64, error)
	// ListOverdueWithOwner 供提醒任务使用，额外排除 Cancelled。
	ListOverdueWithOwner(today time.Time) ([]OverdueTask, error)
	// ClearOrphanedCategories 把指向已物理删除分类的 category_id 置空。
	ClearOrphanedCategories() (int64, error)
	PurgeDeletedBefore(cutoff time.Time) (int64, error)
}
