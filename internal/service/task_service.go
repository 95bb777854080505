package service

import (
	"time"

	"todo-list-api/internal/domain"
	"todo-list-api/pkg/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type TaskService struct {
	tasks      domain.TodoTaskRepository
	categories domain.CategoryRepository
}

func NewTaskService(tasks domain.TodoTaskRepository, categories domain.CategoryRepository) *TaskService {
	return &TaskService{tasks: tasks, categories: categories}
}

func (s *TaskService) GetByID(id, userID string) (*TaskDTO, error) {
	t, err := s.tasks.FindByID(id, userID)
	if err != nil || t == nil {
		return nil, err
	}
	return s.mapOne(t, userID)
}

func (s *TaskService) List(userID string, f domain.TaskFilter) ([]TaskDTO, error) {
	tasks, err := s.tasks.ListByUser(userID, f)
	if err != nil {
		return nil, err
	}
	return s.mapMany(tasks, userID)
}

// ListPaged 对分页参数做钳制而不是报错：页码 <1 取 1，页大小取 1..100，缺省 10。
func (s *TaskService) ListPaged(userID string, f domain.TaskFilter, p domain.TaskPage) (*PagedResult[TaskDTO], error) {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}

	tasks, total, err := s.tasks.ListPaged(userID, f, p)
	if err != nil {
		return nil, err
	}
	items, err := s.mapMany(tasks, userID)
	if err != nil {
		return nil, err
	}
	return &PagedResult[TaskDTO]{
		Items:      items,
		TotalCount: total,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalPages: totalPages(total, p.PageSize),
	}, nil
}

func (s *TaskService) Create(in TaskCreateInput, userID string) (*TaskDTO, error) {
	if !in.Priority.Valid() {
		return nil, Validationf("Invalid priority value")
	}
	if in.DueDate != nil && in.DueDate.Before(startOfDayUTC(time.Now())) {
		return nil, Validationf("Due date cannot be in the past")
	}
	if in.CategoryID != nil {
		if err := s.requireCategory(*in.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	t := &domain.TodoTask{
		ID:          utils.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusPending,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		UserID:      userID,
		CategoryID:  in.CategoryID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.Create(t); err != nil {
		return nil, err
	}
	return s.mapOne(t, userID)
}

// Update 整体替换所有可编辑字段。completedAt 跟随状态：
// 非 Completed → Completed 时打点，目标状态非 Completed 时一律清空。
func (s *TaskService) Update(id string, in TaskUpdateInput, userID string) (*TaskDTO, error) {
	t, err := s.tasks.FindByID(id, userID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NotFoundf("Task with ID %s not found", id)
	}
	if !in.Status.Valid() {
		return nil, Validationf("Invalid status value")
	}
	if !in.Priority.Valid() {
		return nil, Validationf("Invalid priority value")
	}
	if in.CategoryID != nil {
		if err := s.requireCategory(*in.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	previous := t.Status
	now := time.Now().UTC()

	t.Title = in.Title
	t.Description = in.Description
	t.Status = in.Status
	t.Priority = in.Priority
	t.DueDate = in.DueDate
	t.CategoryID = in.CategoryID
	t.UpdatedAt = &now

	if previous != domain.StatusCompleted && in.Status == domain.StatusCompleted {
		t.CompletedAt = &now
	} else if in.Status != domain.StatusCompleted {
		t.CompletedAt = nil
	}

	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}
	return s.mapOne(t, userID)
}

func (s *TaskService) Delete(id, userID string) error {
	return s.tasks.SoftDelete(id, userID)
}

func (s *TaskService) OverdueCount(userID string) (int64, error) {
	return s.tasks.CountOverdue(userID, startOfDayUTC(time.Now()))
}

func (s *TaskService) requireCategory(categoryID, userID string) error {
	ok, err := s.categories.Exists(categoryID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return NotFoundf("Category with ID %s not found", categoryID)
	}
	return nil
}

func (s *TaskService) mapOne(t *domain.TodoTask, userID string) (*TaskDTO, error) {
	var name *string
	if t.CategoryID != nil {
		c, err := s.categories.FindByID(*t.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			name = &c.Name
		}
	}
	dto := mapTask(t, name)
	return &dto, nil
}

// mapMany 一次取全分类名，避免逐条回查。
func (s *TaskService) mapMany(tasks []domain.TodoTask, userID string) ([]TaskDTO, error) {
	names := map[string]string{}
	cats, err := s.categories.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range cats {
		names[cats[i].ID] = cats[i].Name
	}

	out := make([]TaskDTO, 0, len(tasks))
	for i := range tasks {
		var name *string
		if tasks[i].CategoryID != nil {
			if n, ok := names[*tasks[i].CategoryID]; ok {
				name = &n
			}
		}
		out = append(out, mapTask(&tasks[i], name))
	}
	return out, nil
}

func mapTask(t *domain.TodoTask, categoryName *string) TaskDTO {
	return TaskDTO{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		DueDate:      t.DueDate,
		CompletedAt:  t.CompletedAt,
		CategoryID:   t.CategoryID,
		CategoryName: categoryName,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func startOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
