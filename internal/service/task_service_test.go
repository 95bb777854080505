package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todo-list-api/internal/domain"
	"todo-list-api/internal/repo"
	"todo-list-api/internal/testutil"
)

func newTaskService(t *testing.T) (*TaskService, *CategoryService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	catRepo := repo.NewCategoryRepo(db)
	return NewTaskService(repo.NewTaskRepo(db), catRepo), NewCategoryService(catRepo), db
}

func mustCreateTask(t *testing.T, s *TaskService, userID, title string) *TaskDTO {
	t.Helper()
	out, err := s.Create(TaskCreateInput{Title: title, Priority: domain.PriorityMedium}, userID)
	require.NoError(t, err)
	return out
}

func updateFrom(dto *TaskDTO) TaskUpdateInput {
	return TaskUpdateInput{
		Title:       dto.Title,
		Description: dto.Description,
		Status:      dto.Status,
		Priority:    dto.Priority,
		DueDate:     dto.DueDate,
		CategoryID:  dto.CategoryID,
	}
}

func TestTaskCreateDefaults(t *testing.T) {
	s, _, _ := newTaskService(t)

	out := mustCreateTask(t, s, "u1", "first")
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, domain.StatusPending, out.Status)
	assert.Nil(t, out.CompletedAt)
	assert.Nil(t, out.CategoryID)
}

func TestTaskCreateRejectsPastDueDate(t *testing.T) {
	s, _, _ := newTaskService(t)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	_, err := s.Create(TaskCreateInput{Title: "late", Priority: domain.PriorityLow, DueDate: &yesterday}, "u1")
	assert.True(t, IsValidation(err))
}

func TestTaskCreateUnknownCategoryNoWrite(t *testing.T) {
	s, _, db := newTaskService(t)

	catID := "missing-category"
	_, err := s.Create(TaskCreateInput{Title: "x", Priority: domain.PriorityMedium, CategoryID: &catID}, "u1")
	assert.True(t, IsNotFound(err))

	var total int64
	require.NoError(t, db.Model(&domain.TodoTask{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

// 分类属于别人时与不存在同错，且不落库
func TestTaskCreateForeignCategoryNoWrite(t *testing.T) {
	s, cats, db := newTaskService(t)

	theirs, err := cats.Create(CategoryInput{Name: "Theirs"}, "u2")
	require.NoError(t, err)

	_, err = s.Create(TaskCreateInput{Title: "x", Priority: domain.PriorityMedium, CategoryID: &theirs.ID}, "u1")
	assert.True(t, IsNotFound(err))

	var total int64
	require.NoError(t, db.Model(&domain.TodoTask{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

func TestTaskStatusTransitionSetsCompletedAt(t *testing.T) {
	s, _, _ := newTaskService(t)
	created := mustCreateTask(t, s, "u1", "todo")

	in := updateFrom(created)
	in.Status = domain.StatusCompleted
	out, err := s.Update(created.ID, in, "u1")
	require.NoError(t, err)
	require.NotNil(t, out.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *out.CompletedAt, time.Minute)

	// 完成 → 非完成：打点清空
	in = updateFrom(out)
	in.Status = domain.StatusInProgress
	out, err = s.Update(created.ID, in, "u1")
	require.NoError(t, err)
	assert.Nil(t, out.CompletedAt)

	// 非完成 → 非完成：依旧为空
	in = updateFrom(out)
	in.Status = domain.StatusPending
	out, err = s.Update(created.ID, in, "u1")
	require.NoError(t, err)
	assert.Nil(t, out.CompletedAt)
}

func TestTaskUpdateNotOwnedIsNotFound(t *testing.T) {
	s, _, _ := newTaskService(t)
	created := mustCreateTask(t, s, "u1", "mine")

	in := updateFrom(created)
	_, err := s.Update(created.ID, in, "intruder")
	assert.True(t, IsNotFound(err))
}

func TestTaskUpdateAttachesCategoryName(t *testing.T) {
	s, cats, _ := newTaskService(t)

	cat, err := cats.Create(CategoryInput{Name: "Errands"}, "u1")
	require.NoError(t, err)
	created := mustCreateTask(t, s, "u1", "buy milk")

	in := updateFrom(created)
	in.CategoryID = &cat.ID
	out, err := s.Update(created.ID, in, "u1")
	require.NoError(t, err)
	require.NotNil(t, out.CategoryName)
	assert.Equal(t, "Errands", *out.CategoryName)
}

func TestTaskListPagedTotals(t *testing.T) {
	s, _, _ := newTaskService(t)
	for i := 0; i < 25; i++ {
		mustCreateTask(t, s, "u1", "task")
	}

	out, err := s.ListPaged("u1", domain.TaskFilter{}, domain.TaskPage{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), out.TotalCount)
	assert.Equal(t, int64(3), out.TotalPages)
	assert.LessOrEqual(t, len(out.Items), 10)

	last, err := s.ListPaged("u1", domain.TaskFilter{}, domain.TaskPage{PageNumber: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)
}

// 非法分页参数钳制而不是报错
func TestTaskListPagedClampsBounds(t *testing.T) {
	s, _, _ := newTaskService(t)
	mustCreateTask(t, s, "u1", "only")

	out, err := s.ListPaged("u1", domain.TaskFilter{}, domain.TaskPage{PageNumber: -3, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, out.PageNumber)
	assert.Equal(t, 10, out.PageSize)

	out, err = s.ListPaged("u1", domain.TaskFilter{}, domain.TaskPage{PageNumber: 1, PageSize: 9999})
	require.NoError(t, err)
	assert.Equal(t, 100, out.PageSize)
}

// 逾期计数：Completed 不算，Cancelled 算（保留历史口径）
func TestTaskOverdueCountKeepsCancelledCounted(t *testing.T) {
	s, _, db := newTaskService(t)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	for _, st := range []domain.TaskStatus{domain.StatusPending, domain.StatusCancelled, domain.StatusCompleted} {
		created := mustCreateTask(t, s, "u1", "due")
		require.NoError(t, db.Model(&domain.TodoTask{}).
			Where("id = ?", created.ID).
			Updates(map[string]any{"status": st, "due_date": yesterday}).Error)
	}

	n, err := s.OverdueCount("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestTaskDeleteIdempotent(t *testing.T) {
	s, _, _ := newTaskService(t)
	created := mustCreateTask(t, s, "u1", "bye")

	require.NoError(t, s.Delete(created.ID, "u1"))
	require.NoError(t, s.Delete(created.ID, "u1"))

	got, err := s.GetByID(created.ID, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
