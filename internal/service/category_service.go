package service

import (
	"time"

	"todo-list-api/internal/domain"
	"todo-list-api/pkg/utils"
)

const defaultColor = "#000000"

type CategoryService struct {
	categories domain.CategoryRepository
}

func NewCategoryService(categories domain.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// GetByID 查不到（含非属主）返回 (nil, nil)，不报错。
func (s *CategoryService) GetByID(id, userID string) (*CategoryDTO, error) {
	c, err := s.categories.FindByID(id, userID)
	if err != nil || c == nil {
		return nil, err
	}
	count, err := s.categories.CountTasks(c.ID)
	if err != nil {
		return nil, err
	}
	return mapCategory(c, count), nil
}

func (s *CategoryService) List(userID string) ([]CategoryDTO, error) {
	rows, err := s.categories.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *mapCategory(&rows[i].Category, rows[i].TaskCount))
	}
	return out, nil
}

func (s *CategoryService) Create(in CategoryInput, userID string) (*CategoryDTO, error) {
	c := &domain.Category{
		ID:          utils.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	if c.Color == "" {
		c.Color = defaultColor
	}
	if err := s.categories.Create(c); err != nil {
		return nil, err
	}
	return mapCategory(c, 0), nil
}

// Update 是整体替换：入参没给的字段不保留旧值。
func (s *CategoryService) Update(id string, in CategoryInput, userID string) (*CategoryDTO, error) {
	c, err := s.categories.FindByID(id, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, NotFoundf("Category with ID %s not found", id)
	}

	now := time.Now().UTC()
	c.Name = in.Name
	c.Description = in.Description
	c.Color = in.Color
	if c.Color == "" {
		c.Color = defaultColor
	}
	c.UpdatedAt = &now

	if err := s.categories.Update(c); err != nil {
		return nil, err
	}
	count, err := s.categories.CountTasks(c.ID)
	if err != nil {
		return nil, err
	}
	return mapCategory(c, count), nil
}

// Delete 幂等：不存在也算成功。
func (s *CategoryService) Delete(id, userID string) error {
	return s.categories.SoftDelete(id, userID)
}

func mapCategory(c *domain.Category, taskCount int64) *CategoryDTO {
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		TaskCount:   taskCount,
		CreatedAt:   c.CreatedAt,
	}
}
