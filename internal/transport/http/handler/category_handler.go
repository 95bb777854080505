package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-list-api/internal/service"
	mdw "todo-list-api/internal/transport/http/middleware"
	resp "todo-list-api/internal/transport/http/response"
)

type CategoryHandler struct {
	svc *service.CategoryService
	log *zap.Logger
}

func NewCategoryHandler(svc *service.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log}
}

// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.GetString(mdw.KeyUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	out, err := h.svc.GetByID(c.Param("id"), c.GetString(mdw.KeyUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	if out == nil {
		resp.Err(c, http.StatusNotFound, "Category not found")
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var in service.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Create(in, c.GetString(mdw.KeyUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var in service.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Update(c.Param("id"), in, c.GetString(mdw.KeyUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /categories/:id — 幂等，不存在也返回 204
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), c.GetString(mdw.KeyUserID)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) fail(c *gin.Context, err error) {
	if status, _ := resp.StatusOf(err); status == http.StatusInternalServerError {
		h.log.Error("category op failed", zap.Error(err), zap.String("rid", c.GetString(mdw.KeyRequestID)))
	}
	resp.Fail(c, err)
}
