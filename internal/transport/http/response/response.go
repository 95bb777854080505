package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-list-api/internal/service"
)

type ErrorBody struct {
	Message string `json:"message"`
}

func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorBody{Message: msg})
}

// StatusOf 错误种类 → HTTP 状态码的固定映射。未识别的错误一律 500，
// 对外只给通用文案，细节留在日志里。
func StatusOf(err error) (int, string) {
	switch {
	case service.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case service.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	}
	return http.StatusInternalServerError, "An unexpected error occurred"
}

// Fail 按映射表回错误；500 级别的同时打日志由调用方负责。
func Fail(c *gin.Context, err error) {
	status, msg := StatusOf(err)
	Err(c, status, msg)
}
