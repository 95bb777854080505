package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-list-api/internal/service"
)

func TestStatusOfLookup(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.Validationf("bad input"), http.StatusBadRequest},
		{service.ErrDuplicateEmail, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.NotFoundf("Task with ID %s not found", "abc"), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _ := StatusOf(tc.err)
		assert.Equal(t, tc.want, status, tc.err.Error())
	}
}

// 500 不能泄露内部错误细节
func TestStatusOfMasksInternalErrors(t *testing.T) {
	_, msg := StatusOf(errors.New("pq: connection refused"))
	assert.NotContains(t, msg, "pq:")
}
