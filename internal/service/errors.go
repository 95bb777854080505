package service

import (
	"errors"
	"fmt"
)

// 登录失败不区分“邮箱不存在”和“密码错误”，避免撞库探测。
var (
	ErrDuplicateEmail     = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

// NotFoundError 同时覆盖“真不存在”和“不是你的”两种情况，
// 对外不可区分，避免泄露其他用户的数据存在性。
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
