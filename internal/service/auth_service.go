package service

import (
	"time"

	"todo-list-api/internal/core/auth"
	"todo-list-api/internal/domain"
	"todo-list-api/pkg/utils"
)

// 返回给客户端的过期时间固定 60 分钟，与 JWT 自身的 TTL 配置无关。
const tokenExpiry = 60 * time.Minute

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	if in.Password != in.PasswordConfirmation {
		return nil, Validationf("Passwords do not match")
	}

	exists, err := s.users.EmailExists(in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        in.Email,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) Login(in LoginInput) (*AuthResult, error) {
	u, err := s.users.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	// 未知邮箱、软删用户、密码错误：同一个错误，外部不可区分。
	if u == nil || u.IsDeleted {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// Profile 查不到或已软删都按“不存在”处理，返回 (nil, nil)。
func (s *AuthService) Profile(userID string) (*UserProfile, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.IsDeleted {
		return nil, nil
	}
	return &UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}, nil
}

func (s *AuthService) issue(u *domain.User) (*AuthResult, error) {
	token, err := s.jwter.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		Email:     u.Email,
		Role:      u.Role,
		ExpiresAt: time.Now().UTC().Add(tokenExpiry),
	}, nil
}
