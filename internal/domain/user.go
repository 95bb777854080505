package domain

import "time"

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Email        string     `gorm:"index;size:255;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Role         string     `gorm:"size:16;not null;default:User" json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
	IsDeleted    bool       `gorm:"index;not null;default:false" json:"-"`
	DeletedAt    *time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// UserRepository 默认只看未软删的行；
// EmailExists 的唯一性也只在未软删用户之间判定（软删后的邮箱可重新注册）。
type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	EmailExists(email string) (bool, error)
	Update(u *User) error
	PurgeDeletedBefore(cutoff time.Time) (int64, error)
}
