package user

import (
	"context"

	types "adboard/internal/types/user"
)

// Роли пользователей
const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User структура пользователя
type User struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Role         string  `json:"role"`
	Location     *string `json:"location"`
	PasswordHash string  `json:"-"`
}

// String возвращает то, как автор показывается в объявлениях
func (u *User) String() string {
	return u.Username
}

// UserRepo интерфейс удовлетворяющий методам сущности пользователя
//
//go:generate mockgen -source=user.go -destination=../mocks/mock_user_repo.go -package=mocks
type UserRepo interface {
	// CheckUser - проверяет пользователя по логину и паролю
	CheckUser(ctx context.Context, username, password string) (*User, error)
	// CreateUser создает пользователя с ролью member
	CreateUser(ctx context.Context, u types.CreateUser) (*User, error)
	// Info возвращает информацию о пользователе
	Info(ctx context.Context, userID int64) (*User, error)
}
