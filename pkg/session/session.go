package session

import (
	"crypto/subtle"
	"errors"
	"strings"
)

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProductManager Role = "product_manager"
	RoleMarketing      Role = "marketing"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("user is not allowed to edit")
)

type User struct {
	Username string `json:"username" yaml:"username"`
	Role     Role   `json:"role"     yaml:"role"`
}

func (u User) CanEdit() bool {
	return u.Role == RoleAdmin || u.Role == RoleProductManager
}

type account struct {
	password string
	role     Role
}

var accounts = map[string]account{
	"admin":     {"admin", RoleAdmin},
	"pm":        {"pm123", RoleProductManager},
	"marketing": {"mkt123", RoleMarketing},
}

func Authenticate(username, password string) (User, error) {
	username = strings.TrimSpace(username)
	acc, ok := accounts[username]
	if !ok || subtle.ConstantTimeCompare([]byte(acc.password), []byte(password)) != 1 {
		return User{}, ErrInvalidCredentials
	}
	return User{Username: username, Role: acc.role}, nil
}

// RequireEditor authenticates and fails with ErrForbidden for read-only roles.
func RequireEditor(username, password string) (User, error) {
	user, err := Authenticate(username, password)
	if err != nil {
		return User{}, err
	}
	if !user.CanEdit() {
		return user, ErrForbidden
	}
	return user, nil
}
