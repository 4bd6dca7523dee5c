package valueobject

import "github.com/google/uuid"

// Role - глобальная роль пользователя из токена.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Caller - явная идентичность вызывающего, передаётся в каждую операцию.
type Caller struct {
	ID   uuid.UUID
	Role Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
