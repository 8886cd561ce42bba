package entity

import (
	"fmt"
	"time"
)

// Worker roles. The role decides which report form the bot runs for a user.
const (
	RoleAdmin        = "ADMIN"
	RolePending      = "PENDING"
	RoleAutopsy      = "WORKER_AUTOPSY"
	RoleConstruction = "WORKER_CONSTRUCTION"
	RoleDigging      = "WORKER_DIGGING"
	RoleOptical      = "WORKER_OPTICAL"
	RoleActivation   = "WORKER_ACTIVATION"
)

type User struct {
	UserID         string `json:"user_id" bson:"user_id" validate:"required"`
	Name           string `json:"name" bson:"name" validate:"omitempty"`
	Role           string `json:"role" bson:"role" validate:"omitempty"`
	TelegramChatID string `json:"telegram_chat_id" bson:"telegram_chat_id" validate:"omitempty"`
	Active         bool   `json:"active" bson:"active"`
}

// NewUser creates a user record for a Telegram chat. Workers self-register
// with the PENDING role; an admin assigns the real one from the dashboard.
func NewUser(telegramChatID, name string) *User {
	return &User{
		UserID:         fmt.Sprintf("U-%d", time.Now().UnixMilli()),
		Name:           name,
		Role:           RolePending,
		TelegramChatID: telegramChatID,
		Active:         true,
	}
}

// IsWorker reports whether the role has a report form attached to it.
func (u *User) IsWorker() bool {
	switch u.Role {
	case RoleAutopsy, RoleConstruction, RoleDigging, RoleOptical:
		return true
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
