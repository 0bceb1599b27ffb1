package api

import "time"

// Статусы пользователя
const (
	UserStatusDisabled = 0
	UserStatusEnabled  = 1
)

// User представляет учетную запись пользователя
type User struct {
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
	VIPExpireAt *time.Time `json:"vip_expire_at,omitempty" yaml:"vip_expire_at,omitempty"`
	Role        *Role      `json:"role,omitempty" yaml:"role,omitempty"`
	Username    string     `json:"username" yaml:"username"`
	Email       string     `json:"email" yaml:"email"`
	EmbyUserID  string     `json:"emby_user_id" yaml:"emby_user_id"`
	UserID      int        `json:"user_id" yaml:"user_id"`
	RoleID      int        `json:"role_id" yaml:"role_id"`
	Status      int        `json:"status" yaml:"status"`
	VIPLevel    int        `json:"vip_level" yaml:"vip_level"` // 0 - обычный, 1 - VIP
}

// IsVIP сообщает, действует ли VIP на момент now
func (u *User) IsVIP(now time.Time) bool {
	return u.VIPLevel == 1 && u.VIPExpireAt != nil && u.VIPExpireAt.After(now)
}

// UserCreateRequest запрос на создание пользователя
type UserCreateRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=6,max=50"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	EmbyUserID string `json:"emby_user_id,omitempty"`
	RoleID     int    `json:"role_id" validate:"required,gt=0"`
}

// UserUpdateRequest запрос на изменение пользователя
type UserUpdateRequest struct {
	Status     *int   `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	EmbyUserID string `json:"emby_user_id,omitempty"`
	RoleID     int    `json:"role_id,omitempty" validate:"omitempty,gt=0"`
}

// UserListParams фильтры списка пользователей
type UserListParams struct {
	Keyword string `url:"keyword,omitempty"`
	Status  *int   `url:"status,omitempty"`
	RoleID  int    `url:"role_id,omitempty"`
	PageParams
}

// SetVIPRequest продление VIP на указанное количество дней
type SetVIPRequest struct {
	Days int `json:"days" validate:"required,gt=0"`
}

// BatchStatusRequest массовое изменение статуса
type BatchStatusRequest struct {
	UserIDs []int `json:"user_ids" validate:"required,min=1,dive,gt=0"`
	Status  int   `json:"status" validate:"oneof=0 1"`
}

// Role представляет роль
type Role struct {
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
	RoleName    string        `json:"role_name" yaml:"role_name"`
	Description string        `json:"description" yaml:"description"`
	Permissions []*Permission `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	RoleID      int           `json:"role_id" yaml:"role_id"`
}

// RoleRequest запрос на создание или изменение роли
type RoleRequest struct {
	RoleName    string `json:"role_name,omitempty" validate:"omitempty,min=2,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=200"`
}

// AssignPermissionsRequest назначение прав роли
type AssignPermissionsRequest struct {
	PermissionIDs []int `json:"permission_ids"`
}

// Permission представляет право доступа
type Permission struct {
	PermissionName string `json:"permission_name" yaml:"permission_name"`
	PermissionKey  string `json:"permission_key" yaml:"permission_key"`
	Description    string `json:"description" yaml:"description"`
	PermissionID   int    `json:"permission_id" yaml:"permission_id"`
}
