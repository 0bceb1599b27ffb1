// Package permission проверяет права текущего пользователя по профилю сессии.
// Решение здесь только подсказка для CLI: настоящую проверку делает backend.
package permission

import (
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// Идентификаторы встроенных ролей
const (
	RoleSuperAdmin = 1
	RoleAdmin      = 2
)

// Ключи прав из каталога backend
const (
	UserView         = "user:view"
	UserCreate       = "user:create"
	UserEdit         = "user:edit"
	UserDelete       = "user:delete"
	RoleView         = "role:view"
	RoleCreate       = "role:create"
	RoleEdit         = "role:edit"
	RoleDelete       = "role:delete"
	PermissionView   = "permission:view"
	PermissionAssign = "permission:assign"
	SystemView       = "system:view"
	SystemEdit       = "system:edit"
	EmbyView         = "emby:view"
	EmbySync         = "emby:sync"
	EmbyConfig       = "emby:config"
	CardKeyView      = "cardkey:view"
	CardKeyCreate    = "cardkey:create"
	CardKeyEdit      = "cardkey:edit"
	CardKeyDelete    = "cardkey:delete"
	StatsView        = "stats:view"
)

// ProfileSource отдает профиль текущего пользователя
type ProfileSource interface {
	UserInfo() *pkgapi.User
}

// Checker отвечает на вопросы о правах текущего пользователя
type Checker struct {
	source ProfileSource
}

// NewChecker создает Checker поверх источника профиля
func NewChecker(source ProfileSource) *Checker {
	return &Checker{source: source}
}

func (c *Checker) roleID(u *pkgapi.User) int {
	if u.Role != nil {
		return u.Role.RoleID
	}
	return u.RoleID
}

// Has сообщает, есть ли у пользователя право key. Суперадминистратор имеет все права.
func (c *Checker) Has(key string) bool {
	u := c.source.UserInfo()
	if u == nil || u.Role == nil {
		return false
	}
	if c.roleID(u) == RoleSuperAdmin {
		return true
	}
	for _, p := range u.Role.Permissions {
		if p != nil && p.PermissionKey == key {
			return true
		}
	}
	return false
}

// HasAny сообщает, есть ли хотя бы одно из прав
func (c *Checker) HasAny(keys ...string) bool {
	for _, k := range keys {
		if c.Has(k) {
			return true
		}
	}
	return false
}

// HasAll сообщает, есть ли все права. Пустой список - true.
func (c *Checker) HasAll(keys ...string) bool {
	for _, k := range keys {
		if !c.Has(k) {
			return false
		}
	}
	return true
}

// IsSuperAdmin - роль 1
func (c *Checker) IsSuperAdmin() bool {
	u := c.source.UserInfo()
	return u != nil && c.roleID(u) == RoleSuperAdmin
}

// IsAdmin - роль 1 или 2
func (c *Checker) IsAdmin() bool {
	u := c.source.UserInfo()
	if u == nil {
		return false
	}
	id := c.roleID(u)
	return id == RoleSuperAdmin || id == RoleAdmin
}
