// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и роль.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Role описывает закрытый набор ролей пользователя.
// Других ролей в системе нет, роль назначается при регистрации
// и не меняется.
type Role string

const (
	// RoleFarmer — производитель сельхозпродукции, владеет фермами,
	// культурами и углеродными кредитами.
	RoleFarmer Role = "farmer"
	// RoleIndustry — предприятие-покупатель, владеет профилем
	// и купленными кредитами.
	RoleIndustry Role = "industry"
)

// ParseRole преобразует строку в Role. Возвращает false для
// неизвестной роли.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleFarmer, RoleIndustry:
		return Role(s), true
	}
	return "", false
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    `json:"uid"`   // Уникальный идентификатор пользователя
	Name         string    `json:"name"`  // Отображаемое имя
	Email        string    `json:"email"` // Электронная почта (уникальная)
	PasswordHash string    `json:"-"`     // Хэш пароля пользователя
	Role         Role      `json:"role"`  // Роль пользователя, farmer или industry
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
