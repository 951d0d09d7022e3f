package models

import "fmt"

// Role представляет закрытый набор ролей пользователей кассы.
// Проверки прав выполняются только через методы-способности ниже,
// строковые сравнения ролей в остальном коде запрещены.
type Role string

const (
	RoleDirector  Role = "director"
	RoleAttendant Role = "attendant"
)

// ParseRole разбирает строковое представление роли.
// Неизвестная роль является ошибкой, а не деградацией до Attendant.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleDirector:
		return RoleDirector, nil
	case RoleAttendant:
		return RoleAttendant, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CanViewCost возвращает true, если роль может видеть закупочные цены и прибыль
func (r Role) CanViewCost() bool {
	return r == RoleDirector
}

// CanDeleteSale возвращает true, если роль может сторнировать продажи
func (r Role) CanDeleteSale() bool {
	return r == RoleDirector
}

// CanEditInventory возвращает true, если роль может править каталог
func (r Role) CanEditInventory() bool {
	return r == RoleDirector
}

// Principal представляет аутентифицированного пользователя кассы.
// Аутентификация выполняется вне ядра; ядро получает уже готовую пару
// (имя, роль) и использует её только для проверок прав и атрибуции продаж.
type Principal struct {
	Username string
	Role     Role
}
