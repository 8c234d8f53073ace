package user

import (
	"strings"
	"time"
)

// User представляет доменную модель пользователя фитнес‑приложения.
//
// Важно: эта модель описывает бизнес‑сущность и не зависит от деталей транспорта (HTTP)
// и конкретного представления в БД.
type User struct {
	ID           int64     // Суррогатный идентификатор (BIGSERIAL)
	Username     string    // Никнейм (уникальный)
	Email        string    // Email (уникальный)
	PasswordHash string    // Хэш пароля
	CreatedAt    time.Time // Время создания
}

// NewUser - фабрика для создания нового пользователя на доменном уровне.
// Хеширование пароля выполняется на уровне usecase‑слоя до вызова этой функции.
// Идентификатор назначается хранилищем при вставке.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
