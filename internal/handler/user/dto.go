package user

import "time"

// UserResponse описывает пользователя в ответах API. Хэш пароля не отдаётся.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateRequest описывает тело запроса обновления пользователя. Все поля опциональны.
type UpdateRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
}
