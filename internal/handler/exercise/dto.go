package exercise

import (
	"time"

	domain "github.com/petedillo/fitness-api/internal/domain/exercise"
)

// CreateRequest описывает тело запроса создания упражнения.
type CreateRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateRequest описывает частичное обновление упражнения.
type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// Response описывает упражнение в ответах API.
type Response struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToResponse маппит доменную модель в DTO.
func ToResponse(e *domain.Exercise) Response {
	return Response{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}
