// Package models содержит доменные структуры фермы,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Farm представляет ферму, принадлежащую ровно одному фермеру.
type Farm struct {
	UID         string    `json:"uid"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Size        float64   `json:"size"` // Площадь в акрах, > 0
	Description string    `json:"description,omitempty"`
	OwnerUID    string    `json:"owner_uid"` // UID пользователя-владельца (role=farmer)
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateFarmRequest используется для приёма данных из JSON-запроса
// на создание фермы.
type CreateFarmRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Location    string  `json:"location" validate:"required"`
	Size        float64 `json:"size" validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty,max=500"`
}

// UpdateFarmRequest используется для частичного обновления фермы.
// Нулевые указатели означают "поле не менять".
type UpdateFarmRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Location    *string  `json:"location" validate:"omitempty,min=1"`
	Size        *float64 `json:"size" validate:"omitempty,gt=0"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
}
