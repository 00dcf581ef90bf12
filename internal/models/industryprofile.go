// Package models содержит доменные структуры профиля предприятия.
// У пользователя с ролью industry может быть ровно один профиль.
package models

import "time"

// IndustryType описывает закрытый набор отраслей предприятия.
type IndustryType string

// Допустимые отрасли.
const (
	IndustryManufacturing  IndustryType = "manufacturing"
	IndustryFoodProcessing IndustryType = "food_processing"
	IndustryTextile        IndustryType = "textile"
	IndustryChemical       IndustryType = "chemical"
	IndustryEnergy         IndustryType = "energy"
	IndustryTransportation IndustryType = "transportation"
	IndustryConstruction   IndustryType = "construction"
	IndustryOther          IndustryType = "other"
)

// ParseIndustryType преобразует строку в IndustryType. Возвращает false
// для неизвестной отрасли.
func ParseIndustryType(s string) (IndustryType, bool) {
	switch IndustryType(s) {
	case IndustryManufacturing, IndustryFoodProcessing, IndustryTextile,
		IndustryChemical, IndustryEnergy, IndustryTransportation,
		IndustryConstruction, IndustryOther:
		return IndustryType(s), true
	}
	return "", false
}

// IndustryProfile представляет профиль предприятия-покупателя.
type IndustryProfile struct {
	UID          string       `json:"uid"`
	Name         string       `json:"name"`
	IndustryType IndustryType `json:"industry_type"`
	Description  string       `json:"description,omitempty"`
	OwnerUID     string       `json:"owner_uid"` // UID пользователя-владельца (role=industry), уникальный
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// UpsertProfileRequest используется для создания или обновления
// профиля текущего предприятия.
type UpsertProfileRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	IndustryType string `json:"industry_type" validate:"required"`
	Description  string `json:"description" validate:"omitempty,max=500"`
}
