// Package models содержит доменные структуры сельскохозяйственной культуры.
// Культура принадлежит ровно одной ферме; владение определяется
// транзитивно через владельца фермы.
package models

import "time"

// CropType описывает закрытый набор видов культур.
type CropType string

// Допустимые виды культур.
const (
	CropWheat      CropType = "wheat"
	CropCorn       CropType = "corn"
	CropSoybeans   CropType = "soybeans"
	CropCotton     CropType = "cotton"
	CropRice       CropType = "rice"
	CropSugarcane  CropType = "sugarcane"
	CropCoffee     CropType = "coffee"
	CropTea        CropType = "tea"
	CropFruits     CropType = "fruits"
	CropVegetables CropType = "vegetables"
	CropOther      CropType = "other"
)

// ParseCropType преобразует строку в CropType. Возвращает false для
// неизвестного вида.
func ParseCropType(s string) (CropType, bool) {
	switch CropType(s) {
	case CropWheat, CropCorn, CropSoybeans, CropCotton, CropRice,
		CropSugarcane, CropCoffee, CropTea, CropFruits, CropVegetables, CropOther:
		return CropType(s), true
	}
	return "", false
}

// Crop представляет культуру, высаженную на ферме.
// HarvestDate и Yield опциональны: nil означает, что урожай ещё не собран.
type Crop struct {
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Type         CropType   `json:"type"`
	Variety      string     `json:"variety,omitempty"`
	PlantingDate time.Time  `json:"planting_date"`
	HarvestDate  *time.Time `json:"harvest_date,omitempty"`
	Yield        *float64   `json:"yield,omitempty"` // Урожайность в тоннах, >= 0
	FarmUID      string     `json:"farm_uid"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateCropRequest используется для приёма данных из JSON-запроса
// на создание культуры. Даты приходят строками в формате 2006-01-02,
// чтобы их можно было валидировать и парсить вручную.
type CreateCropRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=50"`
	Type         string   `json:"type" validate:"required"`
	Variety      string   `json:"variety" validate:"omitempty,max=50"`
	PlantingDate string   `json:"planting_date" validate:"required,datetime=2006-01-02"`
	HarvestDate  string   `json:"harvest_date" validate:"omitempty,datetime=2006-01-02"`
	Yield        *float64 `json:"yield" validate:"omitempty,gte=0"`
	FarmUID      string   `json:"farm_uid" validate:"required,uuid"`
}

// CropPatch — распарсенный вариант UpdateCropRequest для слоя хранилища.
// Нулевые указатели означают "поле не менять".
type CropPatch struct {
	Name         *string
	Type         *CropType
	Variety      *string
	PlantingDate *time.Time
	HarvestDate  *time.Time
	Yield        *float64
}

// UpdateCropRequest используется для частичного обновления культуры.
type UpdateCropRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=2,max=50"`
	Type         *string  `json:"type" validate:"omitempty"`
	Variety      *string  `json:"variety" validate:"omitempty,max=50"`
	PlantingDate *string  `json:"planting_date" validate:"omitempty,datetime=2006-01-02"`
	HarvestDate  *string  `json:"harvest_date" validate:"omitempty,datetime=2006-01-02"`
	Yield        *float64 `json:"yield" validate:"omitempty,gte=0"`
}
