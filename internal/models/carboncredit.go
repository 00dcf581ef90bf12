// Package models содержит доменные структуры углеродного кредита
// и его машину состояний.
package models

import "time"

// CreditStatus описывает состояние углеродного кредита.
//
// Переходы: pending -> verified -> sold, pending -> cancelled.
// Отмена верифицированного кредита не допускается.
type CreditStatus string

const (
	// CreditPending — кредит создан фермером и ждёт верификации.
	CreditPending CreditStatus = "pending"
	// CreditVerified — кредит подтверждён внешним верификатором
	// и доступен для покупки.
	CreditVerified CreditStatus = "verified"
	// CreditSold — кредит куплен предприятием, терминальное состояние.
	CreditSold CreditStatus = "sold"
	// CreditCancelled — кредит отменён владельцем, терминальное состояние.
	CreditCancelled CreditStatus = "cancelled"
)

// ParseCreditStatus преобразует строку в CreditStatus. Возвращает false
// для неизвестного статуса.
func ParseCreditStatus(s string) (CreditStatus, bool) {
	switch CreditStatus(s) {
	case CreditPending, CreditVerified, CreditSold, CreditCancelled:
		return CreditStatus(s), true
	}
	return "", false
}

// CarbonCredit представляет партию углеродных кредитов фермера.
// IndustryUID заполнен тогда и только тогда, когда кредит продан.
type CarbonCredit struct {
	UID         string       `json:"uid"`
	Amount      float64      `json:"amount"` // Тонны CO2, > 0
	Price       float64      `json:"price"`  // Цена за тонну, >= 0
	Status      CreditStatus `json:"status"`
	FarmUID     *string      `json:"farm_uid,omitempty"` // Опциональная привязка к ферме владельца
	OwnerUID    string       `json:"owner_uid"`          // UID фермера-владельца
	IndustryUID *string      `json:"industry_uid,omitempty"` // UID профиля покупателя
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CreateCreditRequest используется для приёма данных из JSON-запроса
// на создание кредита.
type CreateCreditRequest struct {
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Price   float64 `json:"price" validate:"gte=0"`
	FarmUID string  `json:"farm_uid" validate:"omitempty,uuid"`
}

// UpdateCreditStatusRequest используется для смены статуса кредита
// его владельцем.
type UpdateCreditStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreditSoldEvent публикуется в RabbitMQ после успешной покупки кредита.
type CreditSoldEvent struct {
	CreditUID  string  `json:"credit_uid"`
	Amount     float64 `json:"amount"`
	Price      float64 `json:"price"`
	OwnerName  string  `json:"owner_name"`
	OwnerEmail string  `json:"owner_email"`
	BuyerName  string  `json:"buyer_name"`
}

// CreditVerifiedEvent публикуется в RabbitMQ после верификации кредита.
type CreditVerifiedEvent struct {
	CreditUID string  `json:"credit_uid"`
	Amount    float64 `json:"amount"`
}
