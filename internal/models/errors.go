// Package models содержит доменные ошибки, по которым обработчики
// выбирают HTTP-статус. Сервисы оборачивают их через fmt.Errorf("%s: %w"),
// обработчики проверяют errors.Is.
package models

import "errors"

var (
	// ErrNotFound — ресурс отсутствует или скрыт правилом владения.
	ErrNotFound = errors.New("not found")
	// ErrForbidden — цепочка владения ресурса не заканчивается
	// на запрашивающем пользователе.
	ErrForbidden = errors.New("access denied")
	// ErrInvalidCredentials — неверная пара email/пароль или роль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail — email уже занят другим пользователем.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidTransition — недопустимый переход статуса кредита.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidState — операция недопустима в текущем статусе кредита.
	ErrInvalidState = errors.New("invalid credit state")
	// ErrAlreadySold — кредит уже куплен другим предприятием.
	ErrAlreadySold = errors.New("credit has already been purchased")
	// ErrNotPurchasable — кредит не верифицирован и не продаётся.
	ErrNotPurchasable = errors.New("credit is not available for purchase")
	// ErrInvalidInput — семантически некорректные данные запроса:
	// значение вне закрытого перечисления или дата сбора раньше даты посадки.
	ErrInvalidInput = errors.New("invalid request data")
)
