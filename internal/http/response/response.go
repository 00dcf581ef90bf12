// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"fmt"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Errors — пополевые ошибки валидации (опционально).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string       `json:"status"`
	Error  string       `json:"error,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
	Data   any          `json:"data,omitempty"`
}

// FieldError описывает ошибку валидации одного поля запроса.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение возвращается отдельным элементом errors с именем поля
// и человеко‑читаемым сообщением.
func ValidationError(errs validator.ValidationErrors) Response {
	var fieldErrs []FieldError

	for _, err := range errs {
		var msg string
		switch err.ActualTag() {
		case "required":
			msg = fmt.Sprintf("field %s is a required field", err.Field())
		case "email":
			msg = fmt.Sprintf("field %s must be a valid email", err.Field())
		case "uuid":
			msg = fmt.Sprintf("field %s can contain only uuid", err.Field())
		case "gt":
			msg = fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param())
		case "gte":
			msg = fmt.Sprintf("field %s must be %s or greater", err.Field(), err.Param())
		case "min":
			msg = fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param())
		case "max":
			msg = fmt.Sprintf("field %s cannot exceed %s characters", err.Field(), err.Param())
		case "datetime":
			msg = fmt.Sprintf("field %s can contain only date in format 2006-01-02", err.Field())
		case "oneof":
			msg = fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param())
		default:
			msg = fmt.Sprintf("field %s is not a valid", err.Field())
		}
		fieldErrs = append(fieldErrs, FieldError{Field: err.Field(), Message: msg})
	}
	return Response{
		Status: StatusError,
		Error:  "validation failed",
		Errors: fieldErrs,
	}
}
