// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Все ошибки отдаются клиенту
// в одном формате {"kind": ..., "message": ...}, код статуса определяется видом ошибки.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/monoare/vigor-vista-server/internal/apperr"
)

// ErrorResponse описывает единый формат ответа с ошибкой.
type ErrorResponse struct {
	Kind    apperr.Kind `json:"kind" example:"not_found"`
	Message string      `json:"message" example:"document not found"`
}

// Публичные сообщения для видов ошибок.
const (
	MsgUnauthorized    = "unauthorized access"
	MsgForbidden       = "forbidden access"
	MsgDuplicateVote   = "You have already voted this post."
	MsgInvalidID       = "invalid identifier"
	MsgNotFound        = "document not found"
	MsgConflict        = "document already exists"
	MsgInvalidRequest  = "invalid request"
	MsgPaymentProvider = "payment provider error"
	MsgTooManyRequests = "too many requests"
	MsgInternal        = "internal server error"
)

var statuses = map[apperr.Kind]int{
	apperr.KindUnauthorized:      http.StatusUnauthorized,
	apperr.KindForbidden:         http.StatusForbidden,
	apperr.KindInvalidRequest:    http.StatusBadRequest,
	apperr.KindValidation:        http.StatusUnprocessableEntity,
	apperr.KindInvalidIdentifier: http.StatusBadRequest,
	apperr.KindNotFound:          http.StatusNotFound,
	apperr.KindConflict:          http.StatusConflict,
	apperr.KindDuplicateVote:     http.StatusBadRequest,
	apperr.KindPaymentProvider:   http.StatusBadGateway,
	apperr.KindTooManyRequests:   http.StatusTooManyRequests,
	apperr.KindInternal:          http.StatusInternalServerError,
}

var messages = map[apperr.Kind]string{
	apperr.KindUnauthorized:      MsgUnauthorized,
	apperr.KindForbidden:         MsgForbidden,
	apperr.KindInvalidRequest:    MsgInvalidRequest,
	apperr.KindInvalidIdentifier: MsgInvalidID,
	apperr.KindNotFound:          MsgNotFound,
	apperr.KindConflict:          MsgConflict,
	apperr.KindDuplicateVote:     MsgDuplicateVote,
	apperr.KindPaymentProvider:   MsgPaymentProvider,
	apperr.KindTooManyRequests:   MsgTooManyRequests,
	apperr.KindInternal:          MsgInternal,
}

// Status возвращает HTTP-статус для вида ошибки.
func Status(kind apperr.Kind) int {
	if code, ok := statuses[kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// Error возвращает ErrorResponse с переданным видом и сообщением.
func Error(kind apperr.Kind, msg string) ErrorResponse {
	return ErrorResponse{
		Kind:    kind,
		Message: msg,
	}
}

// RenderKind отправляет ответ с ошибкой вида kind и сообщением msg.
// Пустое сообщение заменяется стандартным для этого вида.
func RenderKind(w http.ResponseWriter, r *http.Request, kind apperr.Kind, msg string) {
	if msg == "" {
		msg = messages[kind]
	}
	render.Status(r, Status(kind))
	render.JSON(w, r, Error(kind, msg))
}

// RenderError отправляет ответ для err: вид ошибки определяется по цепочке,
// клиенту уходит только публичное сообщение.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	RenderKind(w, r, apperr.KindOf(err), "")
}

// ValidationError формирует ErrorResponse вида validation на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "gt", "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "url":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid url", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of [%s]", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		Kind:    apperr.KindValidation,
		Message: strings.Join(errsMsgs, ", "),
	}
}

// RenderValidation отправляет 422 с описанием ошибок валидации.
// Ошибки другого типа (например, InvalidValidationError) отдаются как invalid_request.
func RenderValidation(w http.ResponseWriter, r *http.Request, err error) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		RenderKind(w, r, apperr.KindInvalidRequest, "")
		return
	}
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, ValidationError(verrs))
}
