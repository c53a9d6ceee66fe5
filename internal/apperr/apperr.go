// Package apperr описывает доменные ошибки приложения и их классификацию.
//
// Слои хранилища и сервисов оборачивают sentinel-ошибки через fmt.Errorf("%s: %w", op, err),
// а HTTP-слой определяет вид ошибки через KindOf и формирует единый ответ.
package apperr

import "errors"

// Kind вид ошибки, передаваемый клиенту в поле kind.
type Kind string

const (
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindInvalidRequest    Kind = "invalid_request"
	KindValidation        Kind = "validation"
	KindInvalidIdentifier Kind = "invalid_identifier"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindDuplicateVote     Kind = "duplicate_vote"
	KindPaymentProvider   Kind = "payment_provider"
	KindTooManyRequests   Kind = "too_many_requests"
	KindInternal          Kind = "internal"
)

var (
	// ErrUnauthorized запрос без валидного токена.
	ErrUnauthorized = errors.New("unauthorized access")
	// ErrForbidden email из токена не совпадает с email в пути.
	ErrForbidden = errors.New("forbidden access")
	// ErrInvalidInput некорректные параметры запроса.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidID идентификатор не является ObjectID.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrNotFound документ не найден.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists документ с таким естественным ключом уже есть.
	ErrAlreadyExists = errors.New("already exists")
	// ErrDuplicateVote пользователь уже голосовал за пост в этом направлении.
	ErrDuplicateVote = errors.New("duplicate vote")
	// ErrPaymentProvider ошибка внешнего платежного провайдера.
	ErrPaymentProvider = errors.New("payment provider error")
	// ErrTooManyRequests клиент превысил лимит запросов.
	ErrTooManyRequests = errors.New("too many requests")
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrUnauthorized, KindUnauthorized},
	{ErrForbidden, KindForbidden},
	{ErrInvalidInput, KindInvalidRequest},
	{ErrInvalidID, KindInvalidIdentifier},
	{ErrNotFound, KindNotFound},
	{ErrAlreadyExists, KindConflict},
	{ErrDuplicateVote, KindDuplicateVote},
	{ErrPaymentProvider, KindPaymentProvider},
	{ErrTooManyRequests, KindTooManyRequests},
}

// KindOf возвращает вид первой известной ошибки в цепочке err, иначе KindInternal.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
