package models

import "math"

// InsertResult результат вставки документа. При повторном создании
// InsertedID равен nil, а Message описывает причину.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   any    `json:"insertedId"`
	Message      string `json:"message,omitempty"`
}

// UpdateResult результат точечного обновления с upsert.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult результат удаления.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Page страница коллекции с общим количеством документов.
type Page[T any] struct {
	Count  int64 `json:"count"`
	Result []T   `json:"result"`
}

// NewPage возвращает страницу, Result никогда не равен nil.
func NewPage[T any](count int64, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Count: count, Result: items}
}

// Pagination окно выборки, номер страницы начинается с нуля.
type Pagination struct {
	Page int
	Size int
}

// Skip количество пропускаемых документов. Отрицательные значения дают 0,
// переполнение дает math.MaxInt64.
func (p Pagination) Skip() int64 {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if int64(p.Page) > math.MaxInt64/int64(p.Size) {
		return math.MaxInt64
	}
	return int64(p.Page) * int64(p.Size)
}
