// Package models содержит доменные структуры платформы, хранимые в MongoDB,
// а также типы запросов и ответов, разделяемые HTTP-слоем и сервисами.
package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusTrainer значение статуса пользователя, одобренного тренером.
const StatusTrainer = "Trainer"

// NormalizeEmail приводит email к виду, в котором он хранится и сравнивается:
// без пробелов по краям и в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User учетная запись пользователя. Email — естественный ключ.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Status   string             `bson:"status,omitempty" json:"status,omitempty"`
}

// UserProfileUpdate поля профиля, которые пользователь может изменить сам.
type UserProfileUpdate struct {
	Name     string `json:"name" validate:"required"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}

// Membership флаги пользователя для клиента.
type Membership struct {
	Email   string `json:"email"`
	Trainer bool   `json:"trainer"`
	Member  bool   `json:"member"`
}
