package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription подписка на рассылку. Email — естественный ключ.
type Subscription struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Email string             `bson:"email" json:"email" validate:"required,email"`
}

// Payment запись об оплате пакета тренера.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	Email         string             `bson:"email" json:"email" validate:"omitempty,email"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Price         float64            `bson:"price" json:"price" validate:"gt=0"`
	TransactionID string             `bson:"transactionId" json:"transactionId" validate:"required"`
	TrainerID     string             `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	Package       string             `bson:"package,omitempty" json:"package,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
}

// PaidMember пользователь, совершивший хотя бы одну оплату.
type PaidMember struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	Email   string             `bson:"email" json:"email"`
	Name    string             `bson:"name,omitempty" json:"name,omitempty"`
	Package string             `bson:"package,omitempty" json:"package,omitempty"`
	Since   time.Time          `bson:"since" json:"since"`
}

// PaymentIntentRequest тело запроса на создание платежного намерения.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// PaymentIntentResponse ответ с client secret провайдера.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
