package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Статусы заявки тренера.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
)

// TrainerFields поля профиля тренера, общие для заявки и одобренного профиля.
type TrainerFields struct {
	Name         string    `bson:"name" json:"name" validate:"required"`
	Email        string    `bson:"email" json:"email"`
	Age          int       `bson:"age,omitempty" json:"age,omitempty" validate:"omitempty,gt=0"`
	Skills       []string  `bson:"skills,omitempty" json:"skills,omitempty"`
	Availability []string  `bson:"availability,omitempty" json:"availability,omitempty"`
	AvailableAt  string    `bson:"availableTime,omitempty" json:"availableTime,omitempty"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Image        string    `bson:"image,omitempty" json:"image,omitempty" validate:"omitempty,url"`
	Experience   string    `bson:"experience,omitempty" json:"experience,omitempty"`
	JoiningDate  time.Time `bson:"joiningDate,omitempty" json:"joiningDate,omitzero"`
}

// TrainerApplication заявка пользователя на статус тренера.
type TrainerApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	TrainerFields `bson:",inline"`
	Status        string `bson:"status" json:"status"`
}

// TrainerPayment платежные данные одобренного тренера.
type TrainerPayment struct {
	Status string  `bson:"status" json:"status" validate:"required"`
	Price  float64 `bson:"price" json:"price" validate:"gte=0"`
}

// TrainerProfile одобренный публичный профиль тренера.
type TrainerProfile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	TrainerFields `bson:",inline"`
	Status        string          `bson:"status" json:"status"`
	Payment       *TrainerPayment `bson:"payment,omitempty" json:"payment,omitempty"`
}

// ProfileFromApplication строит одобренный профиль по полям заявки.
func ProfileFromApplication(app TrainerApplication) TrainerProfile {
	return TrainerProfile{
		TrainerFields: app.TrainerFields,
		Status:        ApplicationApproved,
	}
}
