package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Class карточка фитнес-занятия.
type Class struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty" validate:"omitempty,url"`
	Trainer     string             `bson:"trainer,omitempty" json:"trainer,omitempty"`
	Schedule    []string           `bson:"schedule,omitempty" json:"schedule,omitempty"`
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Level       string             `bson:"level,omitempty" json:"level,omitempty"`
}

// GalleryImage изображение галереи.
type GalleryImage struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	Title   string             `bson:"title,omitempty" json:"title,omitempty"`
	Image   string             `bson:"image" json:"image"`
	Caption string             `bson:"caption,omitempty" json:"caption,omitempty"`
}
