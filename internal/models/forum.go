package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ForumPost пост форума со счетчиками голосов.
//
// Каждый email встречается не более одного раза в UpVotedBy и не более одного раза
// в DownVotedBy. DownVote хранится с отрицательным знаком.
type ForumPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitzero"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Author      string             `bson:"author,omitempty" json:"author,omitempty"`
	AuthorEmail string             `bson:"authorEmail" json:"authorEmail"`
	AuthorImage string             `bson:"authorImage,omitempty" json:"authorImage,omitempty"`
	AuthorRole  string             `bson:"authorRole,omitempty" json:"authorRole,omitempty"`
	PostedAt    time.Time          `bson:"postedAt" json:"postedAt"`
	UpVote      int                `bson:"upVote" json:"upVote"`
	DownVote    int                `bson:"downVote" json:"downVote"`
	UpVotedBy   []string           `bson:"upVotedBy" json:"upVotedBy"`
	DownVotedBy []string           `bson:"downVotedBy" json:"downVotedBy"`
}

// VoteRequest тело запроса голосования.
type VoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VoteDirection направление голоса.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)
