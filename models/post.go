package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Post struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID       primitive.ObjectID `bson:"authorId" json:"authorId"`
	AuthorName     string             `bson:"authorName" json:"authorName"` // display name snapshot at creation, never re-synced
	MediaURL       string             `bson:"mediaUrl" json:"mediaUrl"`
	AchievedText   string             `bson:"achievedText" json:"achievedText"`
	ReflectionText string             `bson:"reflectionText" json:"reflectionText"`
	ProgramTag     string             `bson:"programTag" json:"programTag"`
	CreatedAt      int64              `bson:"createdAt" json:"createdAt"`
	IsFeatured     bool               `bson:"isFeatured" json:"isFeatured"`
}
