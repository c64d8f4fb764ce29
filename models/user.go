package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role gates edit/delete beyond plain authorship. Instructor and TA may
// moderate any post; Student may only touch their own.
const (
	RoleStudent    = "Student"
	RoleInstructor = "Instructor"
	RoleTA         = "TA"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	Role         string             `bson:"role,omitempty" json:"role"`
	AuthProvider string             `bson:"authProvider" json:"authProvider"` // email or bootstrap
	CreatedAt    int64              `bson:"createdAt" json:"createdAt"`
	LastSeen     int64              `bson:"lastSeen" json:"lastSeen"`
}

// Session is the signed-in identity plus its resolved role. UID is the hex
// form of the user's ObjectID, matching what the JWT claims carry.
type Session struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}
