package feed

import (
	"testing"

	"classfeed/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanModifyAuthor(t *testing.T) {
	authorID := primitive.NewObjectID()
	post := models.Post{AuthorID: authorID}

	session := models.Session{UID: authorID.Hex(), Role: models.RoleStudent}
	assert.True(t, CanModify(session, post))
}

func TestCanModifyModerators(t *testing.T) {
	post := models.Post{AuthorID: primitive.NewObjectID()}

	for _, role := range []string{models.RoleInstructor, models.RoleTA} {
		session := models.Session{UID: primitive.NewObjectID().Hex(), Role: role}
		assert.True(t, CanModify(session, post), "role %s", role)
	}
}

func TestCanModifyStudentOtherAuthor(t *testing.T) {
	post := models.Post{AuthorID: primitive.NewObjectID()}
	session := models.Session{UID: primitive.NewObjectID().Hex(), Role: models.RoleStudent}

	assert.False(t, CanModify(session, post))
}

func TestCanModifySignedOut(t *testing.T) {
	post := models.Post{AuthorID: primitive.NewObjectID()}
	assert.False(t, CanModify(models.Session{}, post))
}

func TestIsModerator(t *testing.T) {
	assert.True(t, IsModerator(models.Session{Role: models.RoleInstructor}))
	assert.True(t, IsModerator(models.Session{Role: models.RoleTA}))
	assert.False(t, IsModerator(models.Session{Role: models.RoleStudent}))
	assert.False(t, IsModerator(models.Session{}))
}
