package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The validation and identity checks run before any database call, so these
// tests exercise the rejection paths with no Mongo behind the handlers.

func postTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/posts", CreatePost)
	router.PUT("/posts/:id", UpdatePost)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePostRejectsMissingField(t *testing.T) {
	router := postTestRouter()

	// programTag left empty
	body := `{"mediaUrl":"http://x/a.png","achievedText":"Shipped v1","reflectionText":"Learned X","programTag":""}`
	w := postJSON(t, router, "POST", "/posts", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required.")
}

func TestCreatePostRejectsEachEmptyField(t *testing.T) {
	router := postTestRouter()

	bodies := []string{
		`{"mediaUrl":"","achievedText":"a","reflectionText":"b","programTag":"c"}`,
		`{"mediaUrl":"http://x/a.png","achievedText":"","reflectionText":"b","programTag":"c"}`,
		`{"mediaUrl":"http://x/a.png","achievedText":"a","reflectionText":"","programTag":"c"}`,
		`{}`,
	}
	for i, body := range bodies {
		w := postJSON(t, router, "POST", "/posts", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %d", i)
		assert.Contains(t, w.Body.String(), "All fields are required.", "body %d", i)
	}
}

func TestCreatePostRejectsWithoutSession(t *testing.T) {
	router := postTestRouter()

	// All fields present but no identity in the context: rejected before
	// anything is written
	body := `{"mediaUrl":"http://x/a.png","achievedText":"Shipped v1","reflectionText":"Learned X","programTag":"TeamB"}`
	w := postJSON(t, router, "POST", "/posts", body)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePostRejectsMissingField(t *testing.T) {
	router := postTestRouter()

	body := `{"mediaUrl":"http://x/a.png","achievedText":"Shipped v1","reflectionText":"","programTag":"TeamB"}`
	w := postJSON(t, router, "PUT", "/posts/"+primitive.NewObjectID().Hex(), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required.")
}

func TestUpdatePostRejectsBadID(t *testing.T) {
	router := postTestRouter()

	w := postJSON(t, router, "PUT", "/posts/not-an-id", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid post ID")
}

func TestBuildPostAnonymousFallback(t *testing.T) {
	req := PostRequest{
		MediaURL:       "http://x/a.png",
		AchievedText:   "Shipped v1",
		ReflectionText: "Learned X",
		ProgramTag:     "TeamB",
	}

	authorID := primitive.NewObjectID()
	post := buildPost(authorID, "", req)

	assert.Equal(t, "Anonymous", post.AuthorName)
	assert.Equal(t, authorID, post.AuthorID)
	assert.False(t, post.IsFeatured)
	assert.NotZero(t, post.CreatedAt)
	assert.False(t, post.ID.IsZero())
}

func TestBuildPostSnapshotsDisplayName(t *testing.T) {
	post := buildPost(primitive.NewObjectID(), "Ada", PostRequest{
		MediaURL:       "http://x/a.png",
		AchievedText:   "Shipped v1",
		ReflectionText: "Learned X",
		ProgramTag:     "TeamB",
	})

	assert.Equal(t, "Ada", post.AuthorName)
	assert.Equal(t, "http://x/a.png", post.MediaURL)
	assert.Equal(t, "TeamB", post.ProgramTag)
}
