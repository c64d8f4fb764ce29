package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"classfeed/database"
	"classfeed/feed"
	"classfeed/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRequest carries the four user-editable fields. authorId, authorName
// and createdAt are write-once and never accepted from the client.
type PostRequest struct {
	MediaURL       string `json:"mediaUrl"`
	AchievedText   string `json:"achievedText"`
	ReflectionText string `json:"reflectionText"`
	ProgramTag     string `json:"programTag"`
}

func (r PostRequest) complete() bool {
	return r.MediaURL != "" && r.AchievedText != "" && r.ReflectionText != "" && r.ProgramTag != ""
}

// buildPost assembles a new record from the session identity and the
// editable fields. The author name is snapshotted here, falling back to
// Anonymous when the account has no display name; the featured flag always
// starts false.
func buildPost(authorID primitive.ObjectID, displayName string, req PostRequest) models.Post {
	authorName := displayName
	if authorName == "" {
		authorName = "Anonymous"
	}
	return models.Post{
		ID:             primitive.NewObjectID(),
		AuthorID:       authorID,
		AuthorName:     authorName,
		MediaURL:       req.MediaURL,
		AchievedText:   req.AchievedText,
		ReflectionText: req.ReflectionText,
		ProgramTag:     req.ProgramTag,
		CreatedAt:      time.Now().Unix(),
		IsFeatured:     false,
	}
}

// PostsSnapshot loads the full collection newest-first. It is the single
// query behind the HTTP feed and every WebSocket snapshot frame.
func PostsSnapshot() ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// _id breaks ties between posts created in the same second, keeping the
	// order stable across snapshots
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := database.Posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func parseFilter(c *gin.Context) *feed.ActiveFilter {
	filterType := c.Query("filterType")
	filterValue := c.Query("filterValue")
	if filterType == "" || filterValue == "" {
		return nil
	}
	return &feed.ActiveFilter{Type: feed.FilterType(filterType), Value: filterValue}
}

// GetFeed returns the card grid, optionally narrowed by a single
// author/tag filter. total is the unfiltered count so a client can tell an
// empty collection apart from an empty filtered result.
func GetFeed(c *gin.Context) {
	posts, err := PostsSnapshot()
	if err != nil {
		log.Printf("GetFeed error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	filtered := feed.Filter(posts, parseFilter(c))

	c.JSON(http.StatusOK, gin.H{
		"posts":       feed.Cards(filtered),
		"total":       len(posts),
		"filteredOut": len(posts) - len(filtered),
	})
}

// GetFilters returns the distinct author and tag values a client may filter
// by, in first-seen feed order.
func GetFilters(c *gin.Context) {
	posts, err := PostsSnapshot()
	if err != nil {
		log.Printf("GetFilters error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, feed.Options(posts))
}

// GetPost returns the full record for detail view, with the media
// classification and whether the caller may edit or delete it.
func GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("GetPost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	session := currentSession(ctx, c)

	c.JSON(http.StatusOK, gin.H{
		"post":      post,
		"mediaKind": feed.MediaKind(post.MediaURL),
		"canModify": feed.CanModify(session, post),
	})
}

func CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}

	userIDStr := c.GetString("userId")
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post := buildPost(userID, c.GetString("displayName"), req)

	_, err = database.Posts.InsertOne(ctx, post)
	if err != nil {
		log.Printf("CreatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	broadcastSnapshot()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"postId":  post.ID.Hex(),
	})
}

// UpdatePost applies a partial update of exactly the four editable fields.
// Write-once fields and the featured flag cannot be reached through this
// path. Last write wins; there is no version check.
func UpdatePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("UpdatePost fetch error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	if !feed.CanModify(currentSession(ctx, c), post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to edit this post"})
		return
	}

	update := bson.M{"$set": bson.M{
		"mediaUrl":       req.MediaURL,
		"achievedText":   req.AchievedText,
		"reflectionText": req.ReflectionText,
		"programTag":     req.ProgramTag,
	}}

	_, err = database.Posts.UpdateOne(ctx, bson.M{"_id": postID}, update)
	if err != nil {
		log.Printf("UpdatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	broadcastSnapshot()

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

func DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("DeletePost fetch error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	if !feed.CanModify(currentSession(ctx, c), post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this post"})
		return
	}

	_, err = database.Posts.DeleteOne(ctx, bson.M{"_id": postID})
	if err != nil {
		log.Printf("DeletePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	broadcastSnapshot()

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
