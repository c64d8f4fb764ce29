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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetFeatured lists the posts flagged for the featured surface, newest
// first.
func GetFeatured(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := database.Posts.Find(ctx, bson.M{"isFeatured": true}, opts)
	if err != nil {
		log.Printf("GetFeatured error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		log.Printf("GetFeatured decode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": feed.Cards(posts)})
}

type SetFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// SetFeatured toggles a post's featured flag. Moderators only; authorship
// does not qualify here, unlike edit and delete. The create and edit paths
// never touch this flag.
func SetFeatured(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if !feed.IsModerator(currentSession(ctx, c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only instructors and TAs can feature posts"})
		return
	}

	result, err := database.Posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"isFeatured": *req.Featured}},
	)
	if err != nil {
		log.Printf("SetFeatured error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	// UpdateOne reports a missing document through MatchedCount, not an error
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	broadcastSnapshot()

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}
