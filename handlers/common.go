package handlers

import (
	"context"
	"log"
	"time"

	"classfeed/database"
	"classfeed/models"
	"classfeed/websocket"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var wsManager *websocket.Manager

// Role lookups hit the users collection on nearly every request, so cache
// them briefly. A role change takes effect within five minutes.
var roleCache = cache.New(5*time.Minute, 10*time.Minute)

// SetWebSocketManager sets the global WebSocket manager
func SetWebSocketManager(manager *websocket.Manager) {
	wsManager = manager
}

func broadcastSnapshot() {
	if wsManager != nil {
		go wsManager.BroadcastSnapshot()
	}
}

// lookupRole resolves a user's role from their record. A missing record or a
// failed lookup both read as Student, so elevated permissions always require
// a successful read of an elevated role.
func lookupRole(ctx context.Context, uid string) string {
	if role, found := roleCache.Get(uid); found {
		return role.(string)
	}

	userID, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return models.RoleStudent
	}

	var user models.User
	err = database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("Role lookup failed for %s: %v", uid, err)
		}
		return models.RoleStudent
	}

	role := user.Role
	if role != models.RoleInstructor && role != models.RoleTA {
		role = models.RoleStudent
	}
	roleCache.Set(uid, role, cache.DefaultExpiration)
	return role
}

// currentSession builds the session for the authenticated request, merging
// the role record into the identity the middleware extracted.
func currentSession(ctx context.Context, c *gin.Context) models.Session {
	uid := c.GetString("userId")
	return models.Session{
		UID:         uid,
		DisplayName: c.GetString("displayName"),
		Role:        lookupRole(ctx, uid),
	}
}
