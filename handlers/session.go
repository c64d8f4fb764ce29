package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetMe returns the caller's session document: identity from the token plus
// the role merged in from the user record.
func GetMe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session := currentSession(ctx, c)
	c.JSON(http.StatusOK, session)
}
