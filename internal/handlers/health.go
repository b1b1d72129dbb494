package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index sends the user to their project list.
func Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/projects")
}

// Health reports that the server is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
