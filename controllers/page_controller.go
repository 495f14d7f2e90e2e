package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"poshchat/web"
)

// Index serves the chat UI.
func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML())
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
