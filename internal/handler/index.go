package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index GET /
func Index(c *gin.Context) {
	render(c, http.StatusOK, "index.html", nil)
}
