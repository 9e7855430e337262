package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root answers the liveness probe on "/".
func Root(c *gin.Context) {
	c.String(http.StatusOK, "api work")
}
