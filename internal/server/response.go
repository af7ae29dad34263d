package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	svcErr "github.com/devmatch/devmatch/internal/errors"
)

// OK writes the standard success envelope.
func OK(c *gin.Context, message string, data any) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// Err maps a domain error to its status and client-safe message. The original
// error is attached to the gin context so the access log records it.
func Err(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(svcErr.HTTPStatus(err), gin.H{"message": svcErr.ClientMessage(err)})
}
