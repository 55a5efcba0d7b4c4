package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ResultOK           = 0
	ResultError        = 1
	ResultUnauthorized = 10
)

type envelope struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func writeOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{ResultCode: ResultOK, Data: data})
}

// writeResult answers with HTTP 200 and a non-zero result code: the request
// was understood but refused.
func writeResult(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, envelope{ResultCode: code, Message: msg})
}

func writeStatus(c *gin.Context, status int, code int, msg string) {
	c.AbortWithStatusJSON(status, envelope{ResultCode: code, Message: msg})
}

func writeUnauthorized(c *gin.Context, msg string) {
	writeStatus(c, http.StatusUnauthorized, ResultUnauthorized, msg)
}
