package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hubinova/backend/pkg/apperr"
	"github.com/hubinova/backend/pkg/logger"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is returned by operations without a record to show, like delete.
type MessageBody struct {
	Message string `json:"message"`
}

// Success writes data as-is with 200 OK.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data as-is with 201 Created.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageBody{Message: msg})
}

// Error maps err onto its HTTP status. Typed errors with a public code expose
// their message; everything else is logged and answered with a generic 500.
func Error(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	meta := apperr.MetadataFor(code)

	if !meta.Public {
		logger.Error().
			Err(err).
			Str("code", string(code)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.AbortWithStatusJSON(meta.HTTPStatus, ErrorBody{Error: meta.PublicMessage})
		return
	}

	msg := meta.PublicMessage
	if typed := apperr.As(err); typed != nil && typed.Message() != "" {
		msg = typed.Message()
	}
	c.AbortWithStatusJSON(meta.HTTPStatus, ErrorBody{Error: msg})
}

func BadRequest(c *gin.Context, msg string) {
	Error(c, apperr.Validation(msg))
}

func Unauthorized(c *gin.Context, msg string) {
	Error(c, apperr.Unauthorized(msg))
}

func Forbidden(c *gin.Context, msg string) {
	Error(c, apperr.Forbidden(msg))
}

func NotFound(c *gin.Context, msg string) {
	Error(c, apperr.NotFound(msg))
}
