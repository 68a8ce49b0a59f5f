package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResponseData is the envelope every endpoint answers with. Data is set on
// success, Error on failure; the HTTP status is repeated in the body so
// clients logging the payload alone can still tell what happened.
type ResponseData struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}, errorMessage string) {
	c.JSON(status, ResponseData{
		Status:  status,
		Message: message,
		Data:    data,
		Error:   errorMessage,
	})
}

// Success answers 200 with a payload.
func Success(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, message, data, "")
}

// Created answers 201 with the created resource.
func Created(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusCreated, message, data, "")
}

// Error answers an arbitrary failure status.
func Error(c *gin.Context, statusCode int, errorMessage string) {
	respond(c, statusCode, "An error occurred", nil, errorMessage)
}

// BadRequest answers 400.
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, errorMessage)
}

// Unauthorized answers 401.
func Unauthorized(c *gin.Context, errorMessage string) {
	Error(c, http.StatusUnauthorized, errorMessage)
}

// Forbidden answers 403.
func Forbidden(c *gin.Context, errorMessage string) {
	Error(c, http.StatusForbidden, errorMessage)
}

// NotFound answers 404.
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// InternalServerError answers 500.
func InternalServerError(c *gin.Context, errorMessage string) {
	Error(c, http.StatusInternalServerError, errorMessage)
}
