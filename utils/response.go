package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, success bool, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard 200 response.
func Success(ctx *gin.Context, message string, data interface{}) {
	Respond(ctx, http.StatusOK, true, message, data)
}

// Created returns a standard 201 response.
func Created(ctx *gin.Context, message string, data interface{}) {
	Respond(ctx, http.StatusCreated, true, message, data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, message string) {
	Respond(ctx, status, false, message, nil)
}
