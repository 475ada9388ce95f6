// Package response writes the JSON envelope shared by all handlers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onlyfin/service-social/pkg/apperror"
)

// Body is the envelope for every JSON response.
type Body struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes 200 with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// Created writes 201 with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// BadRequest writes 400 with message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Body{Success: false, Error: message})
}

// Error translates err into a status code and attaches it to the context so
// the logging middleware records the cause.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(apperror.HTTPStatus(err), Body{Success: false, Error: apperror.PublicMessage(err)})
}
