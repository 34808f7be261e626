package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recordkit/recordsvc/internal/configs"
	"github.com/recordkit/recordsvc/internal/users"
	"github.com/recordkit/recordsvc/pkg/logger"
)

// respondError maps service errors to a status and a {message} body.
// Anything unrecognised is a storage failure and is logged.
func respondError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, configs.ErrNotFound):
		status, msg = http.StatusNotFound, "Key not found"
	case errors.Is(err, configs.ErrKeyRequired):
		status, msg = http.StatusBadRequest, "Key is required"
	case errors.Is(err, users.ErrUserExists):
		status, msg = http.StatusBadRequest, "Username already exists"
	case errors.Is(err, users.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, users.ErrUserNotFound):
		status, msg = http.StatusNotFound, "User not found"
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"message": msg})
}

// bindJSON decodes the request body into v, answering 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}
