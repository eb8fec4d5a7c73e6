package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spigell/job-tracker/internal/accounts"
	"github.com/spigell/job-tracker/internal/applications"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/resume"
)

var errMessageRequired = errors.New("message is required")

type apiError struct {
	err     error
	status  int
	message string
}

var apiErrors = []apiError{
	{accounts.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{accounts.ErrUserNotFound, http.StatusUnauthorized, "User not found"},
	{accounts.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{accounts.ErrUserExists, http.StatusBadRequest, "User already exists"},
	{accounts.ErrMissingCredentials, http.StatusBadRequest, "Email and password are required"},
	{accounts.ErrNoResume, http.StatusNotFound, "No resume found"},
	{applications.ErrAlreadyApplied, http.StatusBadRequest, "Already applied to this job"},
	{applications.ErrNotFound, http.StatusNotFound, "Application not found"},
	{applications.ErrInvalidStatus, http.StatusBadRequest, "Invalid status"},
	{applications.ErrJobRequired, http.StatusBadRequest, "Job id is required"},
	{jobs.ErrNotFound, http.StatusNotFound, "Job not found"},
	{resume.ErrNoFile, http.StatusBadRequest, "No file uploaded"},
	{resume.ErrUnsupportedFile, http.StatusBadRequest, "Only PDF and TXT files are supported"},
	{resume.ErrTooLarge, http.StatusRequestEntityTooLarge, "File is too large"},
	{errMessageRequired, http.StatusBadRequest, "Message is required"},
}

// abortWithError maps known errors to their status and message. Anything else is a 500.
func abortWithError(c *gin.Context, err error) {
	for _, e := range apiErrors {
		if errors.Is(err, e.err) {
			c.AbortWithStatusJSON(e.status, gin.H{"error": e.message})
			return
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
