package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/placementlabs/cpms/internal/pipeline"
)

// fail maps a pipeline error onto the API's response envelope. Unknown
// errors are logged and hidden behind a generic 500.
func (s *Server) fail(c *gin.Context, err error) {
	var elig *pipeline.EligibilityError
	switch {
	case errors.As(err, &elig):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "You are not eligible for this drive.",
			"reasons": elig.Reasons,
		})
	case errors.Is(err, pipeline.ErrStudentNotFound),
		errors.Is(err, pipeline.ErrCompanyNotFound),
		errors.Is(err, pipeline.ErrRoundNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, pipeline.ErrAlreadyRegistered),
		errors.Is(err, pipeline.ErrRoundNumberTaken),
		errors.Is(err, pipeline.ErrDriveClosed):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, pipeline.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		s.log.WithError(err).Error("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}

// badRequest reports a binding/validation failure.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  err.Error(),
	})
}
