package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/applications"
)

type statusUpdate struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (s *Server) listApplications(c *gin.Context) {
	apps, err := s.deps.Applications.List(c.Request.Context(), currentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (s *Server) createApplication(c *gin.Context) {
	ctx := c.Request.Context()

	var req applications.NewApplication
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, applications.ErrJobRequired)
		return
	}

	// fill in what the client left out from the feed
	if req.JobID != "" && (req.JobTitle == "" || req.Company == "") {
		if job, err := s.deps.Board.Job(ctx, req.JobID); err == nil {
			if req.JobTitle == "" {
				req.JobTitle = job.Title
			}
			if req.Company == "" {
				req.Company = job.Company
			}
		} else {
			s.logger.Debug("job lookup for application failed", zap.String("job_id", req.JobID), zap.Error(err))
		}
	}

	app, err := s.deps.Applications.Create(ctx, currentUser(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

func (s *Server) updateApplication(c *gin.Context) {
	var req statusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, applications.ErrInvalidStatus)
		return
	}

	app, err := s.deps.Applications.UpdateStatus(c.Request.Context(), currentUser(c), c.Param("id"), req.Status, req.Note)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

func (s *Server) applicationByJob(c *gin.Context) {
	app, err := s.deps.Applications.GetByJob(c.Request.Context(), currentUser(c), c.Param("jobId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}
