package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spigell/job-tracker/internal/jobs"
)

func (s *Server) listJobs(c *gin.Context) {
	ctx := c.Request.Context()

	listings, err := s.deps.Board.List(ctx, s.deps.Accounts.ResumeText(ctx, currentUser(c)), jobs.FromLookup(c.Query))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": listings, "total": len(listings)})
}

func (s *Server) bestMatches(c *gin.Context) {
	ctx := c.Request.Context()

	listings, err := s.deps.Board.BestMatches(ctx, s.deps.Accounts.ResumeText(ctx, currentUser(c)))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": listings, "total": len(listings)})
}
