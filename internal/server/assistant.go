package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spigell/job-tracker/internal/assistant"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		abortWithError(c, errMessageRequired)
		return
	}

	userID := currentUser(c)
	history := s.deps.History.Get(userID)

	reply := s.deps.Assistant.Respond(c.Request.Context(), req.Message, history)
	s.deps.History.AppendAndTrim(userID, assistant.MaxHistory, req.Message, reply.Response)

	c.JSON(http.StatusOK, reply)
}

func (s *Server) clearChat(c *gin.Context) {
	s.deps.History.Clear(currentUser(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
