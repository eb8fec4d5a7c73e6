package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and password are required")
		return
	}

	token, user, err := s.deps.Accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user.Profile()})
}

func (s *Server) login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid credentials")
		return
	}

	token, user, err := s.deps.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user.Profile()})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.deps.Accounts.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) verify(c *gin.Context) {
	user, err := s.deps.Accounts.Verify(c.Request.Context(), bearerToken(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Profile()})
}
