package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/accounts"
	"github.com/spigell/job-tracker/internal/resume"
)

const uploadField = "file"

func (s *Server) uploadResume(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)

	header, err := c.FormFile(uploadField)
	if err != nil {
		abortWithError(c, resume.ErrNoFile)
		return
	}
	if header.Size > s.deps.Resumes.MaxSize() {
		abortWithError(c, resume.ErrTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer file.Close()

	stored, err := s.deps.Resumes.Save(ctx, userID, header.Filename, file)
	if err != nil {
		if errors.Is(err, resume.ErrUnsupportedFile) || errors.Is(err, resume.ErrTooLarge) || errors.Is(err, resume.ErrNoFile) {
			abortWithError(c, err)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload resume: " + err.Error()})
		return
	}

	previous, err := s.deps.Accounts.SetResume(ctx, userID, accounts.Resume{
		Filename:   stored.Filename,
		Path:       stored.Path,
		Text:       stored.Text,
		UploadedAt: stored.UploadedAt,
	})
	if err != nil {
		_ = s.deps.Resumes.Remove(stored.Path)
		abortWithError(c, err)
		return
	}
	s.removeFile(previous)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"filename":   stored.Filename,
		"uploadedAt": stored.UploadedAt,
	})
}

func (s *Server) getResume(c *gin.Context) {
	r, err := s.deps.Accounts.Resume(c.Request.Context(), currentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) deleteResume(c *gin.Context) {
	removed, err := s.deps.Accounts.DeleteResume(c.Request.Context(), currentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	s.removeFile(removed)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) removeFile(r *accounts.Resume) {
	if r == nil {
		return
	}
	if err := s.deps.Resumes.Remove(r.Path); err != nil {
		s.logger.Warn("removing resume file failed", zap.String("path", r.Path), zap.Error(err))
	}
}
