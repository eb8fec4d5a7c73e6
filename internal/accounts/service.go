// Package accounts handles users, sessions and the stored resume of each user.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/logger"
)

type Service struct {
	repo     Repository
	newToken func() string
	logger   *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		newToken: uuid.NewString,
		logger:   logger.Named(log, "accounts"),
	}
}

// EnsureSeed creates the demo account unless it already exists.
func (s *Service) EnsureSeed(ctx context.Context) error {
	_, err := s.repo.CreateUser(ctx, SeedEmail, SeedPassword)
	if err != nil && !errors.Is(err, ErrUserExists) {
		return fmt.Errorf("seed user: %w", err)
	}
	return nil
}

// Register creates an account and opens a session for it.
func (s *Service) Register(ctx context.Context, email, password string) (string, User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", User{}, ErrMissingCredentials
	}

	user, err := s.repo.CreateUser(ctx, email, password)
	if err != nil {
		return "", User{}, err
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return "", User{}, err
	}

	s.logger.Info("user registered", zap.String(logger.FieldUserID, user.ID))
	return token, user, nil
}

// Login checks the password and opens a new session.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	user, err := s.repo.UserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrUserNotFound) {
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", User{}, err
	}

	if user.Password != password {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return "", User{}, err
	}

	s.logger.Debug("user logged in", zap.String(logger.FieldUserID, user.ID))
	return token, user, nil
}

// Logout forgets the session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, token)
}

// Authenticate resolves a bearer token to a user id.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	return s.repo.SessionUser(ctx, token)
}

// Verify resolves a token to its user.
func (s *Service) Verify(ctx context.Context, token string) (User, error) {
	userID, err := s.Authenticate(ctx, token)
	if err != nil {
		return User{}, err
	}
	return s.repo.UserByID(ctx, userID)
}

func (s *Service) User(ctx context.Context, userID string) (User, error) {
	return s.repo.UserByID(ctx, userID)
}

// SetResume stores resume and returns the one it replaced, if any.
func (s *Service) SetResume(ctx context.Context, userID string, resume Resume) (*Resume, error) {
	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetResume(ctx, userID, &resume); err != nil {
		return nil, err
	}

	s.logger.Info("resume stored",
		zap.String(logger.FieldUserID, userID),
		zap.String("filename", resume.Filename),
		zap.Int("text_length", len(resume.Text)),
	)

	return user.Resume, nil
}

// Resume returns ErrNoResume when the user has not uploaded one.
func (s *Service) Resume(ctx context.Context, userID string) (Resume, error) {
	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		return Resume{}, err
	}
	if user.Resume == nil {
		return Resume{}, ErrNoResume
	}
	return *user.Resume, nil
}

// DeleteResume removes the resume and returns it. Nil means there was none.
func (s *Service) DeleteResume(ctx context.Context, userID string) (*Resume, error) {
	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Resume == nil {
		return nil, nil
	}

	if err := s.repo.SetResume(ctx, userID, nil); err != nil {
		return nil, err
	}
	return user.Resume, nil
}

// ResumeText is the text matched against jobs. Empty when there is no resume.
func (s *Service) ResumeText(ctx context.Context, userID string) string {
	resume, err := s.Resume(ctx, userID)
	if err != nil {
		return ""
	}
	return resume.Text
}

func (s *Service) openSession(ctx context.Context, userID string) (string, error) {
	token := s.newToken()
	if err := s.repo.CreateSession(ctx, token, userID); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}
