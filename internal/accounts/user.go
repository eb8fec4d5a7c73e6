package accounts

import (
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrNoResume           = errors.New("no resume found")
)

// Seed account available on every fresh store.
const (
	SeedEmail    = "test@gmail.com"
	SeedPassword = "test@123"
)

// User is an account. Passwords are stored as given; this is a demo service.
type User struct {
	ID       string
	Email    string
	Password string
	Resume   *Resume
}

// Resume is the user's uploaded resume with its extracted text.
type Resume struct {
	Filename   string    `json:"filename"`
	Path       string    `json:"-"`
	Text       string    `json:"-"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Profile is the public view of a user.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	HasResume bool   `json:"hasResume"`
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, HasResume: u.Resume != nil}
}
