package accounts

import (
	"context"
	"strconv"
	"sync"
)

// Repository stores users and sessions.
type Repository interface {
	// CreateUser assigns the next id and returns ErrUserExists for a taken email.
	CreateUser(ctx context.Context, email, password string) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id string) (User, error)
	// SetResume replaces the user's resume. A nil resume removes it.
	SetResume(ctx context.Context, userID string, resume *Resume) error

	CreateSession(ctx context.Context, token, userID string) error
	SessionUser(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

// MemoryRepository keeps accounts in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	users    []User
	sessions map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]string)}
}

func (r *MemoryRepository) CreateUser(_ context.Context, email, password string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return User{}, ErrUserExists
		}
	}

	user := User{ID: strconv.Itoa(len(r.users) + 1), Email: email, Password: password}
	r.users = append(r.users, user)
	return user, nil
}

func (r *MemoryRepository) UserByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *MemoryRepository) UserByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *MemoryRepository) SetResume(_ context.Context, userID string, resume *Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == userID {
			if resume != nil {
				cp := *resume
				resume = &cp
			}
			r.users[i].Resume = resume
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *MemoryRepository) CreateSession(_ context.Context, token, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[token] = userID
	return nil
}

func (r *MemoryRepository) SessionUser(_ context.Context, token string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.sessions[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return userID, nil
}

func (r *MemoryRepository) DeleteSession(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	return nil
}

func copyUser(u User) User {
	if u.Resume != nil {
		cp := *u.Resume
		u.Resume = &cp
	}
	return u
}
