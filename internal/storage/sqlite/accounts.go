package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/spigell/job-tracker/internal/accounts"
)

// AccountRepository implements accounts.Repository.
type AccountRepository struct {
	db *sql.DB
}

var _ accounts.Repository = (*AccountRepository)(nil)

const userColumns = `id, email, password, resume_filename, resume_path, resume_text, resume_uploaded_at`

func (r *AccountRepository) CreateUser(ctx context.Context, email, password string) (accounts.User, error) {
	var user accounts.User

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&exists); err != nil {
			return err
		}
		if exists > 0 {
			return accounts.ErrUserExists
		}

		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users`).Scan(&count); err != nil {
			return err
		}

		user = accounts.User{ID: strconv.Itoa(count + 1), Email: email, Password: password}
		_, err := tx.ExecContext(ctx, `INSERT INTO users (id, email, password) VALUES (?, ?, ?)`, user.ID, user.Email, user.Password)
		return err
	})
	if err != nil {
		return accounts.User{}, err
	}

	return user, nil
}

func (r *AccountRepository) UserByEmail(ctx context.Context, email string) (accounts.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *AccountRepository) UserByID(ctx context.Context, id string) (accounts.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *AccountRepository) SetResume(ctx context.Context, userID string, resume *accounts.Resume) error {
	var (
		res sql.Result
		err error
	)

	if resume == nil {
		res, err = r.db.ExecContext(ctx, `UPDATE users SET resume_filename = NULL, resume_path = NULL,
			resume_text = NULL, resume_uploaded_at = NULL WHERE id = ?`, userID)
	} else {
		res, err = r.db.ExecContext(ctx, `UPDATE users SET resume_filename = ?, resume_path = ?,
			resume_text = ?, resume_uploaded_at = ? WHERE id = ?`,
			resume.Filename, resume.Path, resume.Text, formatTime(resume.UploadedAt), userID)
	}
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return accounts.ErrUserNotFound
	}
	return nil
}

func (r *AccountRepository) CreateSession(ctx context.Context, token, userID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO sessions (token, user_id) VALUES (?, ?)`, token, userID)
	return err
}

func (r *AccountRepository) SessionUser(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM sessions WHERE token = ?`, token).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", accounts.ErrUnauthorized
	}
	return userID, err
}

func (r *AccountRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func scanUser(row *sql.Row) (accounts.User, error) {
	var (
		user                             accounts.User
		filename, path, text, uploadedAt sql.NullString
	)

	err := row.Scan(&user.ID, &user.Email, &user.Password, &filename, &path, &text, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return accounts.User{}, accounts.ErrUserNotFound
	}
	if err != nil {
		return accounts.User{}, err
	}

	if filename.Valid {
		resume := &accounts.Resume{Filename: filename.String, Path: path.String, Text: text.String}
		if uploadedAt.Valid {
			if resume.UploadedAt, err = parseTime(uploadedAt.String); err != nil {
				return accounts.User{}, err
			}
		}
		user.Resume = resume
	}

	return user, nil
}
