package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spigell/job-tracker/internal/applications"
)

// ApplicationRepository implements applications.Repository.
type ApplicationRepository struct {
	db *sql.DB
}

var _ applications.Repository = (*ApplicationRepository)(nil)

const applicationColumns = `id, user_id, job_id, job_title, company, applied_via, status, applied_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app applications.Application) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM applications WHERE user_id = ? AND job_id = ?`,
			app.UserID, app.JobID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			return applications.ErrAlreadyApplied
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			app.ID, app.UserID, app.JobID, app.JobTitle, app.Company, app.AppliedVia,
			string(app.Status), formatTime(app.AppliedAt), formatTime(app.UpdatedAt))
		if err != nil {
			return err
		}

		for i, entry := range app.Timeline {
			if err := insertEntry(ctx, tx, app.ID, i+1, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ApplicationRepository) List(ctx context.Context, userID string) ([]applications.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, err
	}

	out := make([]applications.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// timelines are loaded after the cursor is closed: the pool holds one connection
	for i := range out {
		if out[i].Timeline, err = loadTimeline(ctx, r.db, out[i].ID); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (r *ApplicationRepository) Get(ctx context.Context, userID, id string) (applications.Application, error) {
	return getOne(ctx, r.db, `WHERE user_id = ? AND id = ?`, userID, id)
}

func (r *ApplicationRepository) GetByJob(ctx context.Context, userID, jobID string) (applications.Application, error) {
	return getOne(ctx, r.db, `WHERE user_id = ? AND job_id = ?`, userID, jobID)
}

func (r *ApplicationRepository) AppendTimeline(ctx context.Context, userID, id string, entry applications.TimelineEntry) (applications.Application, error) {
	var app applications.Application

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var seq int
		err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(t.seq), 0) FROM applications a
			LEFT JOIN timeline t ON t.application_id = a.id
			WHERE a.user_id = ? AND a.id = ?
			GROUP BY a.id`, userID, id).Scan(&seq)
		if errors.Is(err, sql.ErrNoRows) {
			return applications.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := insertEntry(ctx, tx, id, seq+1, entry); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `UPDATE applications SET status = ?, updated_at = ? WHERE id = ?`,
			string(entry.Status), formatTime(entry.Date), id)
		if err != nil {
			return err
		}

		app, err = getOne(ctx, tx, `WHERE user_id = ? AND id = ?`, userID, id)
		return err
	})
	if err != nil {
		return applications.Application{}, err
	}

	return app, nil
}

func getOne(ctx context.Context, q querier, where string, args ...any) (applications.Application, error) {
	row := q.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications `+where, args...)

	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return applications.Application{}, applications.ErrNotFound
	}
	if err != nil {
		return applications.Application{}, err
	}

	if app.Timeline, err = loadTimeline(ctx, q, app.ID); err != nil {
		return applications.Application{}, err
	}
	return app, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(s scanner) (applications.Application, error) {
	var (
		app                  applications.Application
		status               string
		appliedAt, updatedAt string
	)

	err := s.Scan(&app.ID, &app.UserID, &app.JobID, &app.JobTitle, &app.Company, &app.AppliedVia,
		&status, &appliedAt, &updatedAt)
	if err != nil {
		return applications.Application{}, err
	}

	app.Status = applications.Status(status)
	if app.AppliedAt, err = parseTime(appliedAt); err != nil {
		return applications.Application{}, err
	}
	if app.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return applications.Application{}, err
	}
	return app, nil
}

func loadTimeline(ctx context.Context, q querier, appID string) ([]applications.TimelineEntry, error) {
	rows, err := q.QueryContext(ctx, `SELECT status, date, note FROM timeline
		WHERE application_id = ? ORDER BY seq`, appID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timeline []applications.TimelineEntry
	for rows.Next() {
		var status, date, note string
		if err := rows.Scan(&status, &date, &note); err != nil {
			return nil, err
		}

		at, err := parseTime(date)
		if err != nil {
			return nil, err
		}
		timeline = append(timeline, applications.TimelineEntry{Status: applications.Status(status), Date: at, Note: note})
	}

	return timeline, rows.Err()
}

func insertEntry(ctx context.Context, tx *sql.Tx, appID string, seq int, entry applications.TimelineEntry) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO timeline (application_id, seq, status, date, note) VALUES (?, ?, ?, ?, ?)`,
		appID, seq, string(entry.Status), formatTime(entry.Date), entry.Note)
	return err
}
