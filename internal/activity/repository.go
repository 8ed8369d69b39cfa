// internal/activity/repository.go

package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/database"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

// Repository persists saved and excluded candidates and the activity log
type Repository interface {
	Save(ctx context.Context, memberID, candidateID int64) error
	Exclude(ctx context.Context, memberID, candidateID int64) error
	RecordView(ctx context.Context, memberID, candidateID int64) error
	SavedMatches(ctx context.Context, memberID int64) ([]SavedMatch, error)
	Recent(ctx context.Context, memberID int64, limit int) ([]Activity, error)
	Statistics(ctx context.Context, memberID int64, since time.Time) (*Statistics, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type postgresRepository struct {
	db database.Provider
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db database.Provider) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Save(ctx context.Context, memberID, candidateID int64) error {
	return r.move(ctx, "saved_matches", "excluded_matches", ActionSave, memberID, candidateID)
}

func (r *postgresRepository) Exclude(ctx context.Context, memberID, candidateID int64) error {
	return r.move(ctx, "excluded_matches", "saved_matches", ActionExclude, memberID, candidateID)
}

// move adds the pair to one list, drops it from the other and logs the action in one transaction.
// Table names are fixed by the callers above.
func (r *postgresRepository) move(ctx context.Context, into, from string, action Action, memberID, candidateID int64) error {
	tx, err := r.db.DB().BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE member_id = $1 AND candidate_id = $2", from),
		memberID, candidateID)
	if err != nil {
		return translate(err)
	}

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (member_id, candidate_id, created_at)
			VALUES ($1, $2, NOW()) ON CONFLICT (member_id, candidate_id) DO NOTHING`, into),
		memberID, candidateID)
	if err != nil {
		return translate(err)
	}

	if err := insertActivity(ctx, tx, memberID, candidateID, action); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepository) RecordView(ctx context.Context, memberID, candidateID int64) error {
	_, err := r.db.DB().ExecContext(ctx, insertActivityQuery, memberID, candidateID, string(ActionView))
	return translate(err)
}

const insertActivityQuery = `INSERT INTO member_activities (member_id, candidate_id, action, created_at)
	VALUES ($1, $2, $3, NOW())`

func insertActivity(ctx context.Context, tx *sqlx.Tx, memberID, candidateID int64, action Action) error {
	_, err := tx.ExecContext(ctx, insertActivityQuery, memberID, candidateID, string(action))
	return translate(err)
}

func (r *postgresRepository) SavedMatches(ctx context.Context, memberID int64) ([]SavedMatch, error) {
	query := `
		SELECT candidate_id, created_at
		FROM saved_matches
		WHERE member_id = $1
		ORDER BY created_at DESC, candidate_id DESC
	`

	var saved []SavedMatch
	if err := r.db.DB().SelectContext(ctx, &saved, query, memberID); err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *postgresRepository) Recent(ctx context.Context, memberID int64, limit int) ([]Activity, error) {
	query := `
		SELECT id, member_id, candidate_id, action, created_at
		FROM member_activities
		WHERE member_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	var activities []Activity
	if err := r.db.DB().SelectContext(ctx, &activities, query, memberID, limit); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *postgresRepository) Statistics(ctx context.Context, memberID int64, since time.Time) (*Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM saved_matches WHERE member_id = $1) AS saved_matches,
			(SELECT COUNT(*) FROM excluded_matches WHERE member_id = $1) AS excluded_matches,
			(SELECT COUNT(DISTINCT candidate_id) FROM member_activities
				WHERE member_id = $1 AND action = 'view') AS viewed_matches,
			(SELECT COUNT(*) FROM member_activities
				WHERE member_id = $1 AND created_at >= $2) AS recent_activity
	`

	var stats Statistics
	if err := r.db.DB().GetContext(ctx, &stats, query, memberID, since); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *postgresRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.DB().ExecContext(ctx, `DELETE FROM member_activities WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// translate maps a foreign key failure to ErrUnknownMember
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return ErrUnknownMember
	}
	return err
}
