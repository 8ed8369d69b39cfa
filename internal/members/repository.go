// internal/members/repository.go

package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/database"
)

// Repository reads member records. Members are never written by this service.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Member, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*Member, error)
	List(ctx context.Context, limit, offset int) ([]*Member, error)
	Count(ctx context.Context) (int, error)
	// Find returns members satisfying filter, newest first. limit <= 0 means no limit.
	Find(ctx context.Context, filter Filter, limit int) ([]*Member, error)
}

// postgresRepository implements Repository using PostgreSQL
type postgresRepository struct {
	db database.Provider
}

// NewPostgresRepository creates a new PostgreSQL repository.
// The pool is resolved per call so it follows database.Manager reloads.
func NewPostgresRepository(db database.Provider) Repository {
	return &postgresRepository{db: db}
}

// GetByID retrieves a member by ID
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Member, error) {
	var member Member
	query := `SELECT ` + memberColumns + ` FROM members m WHERE m.id = $1`

	if err := r.db.DB().GetContext(ctx, &member, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

// GetByIDs loads several members in one round trip; missing ids are simply absent
func (r *postgresRepository) GetByIDs(ctx context.Context, ids []int64) ([]*Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	db := r.db.DB()
	query, args, err := sqlx.In(`SELECT `+memberColumns+` FROM members m WHERE m.id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build member batch query: %w", err)
	}

	var result []*Member
	if err := db.SelectContext(ctx, &result, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	return result, nil
}

// List pages through members by id
func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members m ORDER BY m.id ASC LIMIT $1 OFFSET $2`

	var result []*Member
	if err := r.db.DB().SelectContext(ctx, &result, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return result, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.DB().GetContext(ctx, &total, `SELECT COUNT(*) FROM members`); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return total, nil
}

// Find runs a predicate filter. Every value travels as a bind parameter.
func (r *postgresRepository) Find(ctx context.Context, filter Filter, limit int) ([]*Member, error) {
	where, args, err := filter.Where()
	if err != nil {
		return nil, fmt.Errorf("invalid member filter: %w", err)
	}

	query := `SELECT ` + memberColumns + ` FROM members m WHERE ` + where +
		` ORDER BY m.created_at DESC, m.id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	query, args, err = sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to expand member filter: %w", err)
	}

	db := r.db.DB()
	var result []*Member
	if err := db.SelectContext(ctx, &result, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to find members: %w", err)
	}

	return result, nil
}
