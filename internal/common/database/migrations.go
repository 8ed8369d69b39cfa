// internal/common/database/migrations.go
// Idempotent schema setup for local and test databases

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// migrations run in order; every statement must be safe to repeat
var migrations = []string{
	// Members are owned by the intake system; this table definition only matters for fresh databases
	`CREATE TABLE IF NOT EXISTS members (
		id BIGSERIAL PRIMARY KEY,
		city TEXT,
		state TEXT,
		zip TEXT,
		gender TEXT,
		gender_ident TEXT,
		orientation TEXT,
		age TEXT,
		ethnicity TEXT,
		religion TEXT,
		height TEXT,
		have_kids TEXT,
		occupation TEXT,
		education TEXT,
		hobbies TEXT,
		about_you TEXT,
		personality TEXT,
		age_range_min INTEGER,
		age_range_max INTEGER,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS saved_matches (
		member_id BIGINT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		candidate_id BIGINT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (member_id, candidate_id)
	)`,

	`CREATE TABLE IF NOT EXISTS excluded_matches (
		member_id BIGINT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		candidate_id BIGINT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (member_id, candidate_id)
	)`,

	`CREATE TABLE IF NOT EXISTS member_activities (
		id BIGSERIAL PRIMARY KEY,
		member_id BIGINT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		candidate_id BIGINT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		action VARCHAR(20) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_members_gender_orientation ON members (lower(btrim(gender)), lower(btrim(orientation)))`,
	`CREATE INDEX IF NOT EXISTS idx_members_created_at ON members (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_saved_matches_member ON saved_matches (member_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_excluded_matches_member ON excluded_matches (member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_member_activities_member ON member_activities (member_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_member_activities_created ON member_activities (created_at)`,
}

// RunMigrations executes the schema statements in order
func RunMigrations(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	for i, migration := range migrations {
		logger.Debug("running migration", zap.Int("step", i+1), zap.Int("total", len(migrations)))
		if _, err := db.ExecContext(ctx, migration); err != nil {
			// Concurrent replicas can race on CREATE INDEX
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("migration %d failed: %w", i+1, err)
			}
			logger.Info("migration skipped, already exists", zap.Int("step", i+1))
		}
	}
	return nil
}
