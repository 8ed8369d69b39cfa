// internal/activity/service.go

package activity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/apperr"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

var (
	ErrUnknownMember = errors.New("member or candidate does not exist")
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
	// RecentWindow bounds the recentActivity statistic
	RecentWindow = 7 * 24 * time.Hour
)

// Service manages saved and excluded candidates and the activity feed
type Service interface {
	Save(ctx context.Context, memberID, candidateID int64) error
	Exclude(ctx context.Context, memberID, candidateID int64) error
	RecordView(ctx context.Context, memberID, candidateID int64) error
	SavedMatches(ctx context.Context, memberID int64) ([]SavedMatch, error)
	Recent(ctx context.Context, memberID int64, limit int) ([]Entry, error)
	Statistics(ctx context.Context, memberID int64) (*Statistics, error)
	Cleanup(ctx context.Context) error
}

type service struct {
	repo         Repository
	members      members.Repository
	queryTimeout time.Duration
	retention    time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewService creates a new activity service. Member summaries in the feed are resolved
// through memberRepo; log rows older than retention are removed by Cleanup.
func NewService(repo Repository, memberRepo members.Repository, queryTimeout, retention time.Duration, logger *zap.Logger) Service {
	return &service{
		repo:         repo,
		members:      memberRepo,
		queryTimeout: queryTimeout,
		retention:    retention,
		logger:       logger,
		now:          time.Now,
	}
}

func validPair(memberID, candidateID int64) error {
	if memberID <= 0 || candidateID <= 0 {
		return apperr.InvalidInput("memberId and candidateId must be positive integers")
	}
	if memberID == candidateID {
		return apperr.InvalidInput("A member cannot save or exclude themselves")
	}
	return nil
}

func (s *service) Save(ctx context.Context, memberID, candidateID int64) error {
	return s.write(ctx, ActionSave, memberID, candidateID, s.repo.Save)
}

func (s *service) Exclude(ctx context.Context, memberID, candidateID int64) error {
	return s.write(ctx, ActionExclude, memberID, candidateID, s.repo.Exclude)
}

func (s *service) RecordView(ctx context.Context, memberID, candidateID int64) error {
	return s.write(ctx, ActionView, memberID, candidateID, s.repo.RecordView)
}

func (s *service) write(ctx context.Context, action Action, memberID, candidateID int64, fn func(context.Context, int64, int64) error) error {
	if err := validPair(memberID, candidateID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := fn(ctx, memberID, candidateID); err != nil {
		if errors.Is(err, ErrUnknownMember) {
			return apperr.NotFound("Member not found")
		}
		s.logger.Error("failed to record activity",
			zap.String("action", string(action)),
			zap.Int64("member_id", memberID),
			zap.Int64("candidate_id", candidateID),
			zap.Error(err),
		)
		return apperr.Unavailable("Failed to update matches", err)
	}

	RecordAction(action)
	return nil
}

func (s *service) SavedMatches(ctx context.Context, memberID int64) ([]SavedMatch, error) {
	if memberID <= 0 {
		return nil, apperr.InvalidInput("Invalid member ID")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	saved, err := s.repo.SavedMatches(ctx, memberID)
	if err != nil {
		s.logger.Error("failed to get saved matches", zap.Int64("member_id", memberID), zap.Error(err))
		return nil, apperr.Unavailable("Failed to fetch saved matches", err)
	}
	if saved == nil {
		saved = []SavedMatch{}
	}
	return saved, nil
}

// Recent returns the newest activity first, each with the candidate's summary when it still exists
func (s *service) Recent(ctx context.Context, memberID int64, limit int) ([]Entry, error) {
	if memberID <= 0 {
		return nil, apperr.InvalidInput("Invalid member ID")
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	activities, err := s.repo.Recent(ctx, memberID, limit)
	if err != nil {
		s.logger.Error("failed to get recent activity", zap.Int64("member_id", memberID), zap.Error(err))
		return nil, apperr.Unavailable("Failed to fetch recent activity", err)
	}

	entries := make([]Entry, len(activities))
	if len(activities) == 0 {
		return entries, nil
	}

	loader := members.LoaderFromContext(ctx)
	if loader == nil {
		loader = members.NewLoader(s.members)
	}

	keys := make([]int64, len(activities))
	for i, a := range activities {
		keys[i] = a.CandidateID
	}
	candidates, errs := loader.LoadMany(ctx, keys)()

	for i, a := range activities {
		entries[i] = Entry{Activity: a}
		var loadErr error
		if len(errs) > i {
			loadErr = errs[i]
		}
		switch {
		case loadErr == nil && candidates[i] != nil:
			summary := candidates[i].Summary()
			entries[i].Candidate = &summary
		case loadErr != nil && !errors.Is(loadErr, members.ErrMemberNotFound):
			s.logger.Error("failed to load activity candidates", zap.Int64("member_id", memberID), zap.Error(loadErr))
			return nil, apperr.Unavailable("Failed to fetch recent activity", loadErr)
		}
	}
	return entries, nil
}

func (s *service) Statistics(ctx context.Context, memberID int64) (*Statistics, error) {
	if memberID <= 0 {
		return nil, apperr.InvalidInput("Invalid member ID")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	stats, err := s.repo.Statistics(ctx, memberID, s.now().Add(-RecentWindow))
	if err != nil {
		s.logger.Error("failed to get activity statistics", zap.Int64("member_id", memberID), zap.Error(err))
		return nil, apperr.Unavailable("Failed to fetch statistics", err)
	}
	return stats, nil
}

// Cleanup drops activity rows older than the retention period. Saved and excluded lists are kept.
func (s *service) Cleanup(ctx context.Context) error {
	if s.retention <= 0 {
		return nil
	}

	cutoff := s.now().Add(-s.retention)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	RecordCleanup(deleted)
	s.logger.Info("activity cleanup finished", zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))
	return nil
}
