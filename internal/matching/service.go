// internal/matching/service.go

package matching

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/apperr"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

// ViewRecorder is told when a member looks at a candidate's compatibility
type ViewRecorder interface {
	RecordView(ctx context.Context, memberID, candidateID int64) error
}

// Service ranks candidates for a member
type Service interface {
	FindMatches(ctx context.Context, q Query) (*Result, error)
	Compatibility(ctx context.Context, memberID, candidateID int64) (*Compatibility, error)
}

type Option func(*service)

// WithCache enables result caching; a nil cache is ignored
func WithCache(cache ResultCache) Option {
	return func(s *service) { s.cache = cache }
}

func WithViewRecorder(views ViewRecorder) Option {
	return func(s *service) { s.views = views }
}

type service struct {
	repo         members.Repository
	queryTimeout time.Duration
	logger       *zap.Logger
	cache        ResultCache
	views        ViewRecorder
}

// NewService creates a matching service reading from repo. Each request's datastore work
// shares one queryTimeout budget.
func NewService(repo members.Repository, queryTimeout time.Duration, logger *zap.Logger, opts ...Option) Service {
	s := &service{repo: repo, queryTimeout: queryTimeout, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) FindMatches(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	result, err := s.findMatches(ctx, q)
	RecordResponseTime(q.Strictness, time.Since(start))
	if err != nil {
		RecordFindRequest(q.Strictness, string(apperr.KindOf(err)))
		return nil, err
	}
	RecordFindRequest(q.Strictness, "ok")
	return result, nil
}

func (s *service) findMatches(ctx context.Context, q Query) (*Result, error) {
	if q.MemberID <= 0 {
		return nil, apperr.InvalidInput("Missing member ID")
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, q); ok {
			return cached, nil
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	target, err := s.fetchMember(fetchCtx, q.MemberID, "Failed to fetch matches")
	if err != nil {
		return nil, err
	}

	filter := BuildCandidateFilter(target, q)
	candidates, err := s.repo.Find(fetchCtx, filter, 0)
	if err != nil {
		s.logger.Error("candidate query failed",
			zap.Int64("member_id", q.MemberID),
			zap.String("strictness", string(q.Strictness)),
			zap.Stringer("filter", filter),
			zap.Error(err),
		)
		return nil, apperr.Unavailable("Failed to fetch matches", err)
	}
	RecordCandidatePool(q.Strictness, len(candidates))

	matches := s.rank(target, candidates)
	if len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}

	// a cancelled request must not look complete
	if err := ctx.Err(); err != nil {
		return nil, apperr.Unavailable("Failed to fetch matches", err)
	}

	result := &Result{
		Target:  target.Summary(),
		Matches: matches,
		Mode:    q.Strictness,
		Filters: q.Flags,
	}

	if s.cache != nil {
		s.cache.Set(ctx, q, result)
	}
	return result, nil
}

// rank scores every candidate and orders them best first, newest first on ties
func (s *service) rank(target *members.Member, candidates []*members.Member) []MatchResult {
	matches := make([]MatchResult, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == target.ID {
			continue
		}
		breakdown, ageDefaulted := Score(target, c)
		if ageDefaulted {
			s.reportDefaultedAge(c)
		}
		RecordCompatibilityScore(breakdown.Total)
		matches = append(matches, MatchResult{
			Member:    c,
			Location:  c.Location(),
			Score:     breakdown.Total,
			Reasons:   Explain(target, c),
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return matches
}

func (s *service) reportDefaultedAge(c *members.Member) {
	RecordPartialDataDefault("age")
	s.logger.Debug("candidate age replaced by default",
		zap.Int64("candidate_id", c.ID),
		zap.Int("default_age", members.DefaultAge),
		zap.Error(apperr.PartialDataDefault("unparseable age "+strconv.Quote(members.Text(c.Age)))),
	)
}

func (s *service) Compatibility(ctx context.Context, memberID, candidateID int64) (*Compatibility, error) {
	if memberID <= 0 || candidateID <= 0 {
		return nil, apperr.InvalidInput("memberId and candidateId must be positive integers")
	}
	if memberID == candidateID {
		return nil, apperr.InvalidInput("A member cannot be compared with themselves")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	target, err := s.fetchMember(fetchCtx, memberID, "Failed to calculate compatibility")
	if err != nil {
		return nil, err
	}
	candidate, err := s.fetchMember(fetchCtx, candidateID, "Failed to calculate compatibility")
	if err != nil {
		return nil, err
	}

	breakdown, ageDefaulted := Score(target, candidate)
	if ageDefaulted {
		s.reportDefaultedAge(candidate)
	}

	if s.views != nil {
		if err := s.views.RecordView(ctx, memberID, candidateID); err != nil {
			s.logger.Warn("failed to record view",
				zap.Int64("member_id", memberID),
				zap.Int64("candidate_id", candidateID),
				zap.Error(err),
			)
		}
	}

	return &Compatibility{
		Member:    target.Summary(),
		Candidate: candidate.Summary(),
		Score:     breakdown.Total,
		Reasons:   Explain(target, candidate),
		Breakdown: breakdown,
		MaxScore:  MaxScore,
	}, nil
}

func (s *service) fetchMember(ctx context.Context, id int64, failure string) (*members.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, members.ErrMemberNotFound) {
			return nil, apperr.NotFound("Member not found")
		}
		s.logger.Error("failed to fetch member", zap.Int64("member_id", id), zap.Error(err))
		return nil, apperr.Unavailable(failure, err)
	}
	return m, nil
}
