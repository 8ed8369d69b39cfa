// internal/members/service.go

package members

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/apperr"
)

var (
	ErrMemberNotFound = errors.New("member not found")
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Service exposes the read-only member directory
type Service interface {
	GetMember(ctx context.Context, id int64) (*Member, error)
	ListMembers(ctx context.Context, limit, offset int) (*Page, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]*Member, error)
}

type service struct {
	repo         Repository
	queryTimeout time.Duration
	logger       *zap.Logger
}

// NewService creates a new member service. Every datastore call is bounded by queryTimeout.
func NewService(repo Repository, queryTimeout time.Duration, logger *zap.Logger) Service {
	return &service{repo: repo, queryTimeout: queryTimeout, logger: logger}
}

func (s *service) GetMember(ctx context.Context, id int64) (*Member, error) {
	if id <= 0 {
		return nil, apperr.InvalidInput("Invalid member ID")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, apperr.NotFound("Member not found")
		}
		s.logger.Error("failed to get member", zap.Int64("member_id", id), zap.Error(err))
		return nil, apperr.Unavailable("Failed to fetch member", err)
	}

	return member, nil
}

// ListMembers clamps limit to (0, MaxListLimit] and pages by id
func (s *service) ListMembers(ctx context.Context, limit, offset int) (*Page, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list members", zap.Error(err))
		return nil, apperr.Unavailable("Failed to fetch members", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count members", zap.Error(err))
		return nil, apperr.Unavailable("Failed to fetch members", err)
	}

	if result == nil {
		result = []*Member{}
	}
	return &Page{Members: result, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *service) Search(ctx context.Context, criteria SearchCriteria) ([]*Member, error) {
	if criteria.MinAge != nil && criteria.MaxAge != nil && *criteria.MinAge > *criteria.MaxAge {
		return nil, apperr.InvalidInput("minAge must not exceed maxAge")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.repo.Find(ctx, criteria.Filter(), criteria.Limit)
	if err != nil {
		s.logger.Error("member search failed", zap.Any("criteria", criteria), zap.Error(err))
		return nil, apperr.Unavailable("Failed to search members", err)
	}

	if result == nil {
		result = []*Member{}
	}
	return result, nil
}

// Filter compiles the criteria into predicates
func (c SearchCriteria) Filter() Filter {
	var f Filter
	if c.Gender != "" {
		f = append(f, Eq(FieldGender, c.Gender))
	}
	switch {
	case c.MinAge != nil && c.MaxAge != nil:
		f = append(f, Between(FieldAge, *c.MinAge, *c.MaxAge))
	case c.MinAge != nil:
		f = append(f, AtLeast(FieldAge, *c.MinAge))
	case c.MaxAge != nil:
		f = append(f, AtMost(FieldAge, *c.MaxAge))
	}
	if c.Religion != "" {
		f = append(f, Eq(FieldReligion, c.Religion))
	}
	if c.HasKids != "" {
		f = append(f, Eq(FieldHaveKids, c.HasKids))
	}
	if c.Ethnicity != "" {
		f = append(f, Eq(FieldEthnicity, c.Ethnicity))
	}
	if c.State != "" {
		f = append(f, Eq(FieldState, c.State))
	}
	return f
}
