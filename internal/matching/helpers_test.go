package matching

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

func str(s string) *string { return &s }

func num(n int) *int { return &n }

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeRepo is an in-memory members.Repository that applies filters with Filter.Matches
type fakeRepo struct {
	mu        sync.Mutex
	members   []*members.Member
	err       error
	calls     int
	filters   []members.Filter
	lastLimit int
}

func (r *fakeRepo) record(f members.Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if f != nil {
		r.filters = append(r.filters, f)
	}
}

func (r *fakeRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*members.Member, error) {
	r.record(nil)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	for _, m := range r.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, members.ErrMemberNotFound
}

func (r *fakeRepo) GetByIDs(ctx context.Context, ids []int64) ([]*members.Member, error) {
	var out []*members.Member
	for _, id := range ids {
		if m, err := r.GetByID(ctx, id); err == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) List(ctx context.Context, limit, offset int) ([]*members.Member, error) {
	r.record(nil)
	return r.members, r.err
}

func (r *fakeRepo) Count(ctx context.Context) (int, error) {
	r.record(nil)
	return len(r.members), r.err
}

func (r *fakeRepo) Find(ctx context.Context, filter members.Filter, limit int) ([]*members.Member, error) {
	r.record(filter)
	r.mu.Lock()
	r.lastLimit = limit
	r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	var out []*members.Member
	for _, m := range r.members {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// failOnFind lets the target lookup succeed and fails the candidate query
type failOnFind struct {
	*fakeRepo
	err error
}

func (r *failOnFind) Find(ctx context.Context, filter members.Filter, limit int) ([]*members.Member, error) {
	return nil, r.err
}

func straightMale() *members.Member {
	return &members.Member{
		ID:          1,
		Gender:      str("Male"),
		Orientation: str("straight"),
		Age:         str("30"),
		City:        str("Austin"),
		State:       str("TX"),
		Religion:    str("Buddhist"),
		Education:   str("Bachelor's"),
		HaveKids:    str("no"),
		Hobbies:     str("hiking, board games, cooking"),
		CreatedAt:   baseTime,
	}
}

func scenarioACandidate() *members.Member {
	return &members.Member{
		ID:          2,
		Gender:      str("Female"),
		Orientation: str("straight"),
		Age:         str("28"),
		City:        str("Austin"),
		State:       str("TX"),
		Religion:    str("Buddhist"),
		Education:   str("Bachelor's"),
		HaveKids:    str("no"),
		CreatedAt:   baseTime.Add(time.Hour),
	}
}

func scenarioBCandidate() *members.Member {
	return &members.Member{
		ID:          3,
		Gender:      str("Female"),
		Orientation: str("straight"),
		Age:         str("50"),
		City:        str("Denver"),
		State:       str("CO"),
		Religion:    str("Christian"),
		Education:   str("PhD"),
		HaveKids:    str("yes"),
		CreatedAt:   baseTime.Add(2 * time.Hour),
	}
}

var (
	genders      = []*string{str("Male"), str("Female"), str("female"), nil, str("other")}
	orientations = []*string{str("straight"), str("gay"), str("bi-sexual"), str("Bisexual"), nil, str("asexual")}
	ages         = []*string{str("19"), str("27"), str("30"), str("36"), str("44"), str("61"), str("n/a"), nil}
)

// population builds a deterministic spread of members across every gender, orientation and age value
func population() []*members.Member {
	var out []*members.Member
	id := int64(100)
	for gi, g := range genders {
		for oi, o := range orientations {
			for ai, a := range ages {
				m := &members.Member{
					ID:          id,
					Gender:      g,
					Orientation: o,
					Age:         a,
					State:       str([]string{"TX", "CO"}[ai%2]),
					City:        str([]string{"Austin", "Denver", "Dallas"}[(gi+ai)%3]),
					HaveKids:    str([]string{"yes", "no", ""}[oi%3]),
					CreatedAt:   baseTime.Add(time.Duration(id%7) * time.Minute),
				}
				if ai%3 == 0 {
					m.AgeRangeMin = num(25)
					m.AgeRangeMax = num(40)
				}
				out = append(out, m)
				id++
			}
		}
	}
	return out
}

func describe(m *members.Member) string {
	return fmt.Sprintf("#%d %s/%s/%s", m.ID, members.Text(m.Gender), members.Text(m.Orientation), members.Text(m.Age))
}
