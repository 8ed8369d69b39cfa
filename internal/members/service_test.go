package members

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/apperr"
)

// memoryRepo serves members from a slice and evaluates filters in memory
type memoryRepo struct {
	mu       sync.Mutex
	members  []*Member
	err      error
	batches  [][]int64
	lastFind Filter
}

func (r *memoryRepo) GetByID(ctx context.Context, id int64) (*Member, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, m := range r.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (r *memoryRepo) GetByIDs(ctx context.Context, ids []int64) ([]*Member, error) {
	r.mu.Lock()
	r.batches = append(r.batches, append([]int64(nil), ids...))
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*Member
	for _, id := range ids {
		if m, err := r.GetByID(ctx, id); err == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memoryRepo) List(ctx context.Context, limit, offset int) ([]*Member, error) {
	if r.err != nil {
		return nil, r.err
	}
	if offset >= len(r.members) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.members) {
		end = len(r.members)
	}
	return r.members[offset:end], nil
}

func (r *memoryRepo) Count(ctx context.Context) (int, error) {
	return len(r.members), r.err
}

func (r *memoryRepo) Find(ctx context.Context, filter Filter, limit int) ([]*Member, error) {
	r.lastFind = filter
	if r.err != nil {
		return nil, r.err
	}
	var out []*Member
	for _, m := range r.members {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func directory() *memoryRepo {
	return &memoryRepo{members: []*Member{
		{ID: 1, Gender: str("Male"), Age: str("30"), Religion: str("Buddhist"), HaveKids: str("no"), CreatedAt: baseTime},
		{ID: 2, Gender: str("Female"), Age: str("28"), Religion: str("buddhist"), HaveKids: str("yes"), CreatedAt: baseTime.Add(time.Hour)},
		{ID: 3, Gender: str("female"), Age: str("41"), Religion: str("Catholic"), HaveKids: str("no"), CreatedAt: baseTime.Add(2 * time.Hour)},
	}}
}

func TestService_GetMember(t *testing.T) {
	svc := NewService(directory(), time.Second, zaptest.NewLogger(t))

	m, err := svc.GetMember(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.ID)

	_, err = svc.GetMember(context.Background(), 99)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.GetMember(context.Background(), 0)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	broken := &memoryRepo{err: errors.New("dial tcp: connection refused")}
	_, err = NewService(broken, time.Second, zaptest.NewLogger(t)).GetMember(context.Background(), 1)
	assert.Equal(t, apperr.KindUnavailable, apperr.KindOf(err))
	assert.Equal(t, "Failed to fetch member", apperr.PublicMessage(err))
}

func TestService_ListMembers_ClampsLimit(t *testing.T) {
	svc := NewService(directory(), time.Second, zaptest.NewLogger(t))

	page, err := svc.ListMembers(context.Background(), 500, -3)
	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, page.Limit)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Members, 3)

	page, err = svc.ListMembers(context.Background(), 0, 5)
	require.NoError(t, err)
	assert.Equal(t, DefaultListLimit, page.Limit)
	assert.NotNil(t, page.Members)
	assert.Empty(t, page.Members)
}

func TestService_Search(t *testing.T) {
	repo := directory()
	svc := NewService(repo, time.Second, zaptest.NewLogger(t))

	minAge, maxAge := 25, 35
	result, err := svc.Search(context.Background(), SearchCriteria{Gender: "Female", MinAge: &minAge, MaxAge: &maxAge, Religion: "Buddhist", Limit: 20})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(2), result[0].ID)
	assert.True(t, repo.lastFind.Has(FieldAge))

	_, err = svc.Search(context.Background(), SearchCriteria{MinAge: &maxAge, MaxAge: &minAge, Limit: 20})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestLoader_BatchesAndReportsMissing(t *testing.T) {
	repo := directory()
	loader := NewLoader(repo)
	ctx := context.Background()

	thunk := loader.LoadMany(ctx, []int64{1, 3, 99})
	result, errs := thunk()

	require.Len(t, result, 3)
	assert.Equal(t, int64(1), result[0].ID)
	assert.Equal(t, int64(3), result[1].ID)
	require.Len(t, errs, 3)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[2], ErrMemberNotFound)
	assert.NotEmpty(t, repo.batches)
}

func TestLoaderMiddleware(t *testing.T) {
	repo := directory()
	var seen *Loader
	h := LoaderMiddleware(repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = LoaderFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotNil(t, seen)
	assert.Nil(t, LoaderFromContext(context.Background()))
}

func TestHandlers(t *testing.T) {
	router := NewRouter(NewHandler(NewService(directory(), time.Second, zaptest.NewLogger(t))))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		check      func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "get member",
			path:       "/2",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				member := body["member"].(map[string]interface{})
				assert.Equal(t, float64(2), member["id"])
			},
		},
		{name: "unknown member", path: "/404", wantStatus: http.StatusNotFound},
		{name: "bad id", path: "/abc", wantStatus: http.StatusBadRequest},
		{
			name:       "list",
			path:       "/?limit=2",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Len(t, body["members"], 2)
				assert.Equal(t, float64(3), body["total"])
			},
		},
		{name: "list bad limit", path: "/?limit=ten", wantStatus: http.StatusBadRequest},
		{
			name:       "search",
			path:       "/search?gender=female&hasKids=no",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				list := body["members"].([]interface{})
				require.Len(t, list, 1)
				assert.Equal(t, float64(3), list[0].(map[string]interface{})["id"])
			},
		},
		{name: "search invalid kids", path: "/search?hasKids=sometimes", wantStatus: http.StatusBadRequest},
		{name: "search invalid age", path: "/search?minAge=old", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus == http.StatusOK, body["success"])
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}
