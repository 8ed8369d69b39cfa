package matching

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/apperr"
	"github.com/imadgeboyega/kiekky-matchmaker/internal/common/utils"
)

// Strictness selects how hard the candidate filter excludes
type Strictness string

const (
	StrictnessStrict  Strictness = "strict"
	StrictnessNormal  Strictness = "normal"
	StrictnessRelaxed Strictness = "relaxed"
)

// Flags enable the per-category hard filters. They never change scoring.
type Flags struct {
	Orientation bool `json:"orientation"`
	Age         bool `json:"age"`
	Location    bool `json:"location"`
	Religion    bool `json:"religion"`
	Education   bool `json:"education"`
	Kids        bool `json:"kids"`
}

// AllFlags is the default: every category enabled
func AllFlags() Flags {
	return Flags{Orientation: true, Age: true, Location: true, Religion: true, Education: true, Kids: true}
}

// Query is the immutable description of one find-matches request
type Query struct {
	MemberID   int64      `query:"memberId" validate:"required,gt=0"`
	Strictness Strictness `query:"strictness" validate:"oneof=strict normal relaxed"`
	Flags      Flags
	Limit      int `query:"limit" validate:"gte=1"`
}

// Limits bounds the result size
type Limits struct {
	Default int
	Max     int
}

var flagParams = []struct {
	name string
	set  func(f *Flags, v bool)
}{
	{"filter_orientation", func(f *Flags, v bool) { f.Orientation = v }},
	{"filter_age", func(f *Flags, v bool) { f.Age = v }},
	{"filter_location", func(f *Flags, v bool) { f.Location = v }},
	{"filter_religion", func(f *Flags, v bool) { f.Religion = v }},
	{"filter_education", func(f *Flags, v bool) { f.Education = v }},
	{"filter_kids", func(f *Flags, v bool) { f.Kids = v }},
}

// ParseQuery builds a Query from request parameters. It never touches the datastore,
// so a malformed request fails before any query runs.
func ParseQuery(params url.Values, limits Limits) (Query, error) {
	q := Query{
		Strictness: StrictnessNormal,
		Flags:      AllFlags(),
		Limit:      limits.Default,
	}

	rawID := strings.TrimSpace(params.Get("memberId"))
	if rawID == "" {
		return q, apperr.InvalidInput("Missing member ID")
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return q, apperr.InvalidInput("memberId must be a positive integer")
	}
	q.MemberID = id

	if raw := strings.TrimSpace(params.Get("strictness")); raw != "" {
		q.Strictness = Strictness(strings.ToLower(raw))
	}

	if raw := strings.TrimSpace(params.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperr.InvalidInput("limit must be an integer")
		}
		if n > 0 {
			q.Limit = n
		}
	}
	if q.Limit > limits.Max {
		q.Limit = limits.Max
	}

	for _, p := range flagParams {
		raw := strings.TrimSpace(params.Get(p.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return q, apperr.InvalidInput(p.name + " must be true or false")
		}
		p.set(&q.Flags, v)
	}

	if err := utils.ValidateStruct(q); err != nil {
		return q, apperr.InvalidInput(err.Error())
	}

	return q, nil
}
