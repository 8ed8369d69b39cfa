package matching

import (
	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

// MatchResult is one scored candidate. It exists only for the request that produced it.
type MatchResult struct {
	*members.Member
	Location  string    `json:"location"`
	Score     int       `json:"compatibility_score"`
	Reasons   []string  `json:"compatibility_reasons"`
	Breakdown Breakdown `json:"compatibility_breakdown"`
}

// Result is the ranked outcome of a Query
type Result struct {
	Target  members.Summary `json:"targetMember"`
	Matches []MatchResult   `json:"matches"`
	Mode    Strictness      `json:"matchingMode"`
	Filters Flags           `json:"filters"`
}

// FindResponse is returned by GET /api/v1/matches/find
type FindResponse struct {
	Success bool `json:"success"`
	*Result
}

// Compatibility is the pairwise view of two members
type Compatibility struct {
	Member    members.Summary `json:"member"`
	Candidate members.Summary `json:"candidate"`
	Score     int             `json:"compatibility_score"`
	Reasons   []string        `json:"compatibility_reasons"`
	Breakdown Breakdown       `json:"compatibility_breakdown"`
	MaxScore  int             `json:"maxScore"`
}

// CompatibilityResponse is returned by GET /api/v1/matches/compatibility
type CompatibilityResponse struct {
	Success bool `json:"success"`
	*Compatibility
}
