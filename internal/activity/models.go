package activity

import (
	"time"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

// Action is what a member did with a candidate
type Action string

const (
	ActionSave    Action = "save"
	ActionExclude Action = "exclude"
	ActionView    Action = "view"
)

// Activity is one row of the member activity log
type Activity struct {
	ID          int64     `json:"id" db:"id"`
	MemberID    int64     `json:"memberId" db:"member_id"`
	CandidateID int64     `json:"candidateId" db:"candidate_id"`
	Action      Action    `json:"action" db:"action"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Entry is an activity with the candidate it refers to, when that member still exists
type Entry struct {
	Activity
	Candidate *members.Summary `json:"candidate,omitempty"`
}

type SavedMatch struct {
	CandidateID int64     `json:"candidateId" db:"candidate_id"`
	CreatedAt   time.Time `json:"savedAt" db:"created_at"`
}

// Statistics summarises a member's matching activity
type Statistics struct {
	SavedMatches    int `json:"savedMatches" db:"saved_matches"`
	ExcludedMatches int `json:"excludedMatches" db:"excluded_matches"`
	ViewedMatches   int `json:"viewedMatches" db:"viewed_matches"`
	RecentActivity  int `json:"recentActivity" db:"recent_activity"`
}
