package activity

// PairRequest is the body of the save and exclude endpoints
type PairRequest struct {
	MemberID    int64 `json:"memberId" validate:"required,gt=0"`
	CandidateID int64 `json:"candidateId" validate:"required,gt=0,nefield=MemberID"`
}

type PairResponse struct {
	Success     bool   `json:"success"`
	Action      Action `json:"action"`
	MemberID    int64  `json:"memberId"`
	CandidateID int64  `json:"candidateId"`
}

type SavedResponse struct {
	Success bool         `json:"success"`
	Saved   []SavedMatch `json:"saved"`
}

type RecentResponse struct {
	Success    bool    `json:"success"`
	Activities []Entry `json:"activities"`
}

type StatisticsResponse struct {
	Success bool `json:"success"`
	*Statistics
}
