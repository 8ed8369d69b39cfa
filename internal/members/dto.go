package members

// SearchCriteria narrows the member directory. Every field is optional.
type SearchCriteria struct {
	Gender    string `json:"gender,omitempty" query:"gender" validate:"omitempty,max=50"`
	MinAge    *int   `json:"minAge,omitempty" query:"minAge" validate:"omitempty,gte=0,lte=150"`
	MaxAge    *int   `json:"maxAge,omitempty" query:"maxAge" validate:"omitempty,gte=0,lte=150"`
	Religion  string `json:"religion,omitempty" query:"religion" validate:"omitempty,max=100"`
	HasKids   string `json:"hasKids,omitempty" query:"hasKids" validate:"omitempty,oneof=yes no"`
	Ethnicity string `json:"ethnicity,omitempty" query:"ethnicity" validate:"omitempty,max=100"`
	State     string `json:"state,omitempty" query:"state" validate:"omitempty,max=50"`
	Limit     int    `json:"limit,omitempty" query:"limit" validate:"gte=1,lte=100"`
}

// Page is one slice of the member directory
type Page struct {
	Members []*Member `json:"members"`
	Total   int       `json:"total"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
}

// ListResponse is returned by GET /api/v1/members
type ListResponse struct {
	Success bool `json:"success"`
	*Page
}

// SearchResponse is returned by GET /api/v1/members/search
type SearchResponse struct {
	Success  bool           `json:"success"`
	Members  []*Member      `json:"members"`
	Criteria SearchCriteria `json:"criteria"`
}

type MemberResponse struct {
	Success bool    `json:"success"`
	Member  *Member `json:"member"`
}
