package members

import (
	"strconv"
	"strings"
	"time"
)

// Member is a row of the members table. Every descriptive column is nullable free text;
// nothing here is guaranteed to be well formed.
type Member struct {
	ID          int64     `json:"id" db:"id"`
	City        *string   `json:"city" db:"city"`
	State       *string   `json:"state" db:"state"`
	Zip         *string   `json:"zip" db:"zip"`
	Gender      *string   `json:"gender" db:"gender"`
	GenderIdent *string   `json:"gender_ident" db:"gender_ident"`
	Orientation *string   `json:"orientation" db:"orientation"`
	Age         *string   `json:"age" db:"age"`
	Ethnicity   *string   `json:"ethnicity" db:"ethnicity"`
	Religion    *string   `json:"religion" db:"religion"`
	Height      *string   `json:"height" db:"height"`
	HaveKids    *string   `json:"have_kids" db:"have_kids"`
	Occupation  *string   `json:"occupation" db:"occupation"`
	Education   *string   `json:"education" db:"education"`
	Hobbies     *string   `json:"hobbies" db:"hobbies"`
	AboutYou    *string   `json:"about_you" db:"about_you"`
	Personality *string   `json:"personality" db:"personality"`
	AgeRangeMin *int      `json:"age_range_min" db:"age_range_min"`
	AgeRangeMax *int      `json:"age_range_max" db:"age_range_max"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// columns selected for every member read, prefixed with the "m" alias
const memberColumns = `m.id, m.city, m.state, m.zip, m.gender, m.gender_ident, m.orientation, m.age,
	m.ethnicity, m.religion, m.height, m.have_kids, m.occupation, m.education, m.hobbies,
	m.about_you, m.personality, m.age_range_min, m.age_range_max, m.created_at`

// DefaultAge stands in for an age that is missing or not a whole number
const DefaultAge = 30

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Opposite returns the other recognised gender, or GenderUnknown
func (g Gender) Opposite() Gender {
	switch g {
	case GenderMale:
		return GenderFemale
	case GenderFemale:
		return GenderMale
	}
	return GenderUnknown
}

type Orientation string

const (
	OrientationStraight Orientation = "straight"
	OrientationGay      Orientation = "gay"
	OrientationBisexual Orientation = "bi-sexual"
	OrientationUnknown  Orientation = "unknown"
)

// BisexualSpellings are the stored values treated as bisexual
var BisexualSpellings = []string{"bi-sexual", "bisexual"}

type KidsStatus string

const (
	KidsYes         KidsStatus = "yes"
	KidsNo          KidsStatus = "no"
	KidsUnspecified KidsStatus = "unspecified"
)

func normalize(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*s))
}

// ParseGender is case-insensitive; anything unrecognised is GenderUnknown
func ParseGender(s *string) Gender {
	switch normalize(s) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	}
	return GenderUnknown
}

func ParseOrientation(s *string) Orientation {
	switch normalize(s) {
	case "straight":
		return OrientationStraight
	case "gay":
		return OrientationGay
	case "bi-sexual", "bisexual":
		return OrientationBisexual
	}
	return OrientationUnknown
}

func ParseKids(s *string) KidsStatus {
	switch normalize(s) {
	case "yes":
		return KidsYes
	case "no":
		return KidsNo
	}
	return KidsUnspecified
}

func (m *Member) GenderValue() Gender { return ParseGender(m.Gender) }

func (m *Member) OrientationValue() Orientation { return ParseOrientation(m.Orientation) }

func (m *Member) Kids() KidsStatus { return ParseKids(m.HaveKids) }

// ParsedAge returns the numeric age. ok is false when the stored text was absent or unusable
// and DefaultAge was substituted.
func (m *Member) ParsedAge() (age int, ok bool) {
	if m.Age == nil {
		return DefaultAge, false
	}
	return parseAge(*m.Age)
}

// parseAge accepts one to three plain digits so it agrees with ageExpr
func parseAge(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || len(s) > 3 {
		return DefaultAge, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return DefaultAge, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultAge, false
	}
	return n, true
}

// PreferredAgeRange is the member's own range with each missing bound defaulting to age ∓ 10
func (m *Member) PreferredAgeRange() (lo, hi int) {
	age, _ := m.ParsedAge()
	lo, hi = age-10, age+10
	if m.AgeRangeMin != nil {
		lo = *m.AgeRangeMin
	}
	if m.AgeRangeMax != nil {
		hi = *m.AgeRangeMax
	}
	return lo, hi
}

// Text returns a trimmed field value; empty when NULL
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Location formats "City, ST", falling back to whichever part exists
func (m *Member) Location() string {
	city, state := Text(m.City), Text(m.State)
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}

// DisplayName is the anonymised label used in API responses
func (m *Member) DisplayName() string {
	return "Profile #" + strconv.FormatInt(m.ID, 10)
}

// Summary is the compact member view embedded in other responses
type Summary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Orientation string `json:"orientation"`
	Location    string `json:"location"`
}

func (m *Member) Summary() Summary {
	age, _ := m.ParsedAge()
	return Summary{
		ID:          m.ID,
		Name:        m.DisplayName(),
		Age:         age,
		Gender:      Text(m.Gender),
		Orientation: Text(m.Orientation),
		Location:    m.Location(),
	}
}
