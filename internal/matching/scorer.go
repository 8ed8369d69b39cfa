package matching

import (
	"strings"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

// Category weights. Their sum is MaxScore.
const (
	orientationExact      = 30
	orientationCompatible = 20
	agePreferred          = 20
	locationCityAndState  = 15
	locationStateOnly     = 10
	religionMatch         = 10
	educationMatch        = 10
	kidsMatch             = 5

	MaxScore = orientationExact + agePreferred + locationCityAndState + religionMatch + educationMatch + kidsMatch
)

// age proximity tiers outside the preferred range, checked in order
var ageProximity = []struct {
	within int
	points int
}{
	{5, 15},
	{10, 10},
	{15, 5},
}

// Breakdown holds each category's contribution to a score
type Breakdown struct {
	Orientation int `json:"orientation"`
	Age         int `json:"age"`
	Location    int `json:"location"`
	Religion    int `json:"religion"`
	Education   int `json:"education"`
	Kids        int `json:"kids"`
	Total       int `json:"total"`
}

// Score rates candidate against target. Every category is scored regardless of which
// filters were enabled. ageDefaulted reports that the candidate's age was unusable and
// DefaultAge stood in for it.
func Score(target, candidate *members.Member) (b Breakdown, ageDefaulted bool) {
	b.Orientation = orientationScore(target, candidate)
	b.Age, ageDefaulted = ageScore(target, candidate)
	b.Location = locationScore(target, candidate)
	if sameText(target.Religion, candidate.Religion) {
		b.Religion = religionMatch
	}
	if sameText(target.Education, candidate.Education) {
		b.Education = educationMatch
	}
	if sameKids(target, candidate) {
		b.Kids = kidsMatch
	}
	b.Total = b.Orientation + b.Age + b.Location + b.Religion + b.Education + b.Kids
	return b, ageDefaulted
}

// exactOrientation is the strict compatibility relation used by the candidate filter
func exactOrientation(target, candidate *members.Member) bool {
	tg, cg := target.GenderValue(), candidate.GenderValue()
	to, co := target.OrientationValue(), candidate.OrientationValue()

	switch to {
	case members.OrientationStraight:
		return tg != members.GenderUnknown && cg == tg.Opposite() && co == members.OrientationStraight
	case members.OrientationGay:
		return tg != members.GenderUnknown && cg == tg && (co == members.OrientationGay || co == members.OrientationBisexual)
	case members.OrientationBisexual:
		return co == members.OrientationBisexual
	}
	return false
}

func orientationScore(target, candidate *members.Member) int {
	if exactOrientation(target, candidate) {
		return orientationExact
	}

	tg, cg := target.GenderValue(), candidate.GenderValue()
	switch {
	case target.OrientationValue() == members.OrientationBisexual,
		candidate.OrientationValue() == members.OrientationBisexual:
		return orientationCompatible
	case tg == members.GenderUnknown:
		return 0
	case target.OrientationValue() == members.OrientationStraight && cg == tg.Opposite():
		return orientationCompatible
	case target.OrientationValue() == members.OrientationGay && cg == tg:
		return orientationCompatible
	}
	return 0
}

func ageScore(target, candidate *members.Member) (int, bool) {
	age, ok := candidate.ParsedAge()
	lo, hi := target.PreferredAgeRange()
	if age >= lo && age <= hi {
		return agePreferred, !ok
	}

	targetAge, _ := target.ParsedAge()
	diff := abs(age - targetAge)
	for _, tier := range ageProximity {
		if diff <= tier.within {
			return tier.points, !ok
		}
	}
	return 0, !ok
}

func locationScore(target, candidate *members.Member) int {
	if !sameText(target.State, candidate.State) {
		return 0
	}
	if sameText(target.City, candidate.City) {
		return locationCityAndState
	}
	return locationStateOnly
}

func sameKids(target, candidate *members.Member) bool {
	k := target.Kids()
	return k != members.KidsUnspecified && k == candidate.Kids()
}

// sameText compares trimmed values case-insensitively. Empty never matches.
func sameText(a, b *string) bool {
	x, y := members.Text(a), members.Text(b)
	return x != "" && strings.EqualFold(x, y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
