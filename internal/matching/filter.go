package matching

import (
	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

// ageWidening is how far normal mode stretches the target's preferred range on each side
const ageWidening = 5

// BuildCandidateFilter returns the predicates a candidate must satisfy before it is scored.
// The result depends only on target and q.
func BuildCandidateFilter(target *members.Member, q Query) members.Filter {
	filter := members.Filter{members.NotEq(members.FieldID, target.ID)}

	if q.Flags.Orientation {
		switch q.Strictness {
		case StrictnessStrict:
			filter = append(filter, strictOrientation(target)...)
		case StrictnessNormal:
			filter = append(filter, normalOrientation(target)...)
		}
	}

	if q.Flags.Age && q.Strictness != StrictnessRelaxed {
		filter = append(filter, ageBand(target, q.Strictness)...)
	}

	return filter
}

// strictOrientation requires the candidate to be in the target's exact compatibility relation.
// A target whose gender or orientation is unrecognised matches nobody.
func strictOrientation(target *members.Member) []members.Predicate {
	gender := target.GenderValue()

	switch target.OrientationValue() {
	case members.OrientationStraight:
		if gender == members.GenderUnknown {
			break
		}
		return []members.Predicate{
			members.Eq(members.FieldGender, gender.Opposite()),
			members.Eq(members.FieldOrientation, members.OrientationStraight),
		}
	case members.OrientationGay:
		if gender == members.GenderUnknown {
			break
		}
		return []members.Predicate{
			members.Eq(members.FieldGender, gender),
			members.InStrings(members.FieldOrientation, gayOrBisexual()),
		}
	case members.OrientationBisexual:
		return []members.Predicate{members.InStrings(members.FieldOrientation, members.BisexualSpellings)}
	}

	return []members.Predicate{members.Never()}
}

// normalOrientation restricts on gender only. Bisexual and unrecognised targets are unrestricted.
func normalOrientation(target *members.Member) []members.Predicate {
	gender := target.GenderValue()
	if gender == members.GenderUnknown {
		return nil
	}

	switch target.OrientationValue() {
	case members.OrientationStraight:
		return []members.Predicate{members.Eq(members.FieldGender, gender.Opposite())}
	case members.OrientationGay:
		return []members.Predicate{members.Eq(members.FieldGender, gender)}
	}
	return nil
}

// ageBand bounds the candidate's age. Strict mode also requires the candidate's own range,
// where stored, to include the target's age; a missing candidate bound is no constraint.
func ageBand(target *members.Member, strictness Strictness) []members.Predicate {
	targetAge, _ := target.ParsedAge()
	lo, hi := target.PreferredAgeRange()

	if strictness == StrictnessStrict {
		return []members.Predicate{
			members.AtMost(members.FieldAgeRangeMin, targetAge).OrNull(),
			members.AtLeast(members.FieldAgeRangeMax, targetAge).OrNull(),
			members.Between(members.FieldAge, lo, hi),
		}
	}
	return []members.Predicate{members.Between(members.FieldAge, lo-ageWidening, hi+ageWidening)}
}

func gayOrBisexual() []string {
	return append([]string{string(members.OrientationGay)}, members.BisexualSpellings...)
}
