package matching

import (
	"fmt"
	"strings"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/members"
)

// closeInAge is the age gap below which the reason mentions both ages
const closeInAge = 3

// Explain lists why target and candidate fit, in category order followed by shared hobbies.
// Categories that did not contribute are left out.
func Explain(target, candidate *members.Member) []string {
	reasons := []string{}

	switch orientationScore(target, candidate) {
	case orientationExact:
		reasons = append(reasons, "Your gender and orientation preferences match perfectly")
	case orientationCompatible:
		reasons = append(reasons, "You have compatible orientation preferences")
	}

	if reason := ageReason(target, candidate); reason != "" {
		reasons = append(reasons, reason)
	}

	switch locationScore(target, candidate) {
	case locationCityAndState:
		reasons = append(reasons, fmt.Sprintf("You both live in %s, %s", members.Text(candidate.City), members.Text(candidate.State)))
	case locationStateOnly:
		reasons = append(reasons, fmt.Sprintf("You both live in %s", members.Text(candidate.State)))
	}

	if sameText(target.Religion, candidate.Religion) {
		reasons = append(reasons, fmt.Sprintf("You share the same religion (%s)", members.Text(candidate.Religion)))
	}
	if sameText(target.Education, candidate.Education) {
		reasons = append(reasons, fmt.Sprintf("You have similar education backgrounds (%s)", members.Text(candidate.Education)))
	}

	if sameKids(target, candidate) {
		if target.Kids() == members.KidsYes {
			reasons = append(reasons, "You both have children")
		} else {
			reasons = append(reasons, "Neither of you have children")
		}
	}

	if shared := sharedHobbies(target.Hobbies, candidate.Hobbies); len(shared) > 0 {
		reasons = append(reasons, fmt.Sprintf("You share common hobbies and interests (%s)", strings.Join(shared, ", ")))
	}

	return reasons
}

// ageReason only speaks about ages that were actually stored
func ageReason(target, candidate *members.Member) string {
	candidateAge, ok := candidate.ParsedAge()
	if !ok {
		return ""
	}
	targetAge, _ := target.ParsedAge()

	if abs(candidateAge-targetAge) <= closeInAge {
		return fmt.Sprintf("You're very close in age (%d vs %d)", candidateAge, targetAge)
	}
	lo, hi := target.PreferredAgeRange()
	if candidateAge >= lo && candidateAge <= hi {
		return fmt.Sprintf("%d is within your preferred age range", candidateAge)
	}
	return ""
}

// sharedHobbies returns candidate hobbies that appear inside one of the target's hobbies,
// compared case-insensitively.
func sharedHobbies(target, candidate *string) []string {
	targetList := splitHobbies(target)
	if len(targetList) == 0 {
		return nil
	}

	var shared []string
	for _, hobby := range splitHobbies(candidate) {
		needle := strings.ToLower(hobby)
		for _, t := range targetList {
			if strings.Contains(strings.ToLower(t), needle) {
				shared = append(shared, hobby)
				break
			}
		}
	}
	return shared
}

func splitHobbies(s *string) []string {
	raw := members.Text(s)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
