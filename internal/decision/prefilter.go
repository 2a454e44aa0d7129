package decision

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Seniority levels ordered from most junior to most senior. Intake values
// are matched case-insensitively; unknown values skip the seniority rule.
var seniorityLevels = []string{
	"intern",
	"junior",
	"mid",
	"senior",
	"staff",
	"principal",
}

// KnownSeniority reports whether s is a recognized seniority level.
func KnownSeniority(s string) bool {
	return seniorityRank(s) >= 0
}

func seniorityRank(s string) int {
	return slices.Index(seniorityLevels, strings.ToLower(strings.TrimSpace(s)))
}

// PreFilter applies the ordered hard rules to a job intake and produces
// exactly one verdict. Rules run in fixed order: compensation floor,
// seniority floor, red-flag terms. The first failing rule wins; its reason
// becomes the sole driver of the final decision.
func PreFilter(intake Intake, g Guardrails) GuardrailVerdict {
	if g.MinSalary > 0 {
		if salary, ok := ParseSalary(intake.Salary); ok && salary < g.MinSalary {
			return GuardrailVerdict{
				Reason: fmt.Sprintf("salary %.0f below configured floor %.0f", salary, g.MinSalary),
			}
		}
	}

	if g.MinSeniority != "" {
		floor := seniorityRank(g.MinSeniority)
		if rank := seniorityRank(intake.Seniority); floor >= 0 && rank >= 0 && rank < floor {
			return GuardrailVerdict{
				Reason: fmt.Sprintf("seniority %s below configured floor %s",
					strings.ToLower(intake.Seniority), strings.ToLower(g.MinSeniority)),
			}
		}
	}

	if flag, found := matchRedFlag(intake, g.RedFlags); found {
		return GuardrailVerdict{
			Reason: fmt.Sprintf("red flag term %q present in posting", flag),
		}
	}

	return GuardrailVerdict{Recommend: true}
}

// ShortCircuit builds the final recommendation for a pre-filter rejection.
// Hard rules are deterministic, so confidence is always high.
func ShortCircuit(v GuardrailVerdict) FinalRecommendation {
	return FinalRecommendation{
		Recommend:  false,
		Rationale:  "Pre-filter rejection: " + v.Reason,
		Confidence: ConfidenceHigh,
	}
}

func matchRedFlag(intake Intake, flags []string) (string, bool) {
	if len(flags) == 0 {
		return "", false
	}
	combined := strings.ToLower(intake.Title + " " + intake.Company + " " + intake.Description)
	for _, flag := range flags {
		if flag == "" {
			continue
		}
		if strings.Contains(combined, strings.ToLower(flag)) {
			return flag, true
		}
	}
	return "", false
}

var salaryNumber = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(k)?`)

// ParseSalary extracts a comparable annual figure from free-form salary
// text. It accepts plain numbers, currency symbols, thousands separators,
// and a trailing k multiplier; for ranges it returns the largest figure.
// Returns false when no number is present.
func ParseSalary(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}

	var best float64
	found := false

	for _, m := range salaryNumber.FindAllStringSubmatch(s, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if strings.EqualFold(m[2], "k") {
			v *= 1000
		}
		if !found || v > best {
			best = v
			found = true
		}
	}

	return best, found
}
