package decision

import (
	"fmt"
	"math"
	"strings"
)

const weightTolerance = 0.01

// Caveat markers scanned in evaluator notes when collecting tradeoffs.
var caveatMarkers = []string{
	"but ",
	"however",
	"concern",
	"risk",
	"caution",
	"red flag",
	"although",
	"tradeoff",
	"trade-off",
	"watch",
	"unclear",
}

// Aggregate combines persona verdicts into one final recommendation.
// Verdicts must be supplied in dispatch order; rationale and sources
// preserve that order regardless of how the evaluators actually completed.
//
// The vote is the weighted sign of each verdict (+weight for recommend,
// -weight against). When the weight table is missing an evaluator or does
// not sum to ~1.0, every verdict carries equal weight instead. A tie
// resolves optimistically unless the guardrails configure a reject bias,
// and a single blocking red-flag signal overrides the vote entirely when
// BlockOnRedFlags is set.
func Aggregate(verdicts []PersonaVerdict, w Weights, g Guardrails) Outcome {
	if len(verdicts) == 0 {
		return inconclusive()
	}

	recommend := vote(verdicts, w, g)

	if g.BlockOnRedFlags {
		if id, found := blockingSignal(verdicts, g.RedFlags); found {
			return outcome(verdicts, FinalRecommendation{
				Recommend:  false,
				Rationale:  fmt.Sprintf("Blocking signal from %s: %s", id, synthesis(verdicts)),
				Confidence: confidence(verdicts),
			})
		}
	}

	return outcome(verdicts, FinalRecommendation{
		Recommend:  recommend,
		Rationale:  synthesis(verdicts),
		Confidence: confidence(verdicts),
	})
}

func inconclusive() Outcome {
	return Outcome{
		Final: FinalRecommendation{
			Recommend:  false,
			Rationale:  "No evaluators produced a verdict; the review is inconclusive.",
			Confidence: ConfidenceLow,
		},
		Actions: []string{"Re-run the review once evaluators are available."},
	}
}

func outcome(verdicts []PersonaVerdict, final FinalRecommendation) Outcome {
	return Outcome{
		Final:     final,
		Tradeoffs: tradeoffs(verdicts),
		Actions:   actions(verdicts, final.Recommend),
		Sources:   sources(verdicts),
	}
}

func vote(verdicts []PersonaVerdict, w Weights, g Guardrails) bool {
	weights := effectiveWeights(verdicts, w)

	var score float64
	for i, v := range verdicts {
		if v.Recommend {
			score += weights[i]
		} else {
			score -= weights[i]
		}
	}

	if math.Abs(score) < weightTolerance {
		return !g.TieBreakReject
	}
	return score > 0
}

// effectiveWeights returns per-verdict weights aligned to the verdict slice.
// Falls back to equal weighting when the table is unusable rather than
// failing the review.
func effectiveWeights(verdicts []PersonaVerdict, w Weights) []float64 {
	weights := make([]float64, len(verdicts))

	equal := func() []float64 {
		share := 1.0 / float64(len(verdicts))
		for i := range weights {
			weights[i] = share
		}
		return weights
	}

	if len(w) == 0 {
		return equal()
	}

	var sum float64
	for i, v := range verdicts {
		weight, ok := w[v.ID]
		if !ok {
			return equal()
		}
		weights[i] = weight
		sum += weight
	}

	if math.Abs(sum-1.0) > weightTolerance {
		// Off-by-a-little tables are normalized; anything else is equal-weighted.
		if sum <= 0 {
			return equal()
		}
		for i := range weights {
			weights[i] /= sum
		}
	}

	return weights
}

// confidence maps verdict agreement to a confidence level: unanimous is
// high, an even split is low, everything else is medium.
func confidence(verdicts []PersonaVerdict) Confidence {
	var yes int
	for _, v := range verdicts {
		if v.Recommend {
			yes++
		}
	}
	no := len(verdicts) - yes

	switch {
	case yes == 0 || no == 0:
		return ConfidenceHigh
	case yes == no:
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}

func synthesis(verdicts []PersonaVerdict) string {
	parts := make([]string, len(verdicts))
	for i, v := range verdicts {
		stance := "recommends"
		if !v.Recommend {
			stance = "advises against"
		}
		parts[i] = fmt.Sprintf("%s %s: %s", v.ID, stance, v.Reason)
	}
	return strings.Join(parts, "; ")
}

// tradeoffs collects caveat-bearing notes in dispatch order, regardless of
// each evaluator's own recommendation.
func tradeoffs(verdicts []PersonaVerdict) []string {
	var out []string
	seen := make(map[string]bool)

	for _, v := range verdicts {
		for _, note := range v.Notes {
			if !isCaveat(note) || seen[note] {
				continue
			}
			seen[note] = true
			out = append(out, note)
		}
	}

	return out
}

func isCaveat(note string) bool {
	lower := strings.ToLower(note)
	for _, marker := range caveatMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func actions(verdicts []PersonaVerdict, recommend bool) []string {
	if recommend {
		return []string{"Move forward with the application process."}
	}

	var out []string
	for _, v := range verdicts {
		if v.Recommend {
			continue
		}
		out = append(out, "Mitigate: "+v.Reason)
	}

	if len(out) == 0 {
		out = []string{"Gather more information before applying."}
	}
	return out
}

func sources(verdicts []PersonaVerdict) []string {
	out := make([]string, len(verdicts))
	for i, v := range verdicts {
		out[i] = v.ID
	}
	return out
}

func blockingSignal(verdicts []PersonaVerdict, flags []string) (string, bool) {
	if len(flags) == 0 {
		return "", false
	}

	for _, v := range verdicts {
		if v.Recommend {
			continue
		}
		text := strings.ToLower(v.Reason + " " + strings.Join(v.Notes, " "))
		for _, flag := range flags {
			if flag != "" && strings.Contains(text, strings.ToLower(flag)) {
				return v.ID, true
			}
		}
	}

	return "", false
}
