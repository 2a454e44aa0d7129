package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seekpath/scout/internal/decision"
)

const (
	EnvReviewMinSalary       = "SCOUT_REVIEW_MIN_SALARY"
	EnvReviewMinSeniority    = "SCOUT_REVIEW_MIN_SENIORITY"
	EnvReviewRedFlags        = "SCOUT_REVIEW_RED_FLAGS"
	EnvReviewBlockOnRedFlags = "SCOUT_REVIEW_BLOCK_ON_RED_FLAGS"
)

// ReviewConfig holds the persona weight table and guardrail settings
// consumed by the review pipeline. Both are read once at load time and
// passed into the decision engine as immutable values per run.
type ReviewConfig struct {
	Weights    map[string]float64 `toml:"weights"`
	Guardrails GuardrailsConfig   `toml:"guardrails"`
}

// GuardrailsConfig holds the hard pre-filter rules applied before any
// persona evaluation runs.
type GuardrailsConfig struct {
	MinSalary       float64  `toml:"min_salary"`
	MinSeniority    string   `toml:"min_seniority"`
	RedFlags        []string `toml:"red_flags"`
	BlockOnRedFlags bool     `toml:"block_on_red_flags"`
	TieBreak        string   `toml:"tie_break"`
}

// DecisionWeights returns the configured persona weight table as a decision.Weights value.
func (c *ReviewConfig) DecisionWeights() decision.Weights {
	w := make(decision.Weights, len(c.Weights))
	for persona, weight := range c.Weights {
		w[persona] = weight
	}
	return w
}

// DecisionGuardrails returns the configured guardrails as a decision.Guardrails value.
func (c *ReviewConfig) DecisionGuardrails() decision.Guardrails {
	return decision.Guardrails{
		MinSalary:       c.Guardrails.MinSalary,
		MinSeniority:    c.Guardrails.MinSeniority,
		RedFlags:        append([]string(nil), c.Guardrails.RedFlags...),
		BlockOnRedFlags: c.Guardrails.BlockOnRedFlags,
		TieBreakReject:  c.Guardrails.TieBreak == "reject",
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ReviewConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ReviewConfig) Merge(overlay *ReviewConfig) {
	if len(overlay.Weights) > 0 {
		c.Weights = overlay.Weights
	}
	if overlay.Guardrails.MinSalary != 0 {
		c.Guardrails.MinSalary = overlay.Guardrails.MinSalary
	}
	if overlay.Guardrails.MinSeniority != "" {
		c.Guardrails.MinSeniority = overlay.Guardrails.MinSeniority
	}
	if len(overlay.Guardrails.RedFlags) > 0 {
		c.Guardrails.RedFlags = overlay.Guardrails.RedFlags
	}
	if overlay.Guardrails.BlockOnRedFlags {
		c.Guardrails.BlockOnRedFlags = true
	}
	if overlay.Guardrails.TieBreak != "" {
		c.Guardrails.TieBreak = overlay.Guardrails.TieBreak
	}
}

func (c *ReviewConfig) loadDefaults() {
	if c.Guardrails.TieBreak == "" {
		c.Guardrails.TieBreak = "recommend"
	}
}

func (c *ReviewConfig) loadEnv() {
	if v := os.Getenv(EnvReviewMinSalary); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Guardrails.MinSalary = f
		}
	}
	if v := os.Getenv(EnvReviewMinSeniority); v != "" {
		c.Guardrails.MinSeniority = v
	}
	if v := os.Getenv(EnvReviewRedFlags); v != "" {
		flags := strings.Split(v, ",")
		for i := range flags {
			flags[i] = strings.TrimSpace(flags[i])
		}
		c.Guardrails.RedFlags = flags
	}
	if v := os.Getenv(EnvReviewBlockOnRedFlags); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Guardrails.BlockOnRedFlags = b
		}
	}
}

func (c *ReviewConfig) validate() error {
	if c.Guardrails.MinSalary < 0 {
		return fmt.Errorf("min_salary must not be negative")
	}
	if s := c.Guardrails.MinSeniority; s != "" && !decision.KnownSeniority(s) {
		return fmt.Errorf("unknown min_seniority: %s", s)
	}
	switch c.Guardrails.TieBreak {
	case "recommend", "reject":
	default:
		return fmt.Errorf("tie_break must be recommend or reject")
	}
	return nil
}
