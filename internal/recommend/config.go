package recommend

import "fmt"

// RankingConfig holds the list-building knobs. The scoring constants
// themselves are fixed so scores stay reproducible.
type RankingConfig struct {
	// PrimaryLimit caps the primary list.
	PrimaryLimit int `koanf:"primary_limit" json:"primary_limit"`

	// ContrarianLimit caps the contrarian list.
	ContrarianLimit int `koanf:"contrarian_limit" json:"contrarian_limit"`

	// MinBeforeCutoff is how many primary picks are accepted unconditionally
	// before the cutoff rule applies. The first pick is always accepted, so
	// 0 behaves like 1.
	MinBeforeCutoff int `koanf:"min_before_cutoff" json:"min_before_cutoff"`

	// CutoffRatio rejects a candidate whose adjusted score is below this
	// fraction of the last accepted pick's score.
	CutoffRatio float64 `koanf:"cutoff_ratio" json:"cutoff_ratio"`

	// MaxQuotes is how many matching quotes each alignment carries.
	MaxQuotes int `koanf:"max_quotes" json:"max_quotes"`
}

// DefaultRankingConfig returns the production ranking parameters.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		PrimaryLimit:    5,
		ContrarianLimit: 3,
		MinBeforeCutoff: 3,
		CutoffRatio:     0.7,
		MaxQuotes:       2,
	}
}

// Validate checks that every knob is usable.
func (c RankingConfig) Validate() error {
	if c.PrimaryLimit < 1 {
		return fmt.Errorf("primary_limit must be >= 1, got %d", c.PrimaryLimit)
	}
	if c.ContrarianLimit < 0 {
		return fmt.Errorf("contrarian_limit must be >= 0, got %d", c.ContrarianLimit)
	}
	if c.MinBeforeCutoff < 0 {
		return fmt.Errorf("min_before_cutoff must be >= 0, got %d", c.MinBeforeCutoff)
	}
	if c.CutoffRatio <= 0 || c.CutoffRatio > 1 {
		return fmt.Errorf("cutoff_ratio must be in (0, 1], got %v", c.CutoffRatio)
	}
	if c.MaxQuotes < 1 {
		return fmt.Errorf("max_quotes must be >= 1, got %d", c.MaxQuotes)
	}
	return nil
}
