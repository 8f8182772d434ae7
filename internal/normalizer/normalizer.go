// Package normalizer turns raw transaction descriptions into the canonical
// short text the classifier was trained on.
package normalizer

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Override maps a substring pattern to a canonical replacement phrase.
type Override struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// DefaultOverrides is the built-in override table. Order matters: the first
// pattern found in the input wins, so maintainers must keep the most specific
// patterns first.
var DefaultOverrides = []Override{
	{Pattern: "NETFLIX", Replacement: "netflix"},
	{Pattern: "AMAZON.COM", Replacement: "amazon goods"},
}

// Normalizer holds an ordered override table and applies it ahead of the
// generic cleaning fallback. The table is read-only after construction, so a
// Normalizer is safe for concurrent use.
type Normalizer struct {
	overrides []Override
}

// New creates a Normalizer with the given override table. A nil table uses
// the built-in defaults.
func New(overrides []Override) *Normalizer {
	if overrides == nil {
		overrides = DefaultOverrides
	}
	return &Normalizer{overrides: overrides}
}

// LoadOverrides reads an override table from a YAML file. The file holds a
// top-level `overrides` list whose order defines match precedence.
func LoadOverrides(path string) ([]Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read overrides file: %w", err)
	}

	var doc struct {
		Overrides []Override `yaml:"overrides"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse overrides file: %w", err)
	}

	return doc.Overrides, nil
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// Normalize maps raw text to its canonical form. The override table is
// scanned in order and the first pattern that appears as a substring of the
// input short-circuits with its replacement. First match wins even when a
// later pattern would be a longer match. When nothing matches, the text falls
// through to Clean. Always returns a string, possibly empty.
func (n *Normalizer) Normalize(raw string) string {
	for _, o := range n.overrides {
		if strings.Contains(raw, o.Pattern) {
			return o.Replacement
		}
	}
	return Clean(raw)
}

// Clean lowercases the text, strips everything that is not an ASCII letter,
// digit or whitespace, collapses whitespace runs and trims the ends.
// Idempotent: cleaning already-clean text is a fixed point.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = nonAlphanumeric.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
