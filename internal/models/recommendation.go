package models

import (
	"encoding/json"
	"fmt"
)

// Provenance tags identifying which path produced a recommendation set.
const (
	SourceLocal          = "local"
	SourceRemote         = "remote"
	SourceNoTransactions = "no transactions available"
)

// Recommendation is one savings recommendation. The local backend produces
// plain text (Actions nil); the remote backend produces a description plus a
// list of concrete actions. The JSON shape follows suit: a bare string for
// plain items, an object for structured ones.
type Recommendation struct {
	Description string   `json:"description"`
	Actions     []string `json:"actions,omitempty"`
}

// Plain reports whether this is a plain-text recommendation.
func (r Recommendation) Plain() bool {
	return r.Actions == nil
}

// MarshalJSON renders plain recommendations as bare strings and structured
// ones as objects, matching what each backend originally returned.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	if r.Plain() {
		return json.Marshal(r.Description)
	}
	type alias Recommendation
	return json.Marshal(alias(r))
}

// UnmarshalJSON accepts either a bare string or a {description, actions} object.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Description = s
		r.Actions = nil
		return nil
	}
	type alias Recommendation
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("recommendation is neither a string nor an object: %w", err)
	}
	*r = Recommendation(a)
	return nil
}

// RecommendationSet pairs an ordered list of recommendations with the
// provenance of the backend that produced them.
type RecommendationSet struct {
	Recommendations []Recommendation `json:"recommendations"`
	Source          string           `json:"source"`
}
