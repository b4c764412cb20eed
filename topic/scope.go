package topic

import (
	"bytes"
	"encoding/json"
)

// Scope is a set of topic patterns carried by a capability token.
// The zero value is an absent scope and grants nothing.
type Scope struct {
	patterns []string
	present  bool
}

// NewScope returns a present scope holding the given patterns.
// NewScope() with no arguments is an explicit empty scope.
func NewScope(patterns ...string) Scope {
	p := make([]string, 0, len(patterns))
	p = append(p, patterns...)
	return Scope{patterns: p, present: true}
}

// All returns a scope covering every topic.
func All() Scope {
	return NewScope(Wildcard)
}

// IsAbsent reports whether the scope was never set.
func (s Scope) IsAbsent() bool {
	return !s.present
}

// IsEmpty reports whether the scope grants no topic, absent or not.
func (s Scope) IsEmpty() bool {
	return len(s.patterns) == 0
}

// IsWildcard reports whether the scope contains "*".
func (s Scope) IsWildcard() bool {
	for _, p := range s.patterns {
		if p == Wildcard {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the patterns. Absent scopes return nil.
func (s Scope) Patterns() []string {
	if !s.present {
		return nil
	}
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Covers reports whether the scope covers the topic literally or via "*".
func (s Scope) Covers(topic string) bool {
	return Match(s.patterns, topic)
}

// CoversExplicitly reports whether the topic is listed literally.
func (s Scope) CoversExplicitly(topic string) bool {
	return MatchExplicit(s.patterns, topic)
}

// MarshalJSON encodes absent scopes as null and present ones as an array.
func (s Scope) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}
	if s.patterns == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.patterns)
}

// UnmarshalJSON accepts null, an array of strings, or a single string.
func (s *Scope) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = Scope{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*s = NewScope(single)
		return nil
	}
	var patterns []string
	if err := json.Unmarshal(trimmed, &patterns); err != nil {
		return err
	}
	*s = NewScope(patterns...)
	return nil
}
