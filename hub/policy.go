package hub

import (
	"fmt"

	"github.com/kbukum/mercurekit/topic"
)

// PrivatePolicy decides which grants may receive private updates.
type PrivatePolicy string

const (
	// PrivateExplicit delivers private updates only to subscribers whose
	// grant lists the topic literally. A "*" grant is not enough.
	PrivateExplicit PrivatePolicy = "explicit"

	// PrivateWildcard also accepts a "*" grant.
	PrivateWildcard PrivatePolicy = "wildcard"
)

// ParsePrivatePolicy parses a configured policy. Empty means PrivateExplicit.
func ParsePrivatePolicy(s string) (PrivatePolicy, error) {
	switch PrivatePolicy(s) {
	case "", PrivateExplicit:
		return PrivateExplicit, nil
	case PrivateWildcard:
		return PrivateWildcard, nil
	}
	return "", fmt.Errorf("unknown private policy %q", s)
}

// Allows reports whether grant may receive a private update on t.
func (p PrivatePolicy) Allows(grant topic.Scope, t string) bool {
	if p == PrivateWildcard {
		return grant.Covers(t)
	}
	return grant.CoversExplicitly(t)
}
