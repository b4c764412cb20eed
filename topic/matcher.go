package topic

// Wildcard is the pattern that covers every topic.
const Wildcard = "*"

// MatchPattern reports whether a single pattern covers the topic.
// Only exact strings and the universal wildcard match.
func MatchPattern(pattern, topic string) bool {
	return pattern == Wildcard || pattern == topic
}

// Match returns true if any of the patterns covers the topic.
func Match(patterns []string, topic string) bool {
	for _, p := range patterns {
		if MatchPattern(p, topic) {
			return true
		}
	}
	return false
}

// MatchExplicit is like Match but ignores the wildcard: the topic must be
// listed literally.
func MatchExplicit(patterns []string, topic string) bool {
	for _, p := range patterns {
		if p == topic {
			return true
		}
	}
	return false
}
