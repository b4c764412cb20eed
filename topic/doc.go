// Package topic implements topic scopes and the matching rules the hub uses
// to decide whether a capability covers a topic.
//
// A scope is a set of patterns. A pattern is either a literal topic or the
// wildcard "*" which covers every topic. Prefix and URI template patterns are
// not supported: "https://example.com/books/*" only matches that exact string.
//
// Scopes distinguish "absent" (the claim was missing or null) from "empty"
// (an explicit empty list). Neither grants anything, but they encode
// differently so tokens round-trip unchanged.
package topic
