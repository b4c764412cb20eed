// Package util holds small helpers shared by the mercurekit packages:
// optional config values and human-readable byte sizes.
package util
