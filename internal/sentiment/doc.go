// Package sentiment implements the heuristic feedback classifier.
//
// Classification is a deterministic rule table: case-insensitive keyword
// matching against fixed band keyword sets, first matching band wins.
// The only non-deterministic part is the score magnitude within a band,
// drawn from an injectable randomness source so tests can pin it.
package sentiment
