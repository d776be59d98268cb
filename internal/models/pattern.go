package models

type PatternKind string

const (
	PatternKeyword PatternKind = "keyword"
	PatternRegex   PatternKind = "regex"
)

// Pattern is one scoring rule. Several patterns usually share an intent and
// their weights accumulate during scoring.
type Pattern struct {
	ID      int64       `db:"id"`
	Intent  string      `db:"intent"`
	Kind    PatternKind `db:"kind"`
	Pattern string      `db:"pattern"`
	Weight  float64     `db:"weight"`
}

// Answer is the canned reply stored for an intent.
type Answer struct {
	Intent string `db:"intent"`
	Answer string `db:"answer"`
}
