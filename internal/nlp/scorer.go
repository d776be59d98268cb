package nlp

import (
	"regexp"
	"strings"
	"sync"

	"github.com/leanlee/shopchat/internal/models"

	"go.uber.org/zap"
)

// FallbackIntent is the sentinel returned when no pattern scores positively.
const FallbackIntent = "fallback"

// EntityPolicy decides which capture wins when several regex patterns match
// the same input. The stored rules carry no precedence of their own, so the
// choice is left to the caller.
type EntityPolicy int

const (
	// EntityLastMatch keeps the capture of the last matching regex in
	// listing order.
	EntityLastMatch EntityPolicy = iota
	// EntityFirstMatch keeps the first capture and ignores later ones.
	EntityFirstMatch
)

// Scorer ranks intents against an input using the stored pattern rules.
type Scorer struct {
	normalizer   *Normalizer
	logger       *zap.Logger
	entityPolicy EntityPolicy

	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

func NewScorer(normalizer *Normalizer, logger *zap.Logger) *Scorer {
	return &Scorer{
		normalizer:   normalizer,
		logger:       logger,
		entityPolicy: EntityLastMatch,
		cache:        make(map[string]*regexp.Regexp),
	}
}

// SetEntityPolicy overrides the default last-match-wins entity extraction.
func (s *Scorer) SetEntityPolicy(policy EntityPolicy) {
	s.entityPolicy = policy
}

// Score returns the best-scoring intent and any entity captured by a regex
// pattern. Scores are computed fresh on every call. Keyword rules fire when
// every lemma of the rule appears among the input lemmas; regex rules match
// the lowercased raw input. Ties break on first-seen intent order, so the
// order of the pattern slice is significant. When nothing scores positively
// the fallback sentinel is returned with no entity.
func (s *Scorer) Score(rawInput string, patterns []models.Pattern) (string, string) {
	lemmas := s.normalizer.Lemmas(rawInput)
	lemmaSet := make(map[string]struct{}, len(lemmas))
	for _, l := range lemmas {
		lemmaSet[l] = struct{}{}
	}
	lowered := strings.ToLower(rawInput)

	scores := make(map[string]float64, len(patterns))
	var intentOrder []string
	var entity string

	for _, p := range patterns {
		if _, seen := scores[p.Intent]; !seen {
			scores[p.Intent] = 0
			intentOrder = append(intentOrder, p.Intent)
		}

		switch p.Kind {
		case models.PatternKeyword:
			if s.keywordMatches(p.Pattern, lemmaSet) {
				scores[p.Intent] += p.Weight
			}
		case models.PatternRegex:
			re, err := s.compile(p.Pattern)
			if err != nil {
				s.logger.Warn("Skipping invalid regex pattern",
					zap.String("intent", p.Intent),
					zap.String("pattern", p.Pattern),
					zap.Error(err),
				)
				continue
			}
			match := re.FindStringSubmatch(lowered)
			if match == nil {
				continue
			}
			scores[p.Intent] += p.Weight
			if len(match) > 1 && match[1] != "" {
				if s.entityPolicy == EntityLastMatch || entity == "" {
					entity = match[1]
				}
			}
		}
	}

	best := FallbackIntent
	bestScore := 0.0
	for _, intent := range intentOrder {
		if scores[intent] > bestScore {
			best = intent
			bestScore = scores[intent]
		}
	}
	if bestScore <= 0 {
		return FallbackIntent, ""
	}
	return best, entity
}

// keywordMatches reports whether every lemma of the rule text is present in
// the input lemma set, regardless of order.
func (s *Scorer) keywordMatches(pattern string, lemmaSet map[string]struct{}) bool {
	patternLemmas := s.normalizer.Lemmas(pattern)
	if len(patternLemmas) == 0 {
		return false
	}
	for _, pl := range patternLemmas {
		if _, ok := lemmaSet[pl]; !ok {
			return false
		}
	}
	return true
}

func (s *Scorer) compile(pattern string) (*regexp.Regexp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if re, ok := s.cache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	s.cache[pattern] = re
	return re, nil
}
