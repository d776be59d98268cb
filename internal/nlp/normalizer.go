package nlp

import (
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Normalizer turns free text into an ordered sequence of lowercase lemmas,
// dropping punctuation and whitespace tokens.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

func NewNormalizer() (*Normalizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}
	return &Normalizer{lemmatizer: lemmatizer}, nil
}

// Lemmas lowercases the text, tokenizes it on non-word runes and reduces each
// token to its dictionary base form. Deterministic for a fixed dictionary.
func (n *Normalizer) Lemmas(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})

	lemmas := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.Trim(tok, "'")
		if tok == "" {
			continue
		}
		lemmas = append(lemmas, n.lemmatizer.Lemma(tok))
	}
	return lemmas
}
