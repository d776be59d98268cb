package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizerLemmas(t *testing.T) {
	n, err := NewNormalizer()
	require.NoError(t, err)

	t.Run("drops punctuation and lowercases", func(t *testing.T) {
		lemmas := n.Lemmas("Where IS my order??")
		assert.Contains(t, lemmas, "order")
		for _, l := range lemmas {
			assert.NotContains(t, l, "?")
			assert.Equal(t, l, toLower(l))
		}
	})

	t.Run("reduces tokens to base form", func(t *testing.T) {
		assert.Contains(t, n.Lemmas("my orders"), "order")
		assert.Contains(t, n.Lemmas("it was here"), "be")
	})

	t.Run("deterministic", func(t *testing.T) {
		first := n.Lemmas("Track my two orders, please!")
		second := n.Lemmas("Track my two orders, please!")
		assert.Equal(t, first, second)
	})

	t.Run("empty input yields no lemmas", func(t *testing.T) {
		assert.Empty(t, n.Lemmas("  ... !?  "))
	})
}

func toLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}
