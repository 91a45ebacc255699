package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadability(t *testing.T) {
	t.Parallel()

	t.Run("empty text scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, Readability(""))
	})

	t.Run("no terminators scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, Readability("words without any ending"))
	})

	t.Run("score above range is clamped", func(t *testing.T) {
		t.Parallel()
		// one token, one sentence, no syllables
		assert.Equal(t, 100.0, Readability("..."))
	})

	t.Run("matches formula", func(t *testing.T) {
		t.Parallel()
		// 3 words, 1 sentence, 4 syllables (ea-i, i, u)
		text := "Reading is fun."
		want := fleschBase - fleschSentenceWeight*3 - fleschSyllableWeight*(4.0/3.0)
		assert.InDelta(t, want, Readability(text), 1e-9)
	})

	t.Run("clamped to zero for dense text", func(t *testing.T) {
		t.Parallel()
		text := "Incomprehensibilities notwithstanding, institutionalization characteristically overcomplicates organizational interoperability considerations."
		assert.Equal(t, 0.0, Readability(text))
	})

	t.Run("run of terminators is one sentence", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Readability("Go now."), Readability("Go now?!..."))
	})
}

func TestReadability_Bounds(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"a.",
		"Hi! Yo? Ok.",
		"# Heading\n\nSome text. More text here, with commas; and clauses.",
		"aeiou aeiou aeiou aeiou.",
		"x.y.z.w.v.u",
	}
	for _, in := range inputs {
		score := Readability(in)
		assert.GreaterOrEqual(t, score, 0.0, "input %q", in)
		assert.LessOrEqual(t, score, 100.0, "input %q", in)
	}
}

func TestCountRuns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		sentences int
		syllables int
	}{
		{"", 0, 0},
		{"Hello.", 1, 2},
		{"Queue!!! Aha?", 2, 3},
		{"BEAUTIFUL", 0, 3},
		{"rhythm", 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.sentences, countSentences(tt.text), "sentences in %q", tt.text)
		assert.Equal(t, tt.syllables, countSyllables(tt.text), "syllables in %q", tt.text)
	}
}
