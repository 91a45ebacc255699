package health

import (
	"strings"
)

// Flesch reading-ease coefficients.
const (
	fleschBase           = 206.835
	fleschSentenceWeight = 1.015
	fleschSyllableWeight = 84.6
)

// Readability returns a reading-ease score for text in [0, 100]; higher is
// easier. It returns 0 when text has no words or no sentence terminators.
//
// Syllables are approximated by counting runs of vowels, and sentences by
// counting runs of '.', '!' and '?'. The approximation is intentional: scores
// must stay reproducible across versions.
func Readability(text string) float64 {
	sentences := countSentences(text)
	words := len(strings.Fields(text))
	if sentences == 0 || words == 0 {
		return 0
	}

	syllables := countSyllables(text)
	score := fleschBase -
		fleschSentenceWeight*(float64(words)/float64(sentences)) -
		fleschSyllableWeight*(float64(syllables)/float64(words))

	return clamp(score, 0, 100)
}

// countSentences counts maximal runs of sentence terminators.
func countSentences(text string) int {
	return countRuns(text, isSentenceTerminator)
}

// countSyllables counts maximal runs of vowels, ignoring case.
func countSyllables(text string) int {
	return countRuns(text, isVowel)
}

// countRuns counts maximal runs of runes satisfying match.
func countRuns(text string, match func(rune) bool) int {
	runs := 0
	inRun := false
	for _, r := range text {
		if match(r) {
			if !inRun {
				runs++
				inRun = true
			}
			continue
		}
		inRun = false
	}
	return runs
}

func isSentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
