// Package readability implements the Flesch reading-ease and
// Flesch-Kincaid grade-level formulas over plain text.
package readability

import (
	"errors"
	"strings"
	"unicode"
)

// ErrDegenerateText is returned when the formulas cannot be computed,
// typically for empty or wordless input. Callers degrade the metric to
// the "N/A" sentinel.
var ErrDegenerateText = errors.New("text has no countable words")

type stats struct {
	words     int
	sentences int
	syllables int
}

// FleschReadingEase returns the Flesch reading-ease score:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
func FleschReadingEase(text string) (float64, error) {
	st, err := textStats(text)
	if err != nil {
		return 0, err
	}
	return 206.835 - 1.015*(float64(st.words)/float64(st.sentences)) -
		84.6*(float64(st.syllables)/float64(st.words)), nil
}

// FleschKincaidGrade returns the Flesch-Kincaid grade level:
// 0.39*(words/sentences) + 11.8*(syllables/words) - 15.59.
func FleschKincaidGrade(text string) (float64, error) {
	st, err := textStats(text)
	if err != nil {
		return 0, err
	}
	return 0.39*(float64(st.words)/float64(st.sentences)) +
		11.8*(float64(st.syllables)/float64(st.words)) - 15.59, nil
}

func textStats(text string) (stats, error) {
	var st stats
	for _, word := range strings.Fields(text) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			continue
		}
		st.words++
		st.syllables += countSyllables(word)
	}
	if st.words == 0 {
		return st, ErrDegenerateText
	}

	st.sentences = countSentences(text)
	if st.sentences == 0 {
		// Prose without terminal punctuation still reads as one sentence.
		st.sentences = 1
	}
	return st, nil
}

// countSentences counts terminal punctuation runs that end a stretch of
// text containing at least one letter or digit.
func countSentences(text string) int {
	count := 0
	content := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if content {
				count++
				content = false
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			content = true
		}
	}
	return count
}

// countSyllables estimates syllables by counting vowel groups, dropping a
// trailing silent e. Every word has at least one syllable.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
