package keywords

import (
	"context"
	"math"
	"strings"

	"github.com/hbatwal/seo-intel/models"
	"github.com/hbatwal/seo-intel/pkg/analytics"
)

// tfidfRanker is the local fallback ranker. It treats the document's
// sentences as the corpus: term frequency across the document times
// inverse sentence frequency. Deterministic and dependency-free.
type tfidfRanker struct{}

func (tfidfRanker) Name() string { return "tfidf" }

func (tfidfRanker) Rank(_ context.Context, text string, candidates []string) ([]models.Keyword, error) {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		sentences = []string{text}
	}

	// Per-sentence content-token sets for sentence-frequency lookups.
	sentenceTokens := make([]map[string]struct{}, len(sentences))
	for i, s := range sentences {
		set := make(map[string]struct{})
		for _, tok := range analytics.ContentTokens(s) {
			set[tok] = struct{}{}
		}
		sentenceTokens[i] = set
	}

	freq := analytics.WordFrequency(text)
	totalTokens := 0
	for _, c := range freq {
		totalTokens += c
	}
	if totalTokens == 0 {
		totalTokens = 1
	}

	scorePart := func(word string) float64 {
		tf := float64(freq[word]) / float64(totalTokens)
		sf := 0
		for _, set := range sentenceTokens {
			if _, ok := set[word]; ok {
				sf++
			}
		}
		idf := math.Log(float64(1+len(sentences)) / float64(1+sf))
		return tf * (1 + idf)
	}

	out := make([]models.Keyword, 0, len(candidates))
	maxScore := 0.0
	for _, phrase := range candidates {
		score := 0.0
		parts := strings.Split(phrase, " ")
		for _, p := range parts {
			score += scorePart(p)
		}
		score /= float64(len(parts))
		if len(parts) > 1 {
			// Mild preference for multi-word phrases, mirroring how
			// embedding rankers favor specific phrases over single terms.
			score *= 1.1
		}
		if score > maxScore {
			maxScore = score
		}
		out = append(out, models.Keyword{Phrase: phrase, Score: score})
	}

	// Normalize into [0,1] so scores are comparable with cosine output.
	if maxScore > 0 {
		for i := range out {
			out[i].Score /= maxScore
		}
	}
	return out, nil
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := raw[:0]
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
