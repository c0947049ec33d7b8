// Package analysis composes the linguistic annotator, the keyword
// extractor and the readability formulas into the single Analyze
// operation the UI consumes.
package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"

	"github.com/hbatwal/seo-intel/models"
	"github.com/hbatwal/seo-intel/pkg/annotate"
	"github.com/hbatwal/seo-intel/pkg/keywords"
	"github.com/hbatwal/seo-intel/pkg/readability"
)

const (
	metaTitleLimit       = 60
	metaDescriptionLimit = 160
	ellipsis             = "..."
)

// Pipeline holds the read-only model state shared across requests.
// Construct once at startup and inject where needed.
type Pipeline struct {
	annotator *annotate.Annotator
	extractor *keywords.Extractor
	detector  lingua.LanguageDetector
}

// NewPipeline wires the pipeline. Both models must already be resolved;
// pass the annotator from annotate.NewAnnotator and the extractor from
// keywords.NewExtractor.
func NewPipeline(annotator *annotate.Annotator, extractor *keywords.Extractor) *Pipeline {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English, lingua.Spanish, lingua.French, lingua.German,
			lingua.Portuguese, lingua.Italian, lingua.Dutch, lingua.Hindi,
		).
		Build()
	return &Pipeline{annotator: annotator, extractor: extractor, detector: detector}
}

// Analyze runs the full pipeline over text. It never panics past its
// boundary: readability problems degrade to "N/A" fields, while an
// unavailable annotator or keyword model yields models.ErrModelUnavailable
// together with the all-empty result shape.
func (p *Pipeline) Analyze(ctx context.Context, text string) (*models.AnalysisResult, error) {
	if p.annotator == nil || p.extractor == nil {
		return models.EmptyResult(), models.ErrModelUnavailable
	}

	ann, err := p.annotator.Annotate(text)
	if err != nil {
		return models.EmptyResult(), fmt.Errorf("%w: %s", models.ErrModelUnavailable, err)
	}

	kws, err := p.extractor.TopKeywords(ctx, text, keywords.DefaultTopN)
	if err != nil {
		return models.EmptyResult(), fmt.Errorf("%w: %s", models.ErrModelUnavailable, err)
	}

	result := &models.AnalysisResult{
		Keywords:        kws,
		Entities:        uniqueEntities(ann.Entities),
		NounPhrases:     uniqueNounPhrases(ann.NounChunks),
		MetaTitle:       MetaTitle(text),
		MetaDescription: MetaDescription(text),
		Density:         Density(text, kws),
		WordCount:       len(strings.Fields(text)),
		SentenceCount:   ann.Sentences,
	}

	if ease, err := readability.FleschReadingEase(text); err == nil {
		result.ReadingEase = models.Metric{Value: round2(ease), Valid: true}
	}
	if grade, err := readability.FleschKincaidGrade(text); err == nil {
		result.ReadingGrade = models.Metric{Value: round2(grade), Valid: true}
	}

	if lang, ok := p.detector.DetectLanguageOf(text); ok {
		result.Language = lang.String()
	}

	return result, nil
}

// uniqueEntities keeps entity spans whose trimmed length exceeds one
// character, case preserved, deduplicated in first-occurrence order.
func uniqueEntities(spans []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, s := range spans {
		if utf8.RuneCountInString(strings.TrimSpace(s)) <= 1 {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// uniqueNounPhrases keeps lower-cased chunks whose trimmed length exceeds
// three characters, deduplicated in first-occurrence order.
func uniqueNounPhrases(chunks []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, c := range chunks {
		if utf8.RuneCountInString(strings.TrimSpace(c)) <= 3 {
			continue
		}
		lower := strings.ToLower(c)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, lower)
	}
	return out
}

// MetaTitle derives a title suggestion: the first period-delimited
// sentence truncated to 60 characters with an ellipsis marker. Blank text
// has no sentences and yields "N/A".
func MetaTitle(text string) string {
	if strings.TrimSpace(text) == "" {
		return "N/A"
	}
	first, _, _ := strings.Cut(text, ".")
	return truncateRunes(first, metaTitleLimit) + ellipsis
}

// MetaDescription derives a description suggestion: the trimmed text
// truncated to 160 characters, ellipsis appended unconditionally.
func MetaDescription(text string) string {
	return truncateRunes(strings.TrimSpace(text), metaDescriptionLimit) + ellipsis
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Density computes, for every keyword phrase, the percentage of
// whitespace tokens of text equal to the phrase (case-insensitive),
// rounded to 2 decimals. A multi-word phrase can never equal a single
// token and always scores 0; that undercount is a deliberate carryover
// of upstream behavior. Zero-token text has no defined densities and
// returns an empty slice.
func Density(text string, kws []models.Keyword) []models.DensityEntry {
	tokens := strings.Fields(strings.ToLower(text))
	out := []models.DensityEntry{}
	if len(tokens) == 0 {
		return out
	}

	for _, kw := range kws {
		phrase := strings.ToLower(kw.Phrase)
		count := 0
		for _, tok := range tokens {
			if tok == phrase {
				count++
			}
		}
		pct := round2(float64(count) / float64(len(tokens)) * 100)
		out = append(out, models.DensityEntry{Phrase: kw.Phrase, Percent: pct})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
