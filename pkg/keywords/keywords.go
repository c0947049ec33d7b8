// Package keywords extracts relevance-ranked keyword phrases from a
// document. The primary ranker scores candidates by embedding similarity
// to the whole document; when no embeddings backend is reachable the
// extractor falls back, once at construction time, to a local TF-IDF
// ranker.
package keywords

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/hbatwal/seo-intel/models"
	"github.com/hbatwal/seo-intel/pkg/analytics"
)

// DefaultTopN is the number of keywords one extraction returns.
const DefaultTopN = 10

// Ranker scores candidate phrases against the whole document. Scores are
// in [0,1]; higher is more relevant. Order among equal scores is
// arbitrary.
type Ranker interface {
	Rank(ctx context.Context, text string, candidates []string) ([]models.Keyword, error)
	Name() string
}

// Extractor is the process-wide keyword extraction component. Construct
// once and share; it holds only read-only state.
type Extractor struct {
	ranker Ranker
}

// Config selects the embeddings backend. Leave Endpoint empty to use the
// local TF-IDF ranker directly.
type Config struct {
	Endpoint string
	Model    string
}

// NewExtractor resolves the ranker: attempt the embeddings backend,
// probe it once, and on failure fall back to the local TF-IDF ranker.
// The fallback happens here, at configuration time, exactly once.
func NewExtractor(ctx context.Context, cfg Config) *Extractor {
	if cfg.Endpoint != "" {
		client, err := NewEmbeddingClient(cfg.Endpoint, cfg.Model)
		if err == nil {
			if _, err = client.Embed(ctx, "probe"); err == nil {
				return &Extractor{ranker: &embeddingRanker{client: client}}
			}
		}
		slog.Warn("embeddings backend unavailable, using TF-IDF ranker", "endpoint", cfg.Endpoint, "error", err)
	}
	return &Extractor{ranker: tfidfRanker{}}
}

// RankerName reports which ranker was resolved, for logging and the UI.
func (e *Extractor) RankerName() string { return e.ranker.Name() }

// TopKeywords returns the top n candidate phrases by relevance score,
// descending. Phrases are unique. Ties keep candidate-generation order.
func (e *Extractor) TopKeywords(ctx context.Context, text string, n int) ([]models.Keyword, error) {
	candidates := Candidates(text)
	if len(candidates) == 0 {
		return []models.Keyword{}, nil
	}

	scored, err := e.ranker.Rank(ctx, text, candidates)
	if err != nil {
		return nil, fmt.Errorf("keyword ranking failed: %w", err)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored, nil
}

// Candidates generates unique unigram and bigram phrases from the
// stopword-filtered token stream, in first-occurrence order. Bigrams only
// span adjacent content words so phrases never cross a stopword.
func Candidates(text string) []string {
	words := strings.Fields(text)

	type tok struct {
		clean string
		stop  bool
	}
	toks := make([]tok, 0, len(words))
	for _, w := range words {
		clean := analytics.CleanToken(w)
		if clean == "" {
			continue
		}
		toks = append(toks, tok{clean: clean, stop: analytics.IsStopword(clean)})
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(phrase string) {
		if _, ok := seen[phrase]; ok {
			return
		}
		seen[phrase] = struct{}{}
		out = append(out, phrase)
	}

	for i, t := range toks {
		if t.stop || len(t.clean) < 3 {
			continue
		}
		add(t.clean)
		if i+1 < len(toks) && !toks[i+1].stop && len(toks[i+1].clean) >= 3 {
			add(t.clean + " " + toks[i+1].clean)
		}
	}
	return out
}

// embeddingRanker scores each candidate by cosine similarity between its
// embedding and the whole document's embedding.
type embeddingRanker struct {
	client *EmbeddingClient
}

func (r *embeddingRanker) Name() string { return "embeddings" }

func (r *embeddingRanker) Rank(ctx context.Context, text string, candidates []string) ([]models.Keyword, error) {
	docVec, err := r.client.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed document: %w", err)
	}

	out := make([]models.Keyword, 0, len(candidates))
	for _, phrase := range candidates {
		vec, err := r.client.Embed(ctx, phrase)
		if err != nil {
			return nil, fmt.Errorf("failed to embed candidate %q: %w", phrase, err)
		}
		out = append(out, models.Keyword{Phrase: phrase, Score: cosine(docVec, vec)})
	}
	return out, nil
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
