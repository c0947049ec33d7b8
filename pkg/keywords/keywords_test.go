package keywords

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCandidates(t *testing.T) {
	t.Run("filters stopwords and short tokens", func(t *testing.T) {
		got := Candidates("The quick brown fox is on a hill")
		for _, c := range got {
			if c == "the" || c == "is" || c == "on" {
				t.Errorf("stopword %q leaked into candidates", c)
			}
		}
	})

	t.Run("includes adjacent-content bigrams", func(t *testing.T) {
		got := Candidates("machine learning improves search ranking")
		want := map[string]bool{
			"machine": false, "machine learning": false, "learning": false,
			"search ranking": false,
		}
		for _, c := range got {
			if _, ok := want[c]; ok {
				want[c] = true
			}
		}
		for phrase, found := range want {
			if !found {
				t.Errorf("candidate %q missing from %v", phrase, got)
			}
		}
	})

	t.Run("bigrams never span stopwords", func(t *testing.T) {
		got := Candidates("cats and dogs")
		for _, c := range got {
			if c == "cats dogs" || c == "cats and" || c == "and dogs" {
				t.Errorf("bigram %q spans a stopword", c)
			}
		}
	})

	t.Run("deduplicates preserving first occurrence", func(t *testing.T) {
		got := Candidates("gopher gopher gopher")
		count := 0
		for _, c := range got {
			if c == "gopher" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("candidate %q appears %d times, want 1", "gopher", count)
		}
	})

	t.Run("empty text yields none", func(t *testing.T) {
		if got := Candidates(""); len(got) != 0 {
			t.Errorf("Candidates(\"\") = %v, want empty", got)
		}
	})
}

func TestTFIDFRanker(t *testing.T) {
	text := "Solar energy powers homes. Solar energy reduces bills. Wind turbines complement solar energy installations."

	ranker := tfidfRanker{}
	scored, err := ranker.Rank(context.Background(), text, Candidates(text))
	if err != nil {
		t.Fatalf("Rank() failed: %v", err)
	}
	if len(scored) == 0 {
		t.Fatal("Rank() returned nothing")
	}

	for _, kw := range scored {
		if kw.Score < 0 || kw.Score > 1 {
			t.Errorf("score for %q out of [0,1]: %v", kw.Phrase, kw.Score)
		}
	}

	t.Run("deterministic", func(t *testing.T) {
		again, err := ranker.Rank(context.Background(), text, Candidates(text))
		if err != nil {
			t.Fatalf("second Rank() failed: %v", err)
		}
		if len(again) != len(scored) {
			t.Fatalf("lengths differ: %d vs %d", len(again), len(scored))
		}
		for i := range scored {
			if scored[i] != again[i] {
				t.Errorf("entry %d differs: %v vs %v", i, scored[i], again[i])
			}
		}
	})
}

func TestExtractorTopKeywords(t *testing.T) {
	e := NewExtractor(context.Background(), Config{}) // no endpoint: TF-IDF
	if e.RankerName() != "tfidf" {
		t.Fatalf("RankerName() = %q, want tfidf", e.RankerName())
	}

	text := "Solar energy powers homes. Solar energy reduces bills. Solar energy keeps growing. " +
		"Wind turbines complement solar energy installations across sunny regions."
	kws, err := e.TopKeywords(context.Background(), text, DefaultTopN)
	if err != nil {
		t.Fatalf("TopKeywords() failed: %v", err)
	}
	if len(kws) == 0 || len(kws) > DefaultTopN {
		t.Fatalf("got %d keywords, want 1..%d", len(kws), DefaultTopN)
	}
	for i := 1; i < len(kws); i++ {
		if kws[i].Score > kws[i-1].Score {
			t.Errorf("not sorted descending at %d: %v then %v", i, kws[i-1], kws[i])
		}
	}
	seen := make(map[string]struct{})
	for _, kw := range kws {
		if _, ok := seen[kw.Phrase]; ok {
			t.Errorf("duplicate phrase %q", kw.Phrase)
		}
		seen[kw.Phrase] = struct{}{}
	}

	t.Run("empty text yields empty slice", func(t *testing.T) {
		kws, err := e.TopKeywords(context.Background(), "", DefaultTopN)
		if err != nil {
			t.Fatalf("TopKeywords() failed: %v", err)
		}
		if len(kws) != 0 {
			t.Errorf("got %v, want empty", kws)
		}
	})
}

func TestExtractorFallsBackOnce(t *testing.T) {
	t.Run("unreachable endpoint falls back to tfidf", func(t *testing.T) {
		e := NewExtractor(context.Background(), Config{Endpoint: "http://127.0.0.1:1/v1/embeddings", Model: "m"})
		if e.RankerName() != "tfidf" {
			t.Errorf("RankerName() = %q, want tfidf", e.RankerName())
		}
	})

	t.Run("reachable endpoint is kept", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
		}))
		defer srv.Close()

		e := NewExtractor(context.Background(), Config{Endpoint: srv.URL, Model: "m"})
		if e.RankerName() != "embeddings" {
			t.Errorf("RankerName() = %q, want embeddings", e.RankerName())
		}
	})
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"length mismatch", []float64{1}, []float64{1, 2}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosine(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}
