// Package annotate wraps the prose NLP library into the single linguistic
// pass the pipeline needs: tokens, named-entity spans and noun-phrase
// chunks.
package annotate

import (
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// Annotation is the output of one annotator pass over a document.
type Annotation struct {
	Entities   []string // raw entity-span texts, document order, with duplicates
	NounChunks []string // raw noun-phrase texts, document order, with duplicates
	Sentences  int
	Tokens     int
}

// Annotator runs tokenization, POS tagging and NER. The underlying model
// data loads on first use and is read-only afterwards, so one Annotator
// can be shared across requests.
type Annotator struct{}

// NewAnnotator constructs the annotator and forces the model load with a
// tiny probe document, so an unavailable model surfaces at startup
// instead of on the first user request.
func NewAnnotator() (*Annotator, error) {
	if _, err := prose.NewDocument("probe."); err != nil {
		return nil, fmt.Errorf("failed to load annotator model: %w", err)
	}
	return &Annotator{}, nil
}

// Annotate runs the single linguistic pass over text.
func (a *Annotator) Annotate(text string) (*Annotation, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("annotator failed: %w", err)
	}

	ann := &Annotation{
		Sentences: len(doc.Sentences()),
		Tokens:    len(doc.Tokens()),
	}
	for _, ent := range doc.Entities() {
		ann.Entities = append(ann.Entities, ent.Text)
	}
	ann.NounChunks = chunkNounPhrases(doc.Tokens())
	return ann, nil
}

// chunkNounPhrases groups token runs of the shape
// (determiner|possessive)? adjective* noun+ into noun phrases.
func chunkNounPhrases(tokens []prose.Token) []string {
	var (
		chunks  []string
		current []string
		hasNoun bool
	)

	flush := func() {
		if hasNoun && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
		}
		current = nil
		hasNoun = false
	}

	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			current = append(current, tok.Text)
			hasNoun = true
		case tok.Tag == "DT" || tok.Tag == "PRP$" || strings.HasPrefix(tok.Tag, "JJ"):
			if hasNoun {
				// A new determiner/adjective after nouns starts a new phrase.
				flush()
			}
			current = append(current, tok.Text)
		default:
			flush()
		}
	}
	flush()

	return chunks
}
