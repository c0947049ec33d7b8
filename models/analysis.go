package models

import (
	"encoding/json"
	"strconv"
)

// Keyword is a phrase ranked by relevance to the whole document.
// Phrases are unique within one extraction result; slice order is
// descending score.
type Keyword struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// DensityEntry is the percentage of document tokens matching a keyword
// phrase, rounded to 2 decimals.
type DensityEntry struct {
	Phrase  string  `json:"phrase"`
	Percent float64 `json:"percent"`
}

// Metric is a numeric value that degrades to the literal string "N/A"
// when its computation failed. The zero value is the degraded form.
type Metric struct {
	Value float64
	Valid bool
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte(`"N/A"`), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == `"N/A"` {
		*m = Metric{}
		return nil
	}
	if err := json.Unmarshal(data, &m.Value); err != nil {
		return err
	}
	m.Valid = true
	return nil
}

// String renders the metric for display, "N/A" when degraded.
func (m Metric) String() string {
	if !m.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

// AnalysisResult is the full output of one pipeline invocation. The shape
// is identical whether the analysis succeeded or degraded: empty slices
// and "N/A" metrics, never missing fields.
type AnalysisResult struct {
	Keywords        []Keyword      `json:"keywords"`
	Density         []DensityEntry `json:"density"`
	Entities        []string       `json:"entities"`
	NounPhrases     []string       `json:"noun_phrases"`
	MetaTitle       string         `json:"meta_title"`
	MetaDescription string         `json:"meta_description"`
	ReadingEase     Metric         `json:"reading_ease"`
	ReadingGrade    Metric         `json:"reading_grade"`

	Language      string `json:"language,omitempty"`
	WordCount     int    `json:"word_count"`
	SentenceCount int    `json:"sentence_count"`
}

// EmptyResult returns the degraded all-empty/"N/A" result shape used when
// a model is unavailable.
func EmptyResult() *AnalysisResult {
	return &AnalysisResult{
		Keywords:        []Keyword{},
		Density:         []DensityEntry{},
		Entities:        []string{},
		NounPhrases:     []string{},
		MetaTitle:       "N/A",
		MetaDescription: "N/A",
	}
}
