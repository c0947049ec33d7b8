// Package acquire turns one of the three content sources (pasted text, a
// URL, an uploaded file) into a plain-text Document.
package acquire

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/hbatwal/seo-intel/models"
	"github.com/hbatwal/seo-intel/pkg/caching"
	"github.com/hbatwal/seo-intel/pkg/fetcher"
)

const (
	// minParagraphRunes filters boilerplate: only <p> blocks longer than
	// this are harvested from fetched pages.
	minParagraphRunes = 40

	// minFetchedRunes is the floor below which a fetched page is reported
	// as having insufficient content.
	minFetchedRunes = 100
)

// Source describes one of the three mutually exclusive inputs.
type Source struct {
	Kind models.SourceKind

	Text string // SourcePasted

	URL string // SourceFetched

	Filename string // SourceUploaded
	Data     []byte
}

// Acquirer resolves Sources to Documents. URL fetches are cached by exact
// URL string for the lifetime of the process.
type Acquirer struct {
	fetcher *fetcher.Fetcher
	cache   *caching.Cache
}

func NewAcquirer(f *fetcher.Fetcher, c *caching.Cache) *Acquirer {
	return &Acquirer{fetcher: f, cache: c}
}

// IsValidURL reports whether raw has both a non-empty scheme and a
// non-empty host. No network I/O.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Acquire produces a Document for the given source, or a typed failure.
// File extraction failures degrade to an empty-text Document alongside a
// non-nil models.ErrExtraction so callers can warn without aborting.
func (a *Acquirer) Acquire(ctx context.Context, src Source) (*models.Document, error) {
	switch src.Kind {
	case models.SourcePasted:
		return &models.Document{Text: src.Text, Source: models.SourcePasted}, nil
	case models.SourceFetched:
		return a.fromURL(ctx, src.URL)
	case models.SourceUploaded:
		return a.fromFile(src.Filename, src.Data)
	default:
		return nil, models.ValidationErr("unknown source kind %q", src.Kind)
	}
}

func (a *Acquirer) fromURL(ctx context.Context, rawURL string) (*models.Document, error) {
	if !IsValidURL(rawURL) {
		return nil, models.ValidationErr("URL needs a scheme and a host: %q", rawURL)
	}

	if cached, ok := a.cache.Get(rawURL); ok {
		return cached, nil
	}

	gq, err := a.fetcher.GetHtml(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrFetch, err)
	}

	text := extractParagraphs(gq)
	if utf8.RuneCountInString(text) < minFetchedRunes {
		return nil, fmt.Errorf("%w: got %d characters", models.ErrInsufficientContent, utf8.RuneCountInString(text))
	}

	doc := &models.Document{Source: models.SourceFetched, Origin: rawURL, Text: text}
	enrichFromArticle(doc, gq, rawURL)

	a.cache.Set(rawURL, doc)
	return doc, nil
}

// extractParagraphs collects every <p> text block longer than
// minParagraphRunes and joins them with newlines.
func extractParagraphs(gq *goquery.Document) string {
	var paragraphs []string
	gq.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(text) > minParagraphRunes {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n")
}

// enrichFromArticle runs go-readability over the fetched page to pick up
// title, excerpt and site name. Best effort: enrichment errors are
// ignored, the paragraph text above is what gets analyzed.
func enrichFromArticle(doc *models.Document, gq *goquery.Document, rawURL string) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	html, err := gq.Html()
	if err != nil {
		return
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return
	}
	doc.PageTitle = strings.TrimSpace(article.Title)
	doc.Excerpt = strings.TrimSpace(article.Excerpt)
	doc.SiteName = strings.TrimSpace(article.SiteName)
}

func (a *Acquirer) fromFile(filename string, data []byte) (*models.Document, error) {
	doc := &models.Document{Source: models.SourceUploaded, Origin: filename}

	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".txt"):
		if !utf8.Valid(data) {
			return doc, fmt.Errorf("%w: %s is not valid UTF-8", models.ErrExtraction, filename)
		}
		doc.Text = string(data)
		return doc, nil

	case strings.HasSuffix(strings.ToLower(filename), ".docx"):
		text, err := extractDocx(data)
		if err != nil {
			return doc, fmt.Errorf("%w: %s", models.ErrExtraction, err)
		}
		doc.Text = text
		return doc, nil

	default:
		// Unsupported extension yields empty text, not an error.
		return doc, nil
	}
}
