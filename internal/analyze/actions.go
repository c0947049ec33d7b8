// Package analyze implements the one-shot CLI analysis command.
package analyze

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hbatwal/seo-intel/models"
	"github.com/hbatwal/seo-intel/pkg/acquire"
	"github.com/hbatwal/seo-intel/pkg/analysis"
	"github.com/hbatwal/seo-intel/pkg/annotate"
	"github.com/hbatwal/seo-intel/pkg/caching"
	"github.com/hbatwal/seo-intel/pkg/export"
	"github.com/hbatwal/seo-intel/pkg/fetcher"
	"github.com/hbatwal/seo-intel/pkg/keywords"
)

// Action runs the pipeline once over --text, --url or --file and prints
// the report to stdout as JSON or CSV.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	src, err := sourceFromFlags(c)
	if err != nil {
		return err
	}

	annotator, err := annotate.NewAnnotator()
	if err != nil {
		return fmt.Errorf("annotator model failed to load: %w", err)
	}
	extractor := keywords.NewExtractor(c.Context, keywords.Config{
		Endpoint: config.Embeddings.Endpoint,
		Model:    config.Embeddings.Model,
	})
	logger.Info("keyword ranker resolved", "ranker", extractor.RankerName())

	f := fetcher.NewFetcher(config.Fetch.Timeout, config.Fetch.UserAgent)
	acquirer := acquire.NewAcquirer(f, caching.NewCache(config.Fetch.CacheTTL))
	pipeline := analysis.NewPipeline(annotator, extractor)

	doc, err := acquirer.Acquire(c.Context, src)
	if err != nil {
		return err
	}
	result, err := pipeline.Analyze(c.Context, doc.Text)
	if err != nil {
		return err
	}

	switch c.String("format") {
	case "csv":
		return export.WriteCSV(os.Stdout, result)
	case "json", "":
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or csv)", c.String("format"))
	}
}

func sourceFromFlags(c *cli.Context) (acquire.Source, error) {
	set := 0
	for _, flag := range []string{"text", "url", "file"} {
		if c.IsSet(flag) {
			set++
		}
	}
	if set != 1 {
		return acquire.Source{}, fmt.Errorf("exactly one of --text, --url or --file is required")
	}

	switch {
	case c.IsSet("text"):
		return acquire.Source{Kind: models.SourcePasted, Text: c.String("text")}, nil
	case c.IsSet("url"):
		return acquire.Source{Kind: models.SourceFetched, URL: c.String("url")}, nil
	default:
		path := c.String("file")
		data, err := os.ReadFile(path)
		if err != nil {
			return acquire.Source{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return acquire.Source{Kind: models.SourceUploaded, Filename: path, Data: data}, nil
	}
}
