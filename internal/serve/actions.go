// Package serve wires configuration into the running web UI.
package serve

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hbatwal/seo-intel/internal/server"
	"github.com/hbatwal/seo-intel/models"
	"github.com/hbatwal/seo-intel/pkg/acquire"
	"github.com/hbatwal/seo-intel/pkg/analysis"
	"github.com/hbatwal/seo-intel/pkg/annotate"
	"github.com/hbatwal/seo-intel/pkg/caching"
	"github.com/hbatwal/seo-intel/pkg/db"
	"github.com/hbatwal/seo-intel/pkg/fetcher"
	"github.com/hbatwal/seo-intel/pkg/keywords"
)

// Action starts the web server.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if c.IsSet("addr") {
		config.ListenAddr = c.String("addr")
	}

	database, err := db.Open(config.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", config.DBPath)
		os.Exit(2)
	}
	defer database.Close()

	// Model resolution happens once, here. A failed annotator load means
	// analyses report model-unavailable failures, but the server still
	// comes up so the UI can show them.
	annotator, err := annotate.NewAnnotator()
	if err != nil {
		logger.Error("annotator model failed to load, analyses will be degraded", "error", err)
	}

	extractor := keywords.NewExtractor(context.Background(), keywords.Config{
		Endpoint: config.Embeddings.Endpoint,
		Model:    config.Embeddings.Model,
	})
	logger.Info("keyword ranker resolved", "ranker", extractor.RankerName())

	f := fetcher.NewFetcher(config.Fetch.Timeout, config.Fetch.UserAgent)
	cache := caching.NewCache(config.Fetch.CacheTTL)
	acquirer := acquire.NewAcquirer(f, cache)
	pipeline := analysis.NewPipeline(annotator, extractor)

	srv := server.New(acquirer, pipeline, database, extractor.RankerName())
	logger.Info("starting server", "addr", config.ListenAddr)
	return srv.Start(config.ListenAddr)
}
