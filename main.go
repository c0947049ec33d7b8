package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hbatwal/seo-intel/internal/analyze"
	"github.com/hbatwal/seo-intel/internal/serve"
)

func main() {
	app := &cli.App{
		Name:  "seo-intel",
		Usage: "keyword, entity and readability analysis for web content",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the browser UI",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides config)"},
					&cli.StringFlag{Name: "config", Usage: "path to YAML config file"},
					&cli.BoolFlag{Name: "quiet", Usage: "log errors only"},
				},
				Action: serve.Action,
			},
			{
				Name:  "analyze",
				Usage: "analyze one input and print the report",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Usage: "analyze this text"},
					&cli.StringFlag{Name: "url", Usage: "fetch and analyze this URL"},
					&cli.StringFlag{Name: "file", Usage: "analyze this .txt or .docx file"},
					&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or csv"},
					&cli.StringFlag{Name: "config", Usage: "path to YAML config file"},
					&cli.BoolFlag{Name: "quiet", Usage: "log errors only"},
				},
				Action: analyze.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
