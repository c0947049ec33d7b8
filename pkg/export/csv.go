// Package export renders analysis results as downloadable reports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/hbatwal/seo-intel/models"
)

// CSVFilename is the download name for keyword reports.
const CSVFilename = "seo_report.csv"

// WriteCSV writes the keyword report: header Keyword,Score,Density (%),
// one row per extracted keyword, UTF-8.
func WriteCSV(w io.Writer, result *models.AnalysisResult) error {
	density := make(map[string]float64, len(result.Density))
	for _, d := range result.Density {
		density[d.Phrase] = d.Percent
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Keyword", "Score", "Density (%)"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, kw := range result.Keywords {
		row := []string{
			kw.Phrase,
			formatScore(kw.Score),
			formatScore(density[kw.Phrase]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
