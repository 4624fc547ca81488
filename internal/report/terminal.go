package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ruralmapper/ruralmapper/internal/ingest"
	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
	"github.com/ruralmapper/ruralmapper/pkg/trends"
	"github.com/ruralmapper/ruralmapper/pkg/validate"
)

// TerminalRenderer renders ingestion summaries and trend reports as
// colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func ratingColor(rating connectivity.Rating) string {
	if noColor() {
		return ""
	}
	switch rating {
	case connectivity.RatingExcellent, connectivity.RatingGood:
		return colorGreen
	case connectivity.RatingFair:
		return colorYellow
	case connectivity.RatingPoor:
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

// RenderIngest prints the outcome of one ingestion run: accepted and
// rejected counts, a per-reason breakdown, and the first few rejection
// details.
func (r *TerminalRenderer) RenderIngest(w io.Writer, result *ingest.Result) error {
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Ingested %d of %d records",
			result.Summary.Accepted, result.Summary.Total)))

	if result.Summary.Rejected > 0 {
		fmt.Fprintf(w, "Rejected: %s\n", colored(fmt.Sprintf("%d", result.Summary.Rejected), colorRed))
		reasons := make([]string, 0, len(result.Summary.ByReason))
		for reason := range result.Summary.ByReason {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(w, "  %-20s %d\n", reason, result.Summary.ByReason[validate.ReasonCode(reason)])
		}
		fmt.Fprintln(w)

		// Show a sample of rejection details (up to 5)
		maxShown := 5
		if len(result.Rejected) < maxShown {
			maxShown = len(result.Rejected)
		}
		for i := 0; i < maxShown; i++ {
			fmt.Fprintf(w, "  %s\n", dim(result.Rejected[i].Error()))
		}
		if len(result.Rejected) > maxShown {
			fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("... and %d more", len(result.Rejected)-maxShown)))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// RenderTrends prints a trend report: the date range, overall
// averages, provider standings, and the generated insights.
func (r *TerminalRenderer) RenderTrends(w io.Writer, report *trends.Report) error {
	if report.Empty {
		fmt.Fprintln(w, "No data available for trend analysis.")
		return nil
	}

	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Connectivity trends: %s to %s (%d points)",
			report.Range.Start, report.Range.End, report.TotalPoints)))

	fmt.Fprintf(w, "Averages: quality %.1f / download %.1f Mbps / upload %.1f Mbps / latency %.1f ms\n\n",
		report.Totals.MeanOverall, report.Totals.MeanDownload,
		report.Totals.MeanUpload, report.Totals.MeanLatency)

	if len(report.Buckets) > 0 {
		fmt.Fprintln(w, "Daily quality:")
		for _, bucket := range report.Buckets {
			rating := connectivity.RatingFromScore(bucket.MeanOverall)
			fmt.Fprintf(w, "  %s  %s  (%d points, %.1f–%.1f)\n",
				bucket.Bucket,
				colored(fmt.Sprintf("%5.1f", bucket.MeanOverall), ratingColor(rating)),
				bucket.Count, bucket.MinOverall, bucket.MaxOverall)
		}
		fmt.Fprintln(w)
	}

	if len(report.Providers) > 0 {
		fmt.Fprintln(w, "Providers:")
		for _, ps := range report.Providers {
			rating := connectivity.RatingFromScore(ps.MeanOverall)
			fmt.Fprintf(w, "  %s %s — %d points, avg quality %.1f\n",
				colored("●", ratingColor(rating)), bold(ps.Provider),
				ps.Count, ps.MeanOverall)
		}
		fmt.Fprintln(w)
	}

	if len(report.Insights) > 0 {
		fmt.Fprintln(w, "Insights:")
		for _, insight := range report.Insights {
			for i, line := range wrapText(insight, 70) {
				if i == 0 {
					fmt.Fprintf(w, "  • %s\n", line)
				} else {
					fmt.Fprintf(w, "    %s\n", dim(line))
				}
			}
		}
		fmt.Fprintln(w)
	}

	return nil
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
