package report

import (
	"fmt"
	"io"
	"os"

	tablewriter "github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/a11yscan/a11yscan/internal/types"
)

// PrintOptions controls console rendering.
type PrintOptions struct {
	NoColor bool
	Verbose bool
}

// PrintBatch renders a batch result as a findings table plus a severity
// summary footer.
func PrintBatch(w io.Writer, batch types.BatchResult, opts PrintOptions) {
	findings := batch.AllFindings()
	types.SortStable(findings)

	if len(findings) == 0 {
		fmt.Fprintln(w, "No accessibility issues found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("Impact", "Rule", "URL", "Message")
		urlWidth := urlColumnWidth()
		for _, f := range findings {
			table.Append([]string{impactText(f.Impact, opts.NoColor), f.Rule, truncate(f.SourceURL, urlWidth), f.Message})
		}
		table.Render()
	}

	s := batch.Summary
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (critical: %d, serious: %d, moderate: %d, minor: %d) across %d urls\n",
		s.Total, s.Critical, s.Serious, s.Moderate, s.Minor, s.URLsAnalyzed)
	if batch.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", batch.Duration.Seconds())
	}
	for _, r := range batch.Results {
		if r.ReducedConfidence {
			fmt.Fprintf(w, "note: %s analyzed without a rendered pass (reduced confidence)\n", r.URL)
		}
	}
	if len(batch.Errors) > 0 {
		fmt.Fprintf(w, "Errors: %d\n", len(batch.Errors))
		for _, e := range batch.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
}

func impactText(i types.Impact, noColor bool) string {
	if noColor {
		return string(i)
	}
	switch i {
	case types.ImpactCritical:
		return "\x1b[35mcritical\x1b[0m" // magenta
	case types.ImpactSerious:
		return "\x1b[31mserious\x1b[0m" // red
	case types.ImpactModerate:
		return "\x1b[33mmoderate\x1b[0m" // yellow
	default:
		return "\x1b[36mminor\x1b[0m" // cyan
	}
}

func urlColumnWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 48
	}
	w := width / 3
	if w < 24 {
		w = 24
	}
	return w
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
