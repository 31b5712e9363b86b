package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/a11yscan/a11yscan/internal/types"
)

// jsonFinding is the export shape. It writes the impact under both keys the
// downstream reporting tools historically read.
type jsonFinding struct {
	types.Finding
	Severity types.Impact `json:"severity"`
}

type jsonEnvelope struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Summary     types.SeveritySummary `json:"summary"`
	Results     []jsonResult          `json:"results"`
	Errors      []string              `json:"errors,omitempty"`
}

type jsonResult struct {
	URL               string                `json:"url"`
	Summary           types.SeveritySummary `json:"summary"`
	ReducedConfidence bool                  `json:"reducedConfidence,omitempty"`
	Findings          []jsonFinding         `json:"findings"`
}

// WriteJSON serializes the full reconciled batch for export collaborators.
func WriteJSON(w io.Writer, batch types.BatchResult) error {
	env := jsonEnvelope{
		GeneratedAt: time.Now(),
		Summary:     batch.Summary,
		Errors:      batch.Errors,
	}
	for _, r := range batch.Results {
		jr := jsonResult{
			URL:               r.URL,
			Summary:           r.Summary,
			ReducedConfidence: r.ReducedConfidence,
			Findings:          make([]jsonFinding, 0, len(r.Findings)),
		}
		for _, f := range r.Findings {
			jr.Findings = append(jr.Findings, jsonFinding{Finding: f, Severity: f.Impact})
		}
		env.Results = append(env.Results, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// WriteCSV writes one row per finding, flat enough for spreadsheet import.
func WriteCSV(w io.Writer, batch types.BatchResult) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "impact", "rule", "url", "message", "remediation", "locator", "snippet", "tags", "aux", "evidence", "detected_at"}
	if err := cw.Write(header); err != nil {
		return err
	}
	findings := batch.AllFindings()
	types.SortStable(findings)
	for _, f := range findings {
		row := []string{
			f.ID,
			string(f.Impact),
			f.Rule,
			f.SourceURL,
			f.Message,
			f.Remediation,
			f.Locator,
			f.Snippet,
			joinTags(f.Tags),
			flattenAux(f.Aux),
			f.EvidencePath,
			f.DetectedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func joinTags(tags []types.ComplianceTag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func flattenAux(aux map[string]string) string {
	if len(aux) == 0 {
		return ""
	}
	keys := make([]string, 0, len(aux))
	for k := range aux {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.Quote(aux[k]))
	}
	return strings.Join(parts, " ")
}
