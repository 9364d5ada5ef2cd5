package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/hann12-34/discovr-pipeline/internal/pipeline"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// StoreSummary reports what an upsert did.
type StoreSummary struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// Output contains everything a batch run reports.
type Output struct {
	Result *pipeline.Result `json:"result"`
	Stored *StoreSummary    `json:"stored,omitempty"`
}

// WriteOutput writes the batch report in the specified format.
func WriteOutput(w io.Writer, output *Output, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, output)
	case FormatText:
		return writeText(w, output, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, output *Output) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func writeText(w io.Writer, output *Output, verbose bool) error {
	report := output.Result.Report

	fmt.Fprintf(w, "Processed %d candidate events: %d accepted, %d rejected (%d deduplicated)\n",
		report.Total, report.Accepted, len(output.Result.Rejected), report.Deduplicated)

	if len(report.Rejected) > 0 {
		reasons := make([]string, 0, len(report.Rejected))
		for reason := range report.Rejected {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)

		fmt.Fprintln(w, "\nRejections by reason:")
		for _, reason := range reasons {
			fmt.Fprintf(w, "  %-22s %d\n", reason, report.Rejected[pipeline.Reason(reason)])
		}
	}

	if verbose && len(output.Result.Accepted) > 0 {
		fmt.Fprintln(w, "\nAccepted events:")
		for _, evt := range output.Result.Accepted {
			day := evt.Day()
			fmt.Fprintf(w, "  %s  %s", day, evt.Title)
			if evt.Venue.Name != "" {
				fmt.Fprintf(w, " @ %s", evt.Venue.Name)
			}
			fmt.Fprintln(w)
		}
	}

	if verbose && len(output.Result.Rejected) > 0 {
		fmt.Fprintln(w, "\nRejected events:")
		for _, rej := range output.Result.Rejected {
			title := "<nil record>"
			if rej.Event != nil {
				title = rej.Event.Title
			}
			fmt.Fprintf(w, "  [%s] %s\n", rej.Reason, title)
		}
	}

	if output.Stored != nil {
		fmt.Fprintf(w, "\nStored: %d added, %d updated\n", output.Stored.Added, output.Stored.Updated)
	}

	return nil
}
